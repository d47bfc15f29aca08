package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/calibra/internal/api"
	"github.com/terraincognita07/calibra/internal/config"
	"github.com/terraincognita07/calibra/internal/db"
	"github.com/terraincognita07/calibra/internal/i18n"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	appLogger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(appLogger)
	time.Local = cfg.Location

	if cfg.EphemeralSecret {
		appLogger.Warn("SECRET_KEY is not set; using a random key, issued tokens stop working after restart")
	}

	database, err := db.Open(cfg.DBDriver, cfg.DatabaseTarget())
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.LocalesFS())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, i18nManager, appLogger)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Calibra",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("server shutdown failed", "error", err)
		}
	}()

	appLogger.Info("calibra listening",
		"addr", "0.0.0.0:"+cfg.Port,
		"db_driver", cfg.DBDriver,
		"tz", cfg.Location.String(),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
