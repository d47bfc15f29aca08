package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/terraincognita07/calibra/internal/db"
	"github.com/terraincognita07/calibra/internal/i18n"
	"github.com/terraincognita07/calibra/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	secretKey []byte
	location  *time.Location
	i18n      *i18n.Manager
	logger    *slog.Logger
	now       func() time.Time

	profileService  *services.ProfileService
	weightService   *services.WeightGoalService
	trackingService *services.TrackingService
	exportService   *services.ExportService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, logger *slog.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:       []byte(secret),
		location:        location,
		i18n:            i18nManager,
		logger:          logger,
		now:             time.Now,
		profileService:  services.NewProfileService(repositories.Profiles),
		weightService:   services.NewWeightGoalService(repositories.WeightLogs, repositories.WeightGoals, repositories.Profiles),
		trackingService: services.NewTrackingService(repositories.Tracking, repositories.Profiles, repositories.WeightGoals, location),
		exportService:   services.NewExportService(repositories.Tracking, repositories.WeightLogs, location),
	}, nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
