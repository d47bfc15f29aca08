package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/calibra/internal/api"
	"github.com/terraincognita07/calibra/internal/config"
)

func newTokenCommand() *cobra.Command {
	var userID string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.EphemeralSecret {
				return errors.New("SECRET_KEY must be set to issue tokens the server will accept")
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.TokenTTL
			}

			token, err := api.IssueToken(cfg.SecretKey, userID, ttl, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime (defaults to TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
