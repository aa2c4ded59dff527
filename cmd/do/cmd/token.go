package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studybuddy/studybuddy/internal/config"
	"github.com/studybuddy/studybuddy/internal/service"
)

func TokenCmd() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign a bearer token for local API calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to sign tokens with APP_ENV=production")
			}

			token, err := service.NewTokenService(cfg.JWTSecret).GenerateJWT(args[0], expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime")
	return cmd
}
