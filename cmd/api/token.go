package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
)

var tokenCmd = &cobra.Command{
	Use:   "token <client>",
	Short: "Issue an API bearer token for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Auth.Secret == "" {
			return fmt.Errorf("JWT_SECRET must be set to issue tokens")
		}

		tokens := services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenDuration)
		token, err := tokens.GenerateToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
