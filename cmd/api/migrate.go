package main

import (
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/platform/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		l.Info("database schema is up to date", "driver", cfg.Database.Driver)
		return nil
	},
}
