package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/platform/config"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:   "kanso",
	Short: "Kanso Insights API server",
	Long: `Kanso Insights tracks habits, sleep, exercise, meals and journal entries,
computes weekly statistics and streaks, and asks Claude for coaching.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}
