package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the weekly stats, trends and streak as JSON",
	RunE:  runReport,
}

var reportDate string

func init() {
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "Any day of the week to report (YYYY-MM-DD, default today)")
}

type report struct {
	Trends *domain.TrendData     `json:"trends"`
	Streak *domain.StreakSummary `json:"streak"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, l)
	if err != nil {
		return err
	}
	defer a.Close()

	return writeReport(cmd, a, reportDate, cmd.OutOrStdout())
}

func writeReport(cmd *cobra.Command, a *app, date string, w io.Writer) error {
	day := a.clock.Now()
	if date != "" {
		var err error
		day, err = domain.ParseDate(date, a.cfg.Timezone)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	trends, err := a.stats.ComputeTrends(cmd.Context(), day)
	if err != nil {
		return err
	}
	streak, err := a.streaks.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report{Trends: trends, Streak: streak})
}
