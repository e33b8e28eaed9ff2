package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// TrendThreshold is the relative change a metric must exceed, strictly, to
// count as up or down.
const TrendThreshold = 0.10

// ClassifyTrend compares current with previous.
func ClassifyTrend(current, previous float64) domain.Trend {
	if previous == 0 {
		if current > 0 {
			return domain.TrendUp
		}
		return domain.TrendStable
	}

	change := (current - previous) / previous
	switch {
	case change > TrendThreshold:
		return domain.TrendUp
	case change < -TrendThreshold:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

// ComputeTrends compares the week containing date with the week before.
func (s *StatsService) ComputeTrends(ctx context.Context, date time.Time) (*domain.TrendData, error) {
	thisWeek, err := s.ComputeWeeklyStats(ctx, date)
	if err != nil {
		return nil, err
	}

	lastWeek, err := s.ComputeWeeklyStats(ctx, domain.CalendarDay(date).AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &domain.TrendData{
		ThisWeek:      *thisWeek,
		LastWeek:      *lastWeek,
		SleepTrend:    ClassifyTrend(thisWeek.AvgSleepHours, lastWeek.AvgSleepHours),
		ExerciseTrend: ClassifyTrend(float64(thisWeek.TotalExerciseMinutes), float64(lastWeek.TotalExerciseMinutes)),
		HabitTrend:    ClassifyTrend(thisWeek.HabitCompletionRate, lastWeek.HabitCompletionRate),
	}, nil
}
