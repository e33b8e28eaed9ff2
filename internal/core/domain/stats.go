package domain

import "time"

// WeeklyStats aggregates every source over one Monday–Sunday window.
type WeeklyStats struct {
	WeekStart            string  `json:"week_start"`
	WeekEnd              string  `json:"week_end"`
	HabitsCompleted      int     `json:"habits_completed"`
	HabitsTotal          int     `json:"habits_total"`
	HabitCompletionRate  float64 `json:"habit_completion_rate"`
	AvgSleepHours        float64 `json:"avg_sleep_hours"`
	AvgSleepQuality      float64 `json:"avg_sleep_quality"`
	TotalExerciseMinutes int     `json:"total_exercise_minutes"`
	AvgDailyCalories     float64 `json:"avg_daily_calories"`
	DaysTracked          int     `json:"days_tracked"`
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendData compares a week with the one before it.
type TrendData struct {
	ThisWeek      WeeklyStats `json:"this_week"`
	LastWeek      WeeklyStats `json:"last_week"`
	SleepTrend    Trend       `json:"sleep_trend"`
	ExerciseTrend Trend       `json:"exercise_trend"`
	HabitTrend    Trend       `json:"habit_trend"`
}

// StreakSummary is the background-computed view of activity streaks.
type StreakSummary struct {
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
	ComputedAt time.Time `json:"computed_at"`
}
