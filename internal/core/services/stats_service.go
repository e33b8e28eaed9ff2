package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
)

// daysPerWeek is the per-habit denominator of the completion rate. Every
// habit counts seven possible completions whatever its frequency.
const daysPerWeek = 7

// StatsSources groups the event repositories the aggregation reads from.
type StatsSources struct {
	Habits      domain.HabitRepository
	Completions domain.HabitCompletionRepository
	Sleep       domain.SleepRepository
	Exercise    domain.ExerciseRepository
	Meals       domain.MealRepository
}

type StatsService struct {
	src   StatsSources
	clock clock.Clock
}

func NewStatsService(src StatsSources, clk clock.Clock) *StatsService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &StatsService{
		src:   src,
		clock: clk,
	}
}

// ComputeWeeklyStats aggregates the Monday–Sunday week containing date.
// Repository errors are returned unchanged and no partial stats are built.
func (s *StatsService) ComputeWeeklyStats(ctx context.Context, date time.Time) (*domain.WeeklyStats, error) {
	week := domain.WeekOf(date)

	var (
		habitsCompleted int
		habitsTotal     int
		sleep           []*domain.SleepEntry
		exercise        []*domain.ExerciseSession
		meals           []*domain.Meal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		habitsCompleted, habitsTotal, err = s.countHabitCompletions(gctx, week)
		return err
	})
	g.Go(func() error {
		var err error
		sleep, err = s.src.Sleep.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		exercise, err = s.src.Exercise.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		meals, err = s.src.Meals.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := buildWeeklyStats(week, sleep, exercise, meals)
	stats.HabitsCompleted = habitsCompleted
	stats.HabitsTotal = habitsTotal
	if habitsTotal > 0 {
		stats.HabitCompletionRate = float64(habitsCompleted) / float64(habitsTotal)
	}

	return stats, nil
}

func (s *StatsService) countHabitCompletions(ctx context.Context, week domain.DateRange) (int, int, error) {
	habits, err := s.src.Habits.ListAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	completed, total := 0, 0
	for _, h := range habits {
		completions, err := s.src.Completions.ListForHabit(ctx, h.ID, week.Start, week.End)
		if err != nil {
			return 0, 0, err
		}
		for _, c := range completions {
			if c.Completed {
				completed++
			}
		}
		total += daysPerWeek
	}

	return completed, total, nil
}

// buildWeeklyStats folds the sleep, exercise and meal records that fall in
// week. Habit fields are left to the caller.
func buildWeeklyStats(week domain.DateRange, sleep []*domain.SleepEntry, exercise []*domain.ExerciseSession, meals []*domain.Meal) *domain.WeeklyStats {
	stats := &domain.WeeklyStats{
		WeekStart: week.Start,
		WeekEnd:   week.End,
	}
	tracked := make(map[string]struct{})

	var sleepHours, sleepQuality float64
	sleepCount := 0
	for _, e := range sleep {
		if !week.Contains(e.Date) {
			continue
		}
		sleepHours += e.Hours()
		sleepQuality += float64(e.Quality)
		sleepCount++
		tracked[e.Date] = struct{}{}
	}
	if sleepCount > 0 {
		stats.AvgSleepHours = sleepHours / float64(sleepCount)
		stats.AvgSleepQuality = sleepQuality / float64(sleepCount)
	}

	for _, e := range exercise {
		if !week.Contains(e.Date) {
			continue
		}
		stats.TotalExerciseMinutes += e.DurationMinutes
		tracked[e.Date] = struct{}{}
	}

	var calories float64
	mealDays := make(map[string]struct{})
	for _, m := range meals {
		if !week.Contains(m.Date) {
			continue
		}
		calories += m.TotalCalories
		mealDays[m.Date] = struct{}{}
		tracked[m.Date] = struct{}{}
	}
	if len(mealDays) > 0 {
		stats.AvgDailyCalories = calories / float64(len(mealDays))
	}

	stats.DaysTracked = len(tracked)
	return stats
}
