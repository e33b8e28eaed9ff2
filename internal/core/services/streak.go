package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// ComputeDailyStreak counts consecutive days with any sleep, exercise or meal
// record, walking back from today. Each source is read exactly once.
func (s *StatsService) ComputeDailyStreak(ctx context.Context) (int, error) {
	days, err := s.activityDays(ctx)
	if err != nil {
		return 0, err
	}
	return currentStreak(days, s.clock.Now()), nil
}

// ComputeStreakSummary returns the current and the longest streak from a
// single read of each source.
func (s *StatsService) ComputeStreakSummary(ctx context.Context) (*domain.StreakSummary, error) {
	days, err := s.activityDays(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	current := currentStreak(days, now)
	longest := longestStreak(days)
	if current > longest {
		longest = current
	}
	return &domain.StreakSummary{
		Current:    current,
		Longest:    longest,
		ComputedAt: now,
	}, nil
}

func (s *StatsService) activityDays(ctx context.Context) (map[string]struct{}, error) {
	var (
		sleep    []*domain.SleepEntry
		exercise []*domain.ExerciseSession
		meals    []*domain.Meal
	)

	g, gctx := errgroup.WithContext(ctx)
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

	days := make(map[string]struct{}, len(sleep)+len(exercise)+len(meals))
	for _, e := range sleep {
		days[e.Date] = struct{}{}
	}
	for _, e := range exercise {
		days[e.Date] = struct{}{}
	}
	for _, m := range meals {
		days[m.Date] = struct{}{}
	}
	return days, nil
}

// currentStreak stops at the first day without activity; days is finite so
// the walk always ends.
func currentStreak(days map[string]struct{}, today time.Time) int {
	streak := 0
	day := domain.CalendarDay(today)
	for {
		if _, ok := days[domain.FormatDate(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func longestStreak(days map[string]struct{}) int {
	if len(days) == 0 {
		return 0
	}

	var sorted []time.Time
	for d := range days {
		t, err := time.Parse(domain.DateLayout, d)
		if err != nil {
			continue
		}
		sorted = append(sorted, t)
	}
	if len(sorted) == 0 {
		return 0
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
