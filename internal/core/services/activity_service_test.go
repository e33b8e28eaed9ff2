package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/core/workers"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

type activityMocks struct {
	habits      *MockHabitRepo
	completions *MockCompletionRepo
	sleep       *MockSleepRepo
	exercise    *MockExerciseRepo
	meals       *MockMealRepo
	journal     *MockJournalRepo
}

func newActivity(worker *workers.StreakWorker) (*services.ActivityService, *activityMocks) {
	m := &activityMocks{
		habits:      new(MockHabitRepo),
		completions: new(MockCompletionRepo),
		sleep:       new(MockSleepRepo),
		exercise:    new(MockExerciseRepo),
		meals:       new(MockMealRepo),
		journal:     new(MockJournalRepo),
	}
	svc := services.NewActivityService(services.ActivityRepositories{
		Habits:      m.habits,
		Completions: m.completions,
		Sleep:       m.sleep,
		Exercise:    m.exercise,
		Meals:       m.meals,
		Journal:     m.journal,
	}, worker)
	return svc, m
}

func TestActivityService_Habits(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Creates a daily habit by default", func(t *testing.T) {
		svc, m := newActivity(nil)
		m.habits.On("Create", ctx, mock.AnythingOfType("*domain.Habit")).Return(nil)

		habit, err := svc.CreateHabit(ctx, services.CreateHabitInput{Title: "  Meditate  ", Color: "#A0B1C2"})

		require.NoError(t, err)
		assert.Equal(t, "Meditate", habit.Title)
		assert.Equal(t, domain.HabitFreqDaily, habit.Frequency)
		assert.Equal(t, domain.DefaultIcon, habit.Icon)
		m.habits.AssertExpectations(t)
	})

	t.Run("Fail: Invalid input never reaches the repository", func(t *testing.T) {
		svc, m := newActivity(nil)

		_, err := svc.CreateHabit(ctx, services.CreateHabitInput{Title: "Run", Frequency: "hourly"})

		assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
		m.habits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Update keeps the fields left empty", func(t *testing.T) {
		svc, m := newActivity(nil)
		created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
		existing := &domain.Habit{ID: "h1", Title: "Read", Description: "20 pages", Color: "#FFFFFF", Icon: "book", Frequency: "daily", CreatedAt: created}
		m.habits.On("GetByID", ctx, "h1").Return(existing, nil)
		m.habits.On("Update", ctx, mock.MatchedBy(func(h *domain.Habit) bool {
			return h.ID == "h1" && h.Title == "Read more" && h.Description == "20 pages" && h.Frequency == "weekly"
		})).Return(nil)

		updated, err := svc.UpdateHabit(ctx, services.UpdateHabitInput{ID: "h1", Title: "Read more", Frequency: "weekly"})

		require.NoError(t, err)
		assert.Equal(t, created, updated.CreatedAt)
		assert.Equal(t, "book", updated.Icon)
		m.habits.AssertExpectations(t)
	})

	t.Run("Archive marks the habit once", func(t *testing.T) {
		svc, m := newActivity(nil)
		habit := &domain.Habit{ID: "h1", Title: "Read"}
		m.habits.On("GetByID", ctx, "h1").Return(habit, nil)
		m.habits.On("Update", ctx, habit).Return(nil).Once()

		require.NoError(t, svc.ArchiveHabit(ctx, "h1"))
		require.NoError(t, svc.ArchiveHabit(ctx, "h1"))

		assert.True(t, habit.IsArchived())
		m.habits.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("Fail: Completing an archived habit", func(t *testing.T) {
		svc, m := newActivity(nil)
		archivedAt := time.Now()
		m.habits.On("GetByID", ctx, "h1").Return(&domain.Habit{ID: "h1", ArchivedAt: &archivedAt}, nil)

		_, err := svc.CompleteHabit(ctx, services.CompleteHabitInput{HabitID: "h1", Date: "2026-02-20", Completed: true})

		assert.ErrorIs(t, err, domain.ErrHabitArchived)
		m.completions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Duplicate completion surfaces the store error", func(t *testing.T) {
		svc, m := newActivity(nil)
		m.habits.On("GetByID", ctx, "h1").Return(&domain.Habit{ID: "h1"}, nil)
		m.completions.On("Create", ctx, mock.Anything).Return(domain.ErrRecordExists)

		_, err := svc.CompleteHabit(ctx, services.CompleteHabitInput{HabitID: "h1", Date: "2026-02-20", Completed: true})

		assert.ErrorIs(t, err, domain.ErrRecordExists)
	})
}

func TestActivityService_Records(t *testing.T) {
	ctx := context.Background()

	t.Run("Logged activity refreshes the streak", func(t *testing.T) {
		workerCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		calc := &stubStreak{summary: domain.StreakSummary{Current: 1, Longest: 1}}
		worker := workers.NewStreakWorker(calc, logger.Discard())
		worker.Start(workerCtx)

		svc, m := newActivity(worker)
		m.sleep.On("Create", ctx, mock.Anything).Return(nil)

		entry, err := svc.LogSleep(ctx, services.LogSleepInput{Date: "2026-02-20", DurationMinutes: 450, Quality: 4})

		require.NoError(t, err)
		assert.Equal(t, 7.5, entry.Hours())
		assert.Eventually(t, func() bool { return worker.Latest() != nil }, time.Second, 10*time.Millisecond)
	})

	t.Run("Fail: Invalid records are rejected", func(t *testing.T) {
		svc, m := newActivity(nil)

		_, err := svc.LogSleep(ctx, services.LogSleepInput{Date: "2026-02-20", DurationMinutes: 450, Quality: 9})
		assert.ErrorIs(t, err, domain.ErrInvalidSleepQuality)

		_, err = svc.LogExercise(ctx, services.LogExerciseInput{Date: "20-02-2026", Type: "run", DurationMinutes: 30})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)

		_, err = svc.LogMeal(ctx, services.LogMealInput{Date: "2026-02-20", MealType: "brunch", TotalCalories: 400})
		assert.ErrorIs(t, err, domain.ErrInvalidMealType)

		m.sleep.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.exercise.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.meals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Analyzed meal is described by its foods", func(t *testing.T) {
		svc, m := newActivity(nil)
		m.meals.On("Create", ctx, mock.MatchedBy(func(meal *domain.Meal) bool {
			return meal.Description == "Pasta, Salad" && meal.TotalCalories == 730 && meal.MealType == domain.MealLunch
		})).Return(nil)

		_, err := svc.LogAnalyzedMeal(ctx, "2026-02-20", "Lunch", &domain.AIFoodAnalysis{
			DetectedFoods: []domain.DetectedFood{{Name: "Pasta"}, {Name: "Salad"}},
			TotalCalories: 730,
		})

		require.NoError(t, err)
		m.meals.AssertExpectations(t)
	})

	t.Run("Journal entries keep their source", func(t *testing.T) {
		svc, m := newActivity(nil)
		m.journal.On("Create", ctx, mock.Anything).Return(nil)
		mood := 4

		entry, err := svc.WriteJournal(ctx, services.WriteJournalInput{Date: "2026-02-20", Content: "Scanned page", Mood: &mood, Source: domain.JournalSourceOCR})

		require.NoError(t, err)
		assert.Equal(t, domain.JournalSourceOCR, entry.Source)
	})

	t.Run("Range listings pass the bounds through", func(t *testing.T) {
		svc, m := newActivity(nil)
		r := domain.DateRange{Start: "2026-02-16", End: "2026-02-22"}
		m.exercise.On("ListByDateRange", ctx, r.Start, r.End).Return([]*domain.ExerciseSession{{ID: "e1"}}, nil)

		got, err := svc.ListExercise(ctx, r)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

type stubStreak struct {
	summary domain.StreakSummary
}

func (s *stubStreak) ComputeStreakSummary(ctx context.Context) (*domain.StreakSummary, error) {
	v := s.summary
	return &v, nil
}
