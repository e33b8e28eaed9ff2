package services

import (
	"context"
	"strings"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/workers"
)

// ActivityRepositories are the stores ActivityService writes to.
type ActivityRepositories struct {
	Habits      domain.HabitRepository
	Completions domain.HabitCompletionRepository
	Sleep       domain.SleepRepository
	Exercise    domain.ExerciseRepository
	Meals       domain.MealRepository
	Journal     domain.JournalRepository
}

// ActivityService logs raw events. Every write that can move the streak
// schedules a recomputation on the worker.
type ActivityService struct {
	repos  ActivityRepositories
	worker *workers.StreakWorker
}

func NewActivityService(repos ActivityRepositories, worker *workers.StreakWorker) *ActivityService {
	return &ActivityService{
		repos:  repos,
		worker: worker,
	}
}

type CreateHabitInput struct {
	Title       string
	Description string
	Color       string
	Icon        string
	Frequency   string
}

type UpdateHabitInput struct {
	ID          string
	Title       string
	Description string
	Color       string
	Icon        string
	Frequency   string
}

type CompleteHabitInput struct {
	HabitID   string
	Date      string
	Completed bool
	Notes     string
}

type LogSleepInput struct {
	Date            string
	DurationMinutes int
	Quality         int
	Notes           string
}

type LogExerciseInput struct {
	Date            string
	Type            string
	DurationMinutes int
	CaloriesBurned  *int
	Notes           string
}

type LogMealInput struct {
	Date          string
	MealType      string
	Description   string
	TotalCalories float64
}

type WriteJournalInput struct {
	Date    string
	Content string
	Mood    *int
	Source  string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *ActivityService) CreateHabit(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Title, input.Description, input.Color, input.Icon, input.Frequency)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *ActivityService) ListHabits(ctx context.Context) ([]*domain.Habit, error) {
	return s.repos.Habits.ListAll(ctx)
}

func (s *ActivityService) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	return s.repos.Habits.GetByID(ctx, id)
}

// UpdateHabit applies the non-empty fields of input.
func (s *ActivityService) UpdateHabit(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repos.Habits.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if habit.IsArchived() {
		return nil, domain.ErrHabitArchived
	}

	updated, err := domain.NewHabit(
		mergeString(input.Title, habit.Title),
		mergeString(input.Description, habit.Description),
		mergeString(input.Color, habit.Color),
		mergeString(input.Icon, habit.Icon),
		mergeString(input.Frequency, habit.Frequency),
	)
	if err != nil {
		return nil, err
	}
	updated.ID = habit.ID
	updated.CreatedAt = habit.CreatedAt

	if err := s.repos.Habits.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ArchiveHabit hides the habit from listings and from the weekly completion rate.
func (s *ActivityService) ArchiveHabit(ctx context.Context, id string) error {
	habit, err := s.repos.Habits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if habit.IsArchived() {
		return nil
	}

	habit.Archive()
	return s.repos.Habits.Update(ctx, habit)
}

func (s *ActivityService) CompleteHabit(ctx context.Context, input CompleteHabitInput) (*domain.HabitCompletion, error) {
	completion, err := domain.NewHabitCompletion(input.HabitID, input.Date, input.Completed, input.Notes)
	if err != nil {
		return nil, err
	}

	habit, err := s.repos.Habits.GetByID(ctx, completion.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.IsArchived() {
		return nil, domain.ErrHabitArchived
	}

	if err := s.repos.Completions.Create(ctx, completion); err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *ActivityService) ListCompletions(ctx context.Context, habitID string, r domain.DateRange) ([]*domain.HabitCompletion, error) {
	if _, err := s.repos.Habits.GetByID(ctx, habitID); err != nil {
		return nil, err
	}
	return s.repos.Completions.ListForHabit(ctx, habitID, r.Start, r.End)
}

func (s *ActivityService) LogSleep(ctx context.Context, input LogSleepInput) (*domain.SleepEntry, error) {
	entry, err := domain.NewSleepEntry(input.Date, input.DurationMinutes, input.Quality, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Sleep.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.enqueue("sleep")
	return entry, nil
}

func (s *ActivityService) ListSleep(ctx context.Context, r domain.DateRange) ([]*domain.SleepEntry, error) {
	return s.repos.Sleep.ListByDateRange(ctx, r.Start, r.End)
}

func (s *ActivityService) LogExercise(ctx context.Context, input LogExerciseInput) (*domain.ExerciseSession, error) {
	session, err := domain.NewExerciseSession(input.Date, input.Type, input.DurationMinutes, input.CaloriesBurned, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Exercise.Create(ctx, session); err != nil {
		return nil, err
	}
	s.enqueue("exercise")
	return session, nil
}

func (s *ActivityService) ListExercise(ctx context.Context, r domain.DateRange) ([]*domain.ExerciseSession, error) {
	return s.repos.Exercise.ListByDateRange(ctx, r.Start, r.End)
}

func (s *ActivityService) LogMeal(ctx context.Context, input LogMealInput) (*domain.Meal, error) {
	meal, err := domain.NewMeal(input.Date, strings.ToLower(input.MealType), input.Description, input.TotalCalories)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	s.enqueue("meal")
	return meal, nil
}

// LogAnalyzedMeal stores a meal from a food photo analysis, describing it
// by the detected foods.
func (s *ActivityService) LogAnalyzedMeal(ctx context.Context, date, mealType string, analysis *domain.AIFoodAnalysis) (*domain.Meal, error) {
	names := make([]string, 0, len(analysis.DetectedFoods))
	for _, f := range analysis.DetectedFoods {
		names = append(names, f.Name)
	}
	return s.LogMeal(ctx, LogMealInput{
		Date:          date,
		MealType:      mealType,
		Description:   strings.Join(names, ", "),
		TotalCalories: analysis.TotalCalories,
	})
}

func (s *ActivityService) ListMeals(ctx context.Context, r domain.DateRange) ([]*domain.Meal, error) {
	return s.repos.Meals.ListByDateRange(ctx, r.Start, r.End)
}

// WriteJournal does not touch the streak: journal entries are not activity.
func (s *ActivityService) WriteJournal(ctx context.Context, input WriteJournalInput) (*domain.JournalEntry, error) {
	entry, err := domain.NewJournalEntry(input.Date, input.Content, input.Mood, input.Source)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Journal.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ActivityService) ListJournal(ctx context.Context, r domain.DateRange) ([]*domain.JournalEntry, error) {
	return s.repos.Journal.ListByDateRange(ctx, r.Start, r.End)
}

func (s *ActivityService) enqueue(reason string) {
	if s.worker != nil {
		s.worker.Enqueue(reason)
	}
}
