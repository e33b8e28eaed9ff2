package domain

import "context"

// HabitRepository stores habit definitions.
type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its identifier, archived or not.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListAll retrieves every active (non-archived) habit.
	ListAll(ctx context.Context) ([]*Habit, error)

	// Update modifies an existing habit.
	Update(ctx context.Context, habit *Habit) error
}

// HabitCompletionRepository stores per-day habit completions.
type HabitCompletionRepository interface {
	// Create persists a completion. A second completion for the same habit
	// and day fails with ErrRecordExists.
	Create(ctx context.Context, completion *HabitCompletion) error

	// ListForHabit returns the habit's completions with startDate <= date <= endDate.
	ListForHabit(ctx context.Context, habitID, startDate, endDate string) ([]*HabitCompletion, error)
}

type SleepRepository interface {
	Create(ctx context.Context, entry *SleepEntry) error
	ListAll(ctx context.Context) ([]*SleepEntry, error)
	// ListByDateRange bounds are inclusive YYYY-MM-DD dates.
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]*SleepEntry, error)
}

type ExerciseRepository interface {
	Create(ctx context.Context, session *ExerciseSession) error
	ListAll(ctx context.Context) ([]*ExerciseSession, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]*ExerciseSession, error)
}

type MealRepository interface {
	Create(ctx context.Context, meal *Meal) error
	ListAll(ctx context.Context) ([]*Meal, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]*Meal, error)
}

type JournalRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]*JournalEntry, error)
}
