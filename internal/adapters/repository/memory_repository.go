package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// In-memory stores back the demo mode and the handler tests. They hold
// copies so callers cannot mutate stored records.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; ok {
		return domain.ErrRecordExists
	}
	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListAll(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		if h.IsArchived() {
			continue
		}
		clone := *h
		habits = append(habits, &clone)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

type InMemoryCompletionRepository struct {
	habits *InMemoryHabitRepository
	store  []domain.HabitCompletion

	mu sync.RWMutex
}

// NewInMemoryCompletionRepository checks completions against habits like a
// foreign key would.
func NewInMemoryCompletionRepository(habits *InMemoryHabitRepository) *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{habits: habits}
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, c *domain.HabitCompletion) error {
	if _, err := r.habits.GetByID(ctx, c.HabitID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.HabitID == c.HabitID && existing.Date == c.Date {
			return domain.ErrRecordExists
		}
	}
	r.store = append(r.store, *c)
	return nil
}

func (r *InMemoryCompletionRepository) ListForHabit(ctx context.Context, habitID, startDate, endDate string) ([]*domain.HabitCompletion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	window := domain.DateRange{Start: startDate, End: endDate}
	var out []*domain.HabitCompletion
	for _, c := range r.store {
		if c.HabitID == habitID && window.Contains(c.Date) {
			clone := c
			out = append(out, &clone)
		}
	}
	sortByDate(out, func(c *domain.HabitCompletion) string { return c.Date })
	return out, nil
}

// datedStore is a slice of records keyed by calendar day.
type datedStore[T any] struct {
	mu     sync.RWMutex
	items  []T
	dateOf func(*T) string
}

func (s *datedStore[T]) add(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

func (s *datedStore[T]) between(startDate, endDate string, all bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := domain.DateRange{Start: startDate, End: endDate}
	out := make([]*T, 0, len(s.items))
	for _, item := range s.items {
		if all || window.Contains(s.dateOf(&item)) {
			clone := item
			out = append(out, &clone)
		}
	}
	sortByDate(out, s.dateOf)
	return out
}

func sortByDate[T any](items []*T, dateOf func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return dateOf(items[i]) < dateOf(items[j])
	})
}

type InMemorySleepRepository struct {
	s datedStore[domain.SleepEntry]
}

func NewInMemorySleepRepository() *InMemorySleepRepository {
	return &InMemorySleepRepository{s: datedStore[domain.SleepEntry]{
		dateOf: func(e *domain.SleepEntry) string { return e.Date },
	}}
}

func (r *InMemorySleepRepository) Create(ctx context.Context, e *domain.SleepEntry) error {
	r.s.add(*e)
	return nil
}

func (r *InMemorySleepRepository) ListAll(ctx context.Context) ([]*domain.SleepEntry, error) {
	return r.s.between("", "", true), nil
}

func (r *InMemorySleepRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.SleepEntry, error) {
	return r.s.between(startDate, endDate, false), nil
}

type InMemoryExerciseRepository struct {
	s datedStore[domain.ExerciseSession]
}

func NewInMemoryExerciseRepository() *InMemoryExerciseRepository {
	return &InMemoryExerciseRepository{s: datedStore[domain.ExerciseSession]{
		dateOf: func(e *domain.ExerciseSession) string { return e.Date },
	}}
}

func (r *InMemoryExerciseRepository) Create(ctx context.Context, e *domain.ExerciseSession) error {
	r.s.add(*e)
	return nil
}

func (r *InMemoryExerciseRepository) ListAll(ctx context.Context) ([]*domain.ExerciseSession, error) {
	return r.s.between("", "", true), nil
}

func (r *InMemoryExerciseRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.ExerciseSession, error) {
	return r.s.between(startDate, endDate, false), nil
}

type InMemoryMealRepository struct {
	s datedStore[domain.Meal]
}

func NewInMemoryMealRepository() *InMemoryMealRepository {
	return &InMemoryMealRepository{s: datedStore[domain.Meal]{
		dateOf: func(m *domain.Meal) string { return m.Date },
	}}
}

func (r *InMemoryMealRepository) Create(ctx context.Context, m *domain.Meal) error {
	r.s.add(*m)
	return nil
}

func (r *InMemoryMealRepository) ListAll(ctx context.Context) ([]*domain.Meal, error) {
	return r.s.between("", "", true), nil
}

func (r *InMemoryMealRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Meal, error) {
	return r.s.between(startDate, endDate, false), nil
}

type InMemoryJournalRepository struct {
	s datedStore[domain.JournalEntry]
}

func NewInMemoryJournalRepository() *InMemoryJournalRepository {
	return &InMemoryJournalRepository{s: datedStore[domain.JournalEntry]{
		dateOf: func(e *domain.JournalEntry) string { return e.Date },
	}}
}

func (r *InMemoryJournalRepository) Create(ctx context.Context, e *domain.JournalEntry) error {
	r.s.add(*e)
	return nil
}

func (r *InMemoryJournalRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.JournalEntry, error) {
	return r.s.between(startDate, endDate, false), nil
}
