package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListAll(ctx context.Context) ([]*domain.Habit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Create(ctx context.Context, c *domain.HabitCompletion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompletionRepo) ListForHabit(ctx context.Context, habitID, startDate, endDate string) ([]*domain.HabitCompletion, error) {
	args := m.Called(ctx, habitID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HabitCompletion), args.Error(1)
}

type MockSleepRepo struct {
	mock.Mock
}

func (m *MockSleepRepo) Create(ctx context.Context, e *domain.SleepEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockSleepRepo) ListAll(ctx context.Context) ([]*domain.SleepEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SleepEntry), args.Error(1)
}

func (m *MockSleepRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.SleepEntry, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SleepEntry), args.Error(1)
}

type MockExerciseRepo struct {
	mock.Mock
}

func (m *MockExerciseRepo) Create(ctx context.Context, s *domain.ExerciseSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockExerciseRepo) ListAll(ctx context.Context) ([]*domain.ExerciseSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExerciseSession), args.Error(1)
}

func (m *MockExerciseRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.ExerciseSession, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExerciseSession), args.Error(1)
}

type MockMealRepo struct {
	mock.Mock
}

func (m *MockMealRepo) Create(ctx context.Context, meal *domain.Meal) error {
	return m.Called(ctx, meal).Error(0)
}

func (m *MockMealRepo) ListAll(ctx context.Context) ([]*domain.Meal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meal), args.Error(1)
}

func (m *MockMealRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Meal, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meal), args.Error(1)
}

type MockJournalRepo struct {
	mock.Mock
}

func (m *MockJournalRepo) Create(ctx context.Context, e *domain.JournalEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockJournalRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.JournalEntry, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JournalEntry), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateResponse), args.Error(1)
}

type MockImageReader struct {
	mock.Mock
}

func (m *MockImageReader) ReadBase64(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

type MockInsightsGenerator struct {
	mock.Mock
}

func (m *MockInsightsGenerator) GenerateDailyCoaching(ctx context.Context) (*domain.DailyCoaching, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCoaching), args.Error(1)
}

func (m *MockInsightsGenerator) GenerateHabitSuggestions(ctx context.Context) ([]domain.HabitSuggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HabitSuggestion), args.Error(1)
}

func (m *MockInsightsGenerator) GenerateSleepAnalysis(ctx context.Context) (*domain.SleepAnalysis, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepAnalysis), args.Error(1)
}

func (m *MockInsightsGenerator) GenerateExerciseRecommendation(ctx context.Context) (*domain.ExerciseRecommendation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExerciseRecommendation), args.Error(1)
}

func (m *MockInsightsGenerator) GenerateMoodAnalysis(ctx context.Context) (*domain.MoodAnalysis, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoodAnalysis), args.Error(1)
}

func (m *MockInsightsGenerator) GenerateNutritionAdvice(ctx context.Context) (*domain.NutritionAdvice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NutritionAdvice), args.Error(1)
}

func textResponse(text string) *domain.GenerateResponse {
	return &domain.GenerateResponse{
		Model:   "test-model",
		Content: []domain.ContentBlock{{Type: domain.ContentTypeText, Text: text}},
	}
}
