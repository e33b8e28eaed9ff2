package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

const (
	// recentDays is the look-back window of the record-based analyses.
	recentDays = 14

	defaultCoachMaxTokens = 1024
)

const coachSystemPrompt = "You are a supportive health and wellness coach inside a personal tracking app. " +
	"Base every answer only on the data provided. Respond with a single JSON object and nothing else."

// CoachSources are the repositories the coach reads its context from.
type CoachSources struct {
	Habits   domain.HabitRepository
	Sleep    domain.SleepRepository
	Exercise domain.ExerciseRepository
	Meals    domain.MealRepository
	Journal  domain.JournalRepository
}

// CoachService builds prompts from tracked data and turns the generator's
// answers into validated artifacts.
type CoachService struct {
	generator domain.Generator
	stats     *StatsService
	src       CoachSources
	clock     clock.Clock
	validate  *validator.Validate
	maxTokens int
	logger    *slog.Logger
}

func NewCoachService(generator domain.Generator, stats *StatsService, src CoachSources, clk clock.Clock, maxTokens int, l *slog.Logger) *CoachService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if maxTokens <= 0 {
		maxTokens = defaultCoachMaxTokens
	}
	return &CoachService{
		generator: generator,
		stats:     stats,
		src:       src,
		clock:     clk,
		validate:  newValidator(),
		maxTokens: maxTokens,
		logger:    logger.OrDefault(l).With("component", "coach"),
	}
}

func (c *CoachService) GenerateDailyCoaching(ctx context.Context) (*domain.DailyCoaching, error) {
	now := c.clock.Now()

	var (
		trends *domain.TrendData
		streak int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trends, err = c.stats.ComputeTrends(gctx, now)
		return err
	})
	g.Go(func() error {
		var err error
		streak, err = c.stats.ComputeDailyStreak(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Today is %s. The user's current activity streak is %d days.
Weekly statistics and trends (this week vs last week):
%s

Write a short, encouraging coaching message for today and pick one area to focus on.
Respond as JSON: {"message": string, "focusArea": string, "actionItems": [string]}`,
		domain.FormatDate(now), streak, compactJSON(trends))

	var out domain.DailyCoaching
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	out.GeneratedAt = now
	return &out, nil
}

type habitSuggestionsPayload struct {
	Suggestions []domain.HabitSuggestion `json:"suggestions" validate:"required,min=1,dive"`
}

func (c *CoachService) GenerateHabitSuggestions(ctx context.Context) ([]domain.HabitSuggestion, error) {
	now := c.clock.Now()

	var (
		habits []*domain.Habit
		stats  *domain.WeeklyStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		habits, err = c.src.Habits.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.stats.ComputeWeeklyStats(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(habits))
	for _, h := range habits {
		titles = append(titles, fmt.Sprintf("%s (%s)", h.Title, h.Frequency))
	}

	prompt := fmt.Sprintf(`Current habits: %s
This week's statistics:
%s

Suggest up to three new habits that complement the current ones.
Respond as JSON: {"suggestions": [{"title": string, "description": string, "frequency": "daily"|"weekly"|"custom", "reason": string}]}`,
		orNone(strings.Join(titles, ", ")), compactJSON(stats))

	var out habitSuggestionsPayload
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

func (c *CoachService) GenerateSleepAnalysis(ctx context.Context) (*domain.SleepAnalysis, error) {
	window := c.recentWindow()
	entries, err := c.src.Sleep.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Sleep log from %s to %s (duration in minutes, quality 1-5):
%s

Analyze the sleep patterns and give a quality score from 0 to 100.
Respond as JSON: {"summary": string, "qualityScore": number, "patterns": [string], "recommendations": [string]}`,
		window.Start, window.End, compactJSON(entries))

	var out domain.SleepAnalysis
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CoachService) GenerateExerciseRecommendation(ctx context.Context) (*domain.ExerciseRecommendation, error) {
	window := c.recentWindow()
	sessions, err := c.src.Exercise.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Exercise log from %s to %s:
%s

Recommend how to train in the coming week.
Respond as JSON: {"summary": string, "intensity": "low"|"moderate"|"high", "suggestedActivities": [string], "weeklyGoalMinutes": number}`,
		window.Start, window.End, compactJSON(sessions))

	var out domain.ExerciseRecommendation
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CoachService) GenerateMoodAnalysis(ctx context.Context) (*domain.MoodAnalysis, error) {
	window := c.recentWindow()
	entries, err := c.src.Journal.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Journal entries from %s to %s (mood 1-5 when recorded):
%s

Describe the overall mood and any recurring patterns.
Respond as JSON: {"summary": string, "overallMood": string, "patterns": [string], "suggestions": [string]}`,
		window.Start, window.End, compactJSON(entries))

	var out domain.MoodAnalysis
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CoachService) GenerateNutritionAdvice(ctx context.Context) (*domain.NutritionAdvice, error) {
	window := c.recentWindow()
	meals, err := c.src.Meals.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Meals logged from %s to %s:
%s

Give practical nutrition advice and a daily calorie target.
Respond as JSON: {"summary": string, "calorieTarget": number, "tips": [string], "foodsToConsider": [string]}`,
		window.Start, window.End, compactJSON(meals))

	var out domain.NutritionAdvice
	if err := c.ask(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CoachService) ask(ctx context.Context, prompt string, out any) error {
	resp, err := c.generator.Generate(ctx, domain.GenerateRequest{
		System:    coachSystemPrompt,
		Prompt:    prompt,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return err
	}

	if _, err := decodeResponse(c.validate, resp, out); err != nil {
		c.logger.Warn("unusable generator response", "error", err)
		return err
	}
	return nil
}

// recentWindow is the inclusive range of the last recentDays days, today included.
func (c *CoachService) recentWindow() domain.DateRange {
	today := domain.CalendarDay(c.clock.Now())
	return domain.DateRange{
		Start: domain.FormatDate(today.AddDate(0, 0, -(recentDays - 1))),
		End:   domain.FormatDate(today),
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
