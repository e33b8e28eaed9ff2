package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

// DefaultCoachingTTL is how long a daily coaching message is served from memory.
const DefaultCoachingTTL = time.Hour

// InsightsGenerator produces each kind of AI artifact. CoachService is the
// production implementation.
type InsightsGenerator interface {
	GenerateDailyCoaching(ctx context.Context) (*domain.DailyCoaching, error)
	GenerateHabitSuggestions(ctx context.Context) ([]domain.HabitSuggestion, error)
	GenerateSleepAnalysis(ctx context.Context) (*domain.SleepAnalysis, error)
	GenerateExerciseRecommendation(ctx context.Context) (*domain.ExerciseRecommendation, error)
	GenerateMoodAnalysis(ctx context.Context) (*domain.MoodAnalysis, error)
	GenerateNutritionAdvice(ctx context.Context) (*domain.NutritionAdvice, error)
}

// fallbackMessages are stored when a failure carries no message.
var fallbackMessages = map[domain.ArtifactKind]string{
	domain.ArtifactDailyCoaching:          "Failed to fetch daily coaching",
	domain.ArtifactHabitSuggestions:       "Failed to fetch habit suggestions",
	domain.ArtifactSleepAnalysis:          "Failed to analyze sleep",
	domain.ArtifactExerciseRecommendation: "Failed to fetch exercise recommendations",
	domain.ArtifactMoodAnalysis:           "Failed to analyze mood",
	domain.ArtifactNutritionAdvice:        "Failed to fetch nutrition advice",
}

// InsightsStore holds the latest AI artifacts with their loading flags and
// a shared error slot. Fetch methods never return errors; failures land in
// the state.
//
// Concurrent fetches of one kind share a single remote call. ClearAll bumps
// a generation counter so results of calls started before it are dropped.
type InsightsStore struct {
	generator InsightsGenerator
	clock     clock.Clock
	ttl       time.Duration
	logger    *slog.Logger

	mu         sync.Mutex
	state      domain.InsightsState
	generation uint64
	// loadingGen is the generation of the fetch that last raised each flag.
	loadingGen map[domain.ArtifactKind]uint64

	inflight singleflight.Group
}

func NewInsightsStore(generator InsightsGenerator, clk clock.Clock, ttl time.Duration, l *slog.Logger) *InsightsStore {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultCoachingTTL
	}
	return &InsightsStore{
		generator:  generator,
		clock:      clk,
		ttl:        ttl,
		loadingGen: make(map[domain.ArtifactKind]uint64),
		logger:     logger.OrDefault(l).With("component", "insights"),
	}
}

// State returns a snapshot of the store.
func (s *InsightsStore) State() domain.InsightsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// FetchDailyCoaching refreshes the coaching message unless the cached one is
// younger than the TTL.
func (s *InsightsStore) FetchDailyCoaching(ctx context.Context) {
	if s.coachingFresh() {
		s.logger.Debug("coaching served from cache")
		return
	}

	fetchArtifact(ctx, s, domain.ArtifactDailyCoaching, s.generator.GenerateDailyCoaching,
		func(st *domain.InsightsState, v *domain.DailyCoaching, now time.Time) {
			st.DailyCoaching = v
			ms := now.UnixMilli()
			st.LastCoachingFetch = &ms
		})
}

func (s *InsightsStore) coachingFresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.DailyCoaching == nil || s.state.LastCoachingFetch == nil {
		return false
	}
	age := s.clock.Now().UnixMilli() - *s.state.LastCoachingFetch
	return age < s.ttl.Milliseconds()
}

func (s *InsightsStore) FetchHabitSuggestions(ctx context.Context) {
	fetchArtifact(ctx, s, domain.ArtifactHabitSuggestions, s.generator.GenerateHabitSuggestions,
		func(st *domain.InsightsState, v []domain.HabitSuggestion, _ time.Time) {
			st.HabitSuggestions = v
		})
}

func (s *InsightsStore) FetchSleepAnalysis(ctx context.Context) {
	fetchArtifact(ctx, s, domain.ArtifactSleepAnalysis, s.generator.GenerateSleepAnalysis,
		func(st *domain.InsightsState, v *domain.SleepAnalysis, _ time.Time) {
			st.SleepAnalysis = v
		})
}

func (s *InsightsStore) FetchExerciseRecommendation(ctx context.Context) {
	fetchArtifact(ctx, s, domain.ArtifactExerciseRecommendation, s.generator.GenerateExerciseRecommendation,
		func(st *domain.InsightsState, v *domain.ExerciseRecommendation, _ time.Time) {
			st.ExerciseRecommendation = v
		})
}

func (s *InsightsStore) FetchMoodAnalysis(ctx context.Context) {
	fetchArtifact(ctx, s, domain.ArtifactMoodAnalysis, s.generator.GenerateMoodAnalysis,
		func(st *domain.InsightsState, v *domain.MoodAnalysis, _ time.Time) {
			st.MoodAnalysis = v
		})
}

func (s *InsightsStore) FetchNutritionAdvice(ctx context.Context) {
	fetchArtifact(ctx, s, domain.ArtifactNutritionAdvice, s.generator.GenerateNutritionAdvice,
		func(st *domain.InsightsState, v *domain.NutritionAdvice, _ time.Time) {
			st.NutritionAdvice = v
		})
}

// Fetch dispatches to the fetch method of kind.
func (s *InsightsStore) Fetch(ctx context.Context, kind domain.ArtifactKind) error {
	switch kind {
	case domain.ArtifactDailyCoaching:
		s.FetchDailyCoaching(ctx)
	case domain.ArtifactHabitSuggestions:
		s.FetchHabitSuggestions(ctx)
	case domain.ArtifactSleepAnalysis:
		s.FetchSleepAnalysis(ctx)
	case domain.ArtifactExerciseRecommendation:
		s.FetchExerciseRecommendation(ctx)
	case domain.ArtifactMoodAnalysis:
		s.FetchMoodAnalysis(ctx)
	case domain.ArtifactNutritionAdvice:
		s.FetchNutritionAdvice(ctx)
	default:
		return fmt.Errorf("unknown artifact kind %q", kind)
	}
	return nil
}

// ClearAll empties every artifact, the coaching timestamp and the error.
// In-flight fetches keep running but their results are discarded.
func (s *InsightsStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	loading := [...]bool{
		s.state.IsLoadingCoaching,
		s.state.IsLoadingSuggestions,
		s.state.IsLoadingSleep,
		s.state.IsLoadingExercise,
		s.state.IsLoadingMood,
		s.state.IsLoadingNutrition,
	}
	s.state = domain.InsightsState{
		IsLoadingCoaching:    loading[0],
		IsLoadingSuggestions: loading[1],
		IsLoadingSleep:       loading[2],
		IsLoadingExercise:    loading[3],
		IsLoadingMood:        loading[4],
		IsLoadingNutrition:   loading[5],
	}
	s.generation++
}

// ClearError empties the shared error slot.
func (s *InsightsStore) ClearError() {
	s.mu.Lock()
	s.state.Error = nil
	s.mu.Unlock()
}

func fetchArtifact[T any](
	ctx context.Context,
	s *InsightsStore,
	kind domain.ArtifactKind,
	call func(context.Context) (T, error),
	apply func(*domain.InsightsState, T, time.Time),
) {
	s.mu.Lock()
	*s.state.Loading(kind) = true
	s.state.Error = nil
	gen := s.generation
	s.loadingGen[kind] = gen
	s.mu.Unlock()

	key := fmt.Sprintf("%s/%d", kind, gen)
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		return call(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// a fetch started after ClearAll owns the flag now
	if s.loadingGen[kind] == gen {
		*s.state.Loading(kind) = false
	}

	if gen != s.generation {
		s.logger.Info("discarding result fetched before clear", "kind", kind)
		return
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackMessages[kind]
		}
		s.state.Error = &msg
		s.logger.Warn("insight fetch failed", "kind", kind, "error", err)
		return
	}

	apply(&s.state, v.(T), s.clock.Now())
	s.logger.Debug("insight fetched", "kind", kind, "shared", shared)
}
