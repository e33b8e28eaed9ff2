package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

func newStore(gen services.InsightsGenerator) (*services.InsightsStore, *clock.Fixed) {
	clk := clock.NewFixed(friday)
	return services.NewInsightsStore(gen, clk, time.Hour, logger.Discard()), clk
}

func coaching(msg string) *domain.DailyCoaching {
	return &domain.DailyCoaching{Message: msg, FocusArea: "sleep", ActionItems: []string{"Go to bed by 23:00"}}
}

func TestInsightsStore_DailyCoachingTTL(t *testing.T) {
	ctx := context.Background()

	t.Run("Second fetch within the TTL is served from memory", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("Keep going"), nil)
		store, clk := newStore(gen)

		store.FetchDailyCoaching(ctx)
		clk.Advance(59 * time.Minute)
		store.FetchDailyCoaching(ctx)

		gen.AssertNumberOfCalls(t, "GenerateDailyCoaching", 1)
		state := store.State()
		require.NotNil(t, state.DailyCoaching)
		assert.Equal(t, "Keep going", state.DailyCoaching.Message)
		require.NotNil(t, state.LastCoachingFetch)
		assert.Equal(t, friday.UnixMilli(), *state.LastCoachingFetch)
	})

	t.Run("Fetch after the TTL calls the generator again", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("first"), nil).Once()
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("second"), nil).Once()
		store, clk := newStore(gen)

		store.FetchDailyCoaching(ctx)
		clk.Advance(time.Hour)
		store.FetchDailyCoaching(ctx)

		gen.AssertNumberOfCalls(t, "GenerateDailyCoaching", 2)
		assert.Equal(t, "second", store.State().DailyCoaching.Message)
	})

	t.Run("ClearAll forces a new fetch", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("Keep going"), nil)
		store, _ := newStore(gen)

		store.FetchDailyCoaching(ctx)
		store.ClearAll()

		state := store.State()
		assert.Nil(t, state.DailyCoaching)
		assert.Nil(t, state.LastCoachingFetch)

		store.FetchDailyCoaching(ctx)
		gen.AssertNumberOfCalls(t, "GenerateDailyCoaching", 2)
	})

	t.Run("Cache hit leaves the error untouched", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("ok"), nil)
		gen.On("GenerateSleepAnalysis", mock.Anything).Return(nil, errors.New("rate limited"))
		store, _ := newStore(gen)

		store.FetchDailyCoaching(ctx)
		store.FetchSleepAnalysis(ctx)
		store.FetchDailyCoaching(ctx)

		state := store.State()
		require.NotNil(t, state.Error)
		assert.Equal(t, "rate limited", *state.Error)
	})
}

func TestInsightsStore_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure keeps the stale value and records the message", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("stale"), nil).Once()
		gen.On("GenerateDailyCoaching", mock.Anything).Return(nil, errors.New("service unavailable")).Once()
		store, clk := newStore(gen)

		store.FetchDailyCoaching(ctx)
		clk.Advance(2 * time.Hour)
		store.FetchDailyCoaching(ctx)

		state := store.State()
		require.NotNil(t, state.DailyCoaching)
		assert.Equal(t, "stale", state.DailyCoaching.Message)
		assert.Equal(t, friday.UnixMilli(), *state.LastCoachingFetch)
		require.NotNil(t, state.Error)
		assert.Equal(t, "service unavailable", *state.Error)
		assert.False(t, state.IsLoadingCoaching)
	})

	t.Run("Failure without a message stores the fallback", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateMoodAnalysis", mock.Anything).Return(nil, errors.New(""))
		store, _ := newStore(gen)

		store.FetchMoodAnalysis(ctx)

		state := store.State()
		require.NotNil(t, state.Error)
		assert.Equal(t, "Failed to analyze mood", *state.Error)
	})

	t.Run("A new attempt clears the previous error", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateNutritionAdvice", mock.Anything).Return(nil, errors.New("boom")).Once()
		gen.On("GenerateNutritionAdvice", mock.Anything).Return(&domain.NutritionAdvice{Summary: "ok", Tips: []string{"eat"}}, nil).Once()
		store, _ := newStore(gen)

		store.FetchNutritionAdvice(ctx)
		require.NotNil(t, store.State().Error)

		store.FetchNutritionAdvice(ctx)
		state := store.State()
		assert.Nil(t, state.Error)
		assert.Equal(t, "ok", state.NutritionAdvice.Summary)
	})

	t.Run("ClearError empties the error slot only", func(t *testing.T) {
		gen := new(MockInsightsGenerator)
		gen.On("GenerateHabitSuggestions", mock.Anything).Return([]domain.HabitSuggestion{{Title: "Walk"}}, nil)
		gen.On("GenerateSleepAnalysis", mock.Anything).Return(nil, errors.New("boom"))
		store, _ := newStore(gen)

		store.FetchHabitSuggestions(ctx)
		store.FetchSleepAnalysis(ctx)
		store.ClearError()

		state := store.State()
		assert.Nil(t, state.Error)
		assert.Len(t, state.HabitSuggestions, 1)
	})
}

func TestInsightsStore_UncachedArtifacts(t *testing.T) {
	ctx := context.Background()
	gen := new(MockInsightsGenerator)
	gen.On("GenerateHabitSuggestions", mock.Anything).Return([]domain.HabitSuggestion{{Title: "Stretch"}}, nil)
	gen.On("GenerateSleepAnalysis", mock.Anything).Return(&domain.SleepAnalysis{Summary: "s"}, nil)
	gen.On("GenerateExerciseRecommendation", mock.Anything).Return(&domain.ExerciseRecommendation{Summary: "e"}, nil)
	gen.On("GenerateMoodAnalysis", mock.Anything).Return(&domain.MoodAnalysis{Summary: "m"}, nil)
	gen.On("GenerateNutritionAdvice", mock.Anything).Return(&domain.NutritionAdvice{Summary: "n"}, nil)
	store, _ := newStore(gen)

	for i := 0; i < 2; i++ {
		for _, kind := range domain.ArtifactKinds[1:] {
			require.NoError(t, store.Fetch(ctx, kind))
		}
	}

	for _, method := range []string{
		"GenerateHabitSuggestions",
		"GenerateSleepAnalysis",
		"GenerateExerciseRecommendation",
		"GenerateMoodAnalysis",
		"GenerateNutritionAdvice",
	} {
		gen.AssertNumberOfCalls(t, method, 2)
	}

	state := store.State()
	assert.Equal(t, "Stretch", state.HabitSuggestions[0].Title)
	assert.Equal(t, "s", state.SleepAnalysis.Summary)
	assert.Equal(t, "e", state.ExerciseRecommendation.Summary)
	assert.Equal(t, "m", state.MoodAnalysis.Summary)
	assert.Equal(t, "n", state.NutritionAdvice.Summary)
	assert.Nil(t, state.LastCoachingFetch)

	assert.Error(t, store.Fetch(ctx, domain.ArtifactKind("horoscope")))
}

func TestInsightsStore_InFlight(t *testing.T) {
	ctx := context.Background()

	t.Run("Loading flag is set while the call runs", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		gen := new(MockInsightsGenerator)
		gen.On("GenerateSleepAnalysis", mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&domain.SleepAnalysis{Summary: "done"}, nil).Once()
		store, _ := newStore(gen)

		done := make(chan struct{})
		go func() {
			store.FetchSleepAnalysis(ctx)
			close(done)
		}()

		<-started
		assert.True(t, store.State().IsLoadingSleep)
		assert.False(t, store.State().IsLoadingCoaching)

		close(release)
		<-done
		assert.False(t, store.State().IsLoadingSleep)
	})

	t.Run("Concurrent fetches of one kind share a call", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		gen := new(MockInsightsGenerator)
		gen.On("GenerateExerciseRecommendation", mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&domain.ExerciseRecommendation{Summary: "shared"}, nil).Once()
		store, _ := newStore(gen)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.FetchExerciseRecommendation(ctx)
		}()
		<-started

		wg.Add(1)
		go func() {
			defer wg.Done()
			store.FetchExerciseRecommendation(ctx)
		}()
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		gen.AssertNumberOfCalls(t, "GenerateExerciseRecommendation", 1)
		assert.Equal(t, "shared", store.State().ExerciseRecommendation.Summary)
	})

	t.Run("Result arriving after ClearAll is discarded", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(coaching("late"), nil).Once()
		store, _ := newStore(gen)

		done := make(chan struct{})
		go func() {
			store.FetchDailyCoaching(ctx)
			close(done)
		}()

		<-started
		store.ClearAll()
		assert.True(t, store.State().IsLoadingCoaching)

		close(release)
		<-done

		state := store.State()
		assert.Nil(t, state.DailyCoaching)
		assert.Nil(t, state.LastCoachingFetch)
		assert.False(t, state.IsLoadingCoaching)
	})

	t.Run("Abandoned fetch leaves a newer fetch loading", func(t *testing.T) {
		startedOld, releaseOld := make(chan struct{}), make(chan struct{})
		startedNew, releaseNew := make(chan struct{}), make(chan struct{})
		gen := new(MockInsightsGenerator)
		gen.On("GenerateDailyCoaching", mock.Anything).
			Run(func(mock.Arguments) {
				close(startedOld)
				<-releaseOld
			}).
			Return(coaching("old"), nil).Once()
		gen.On("GenerateDailyCoaching", mock.Anything).
			Run(func(mock.Arguments) {
				close(startedNew)
				<-releaseNew
			}).
			Return(coaching("new"), nil).Once()
		store, _ := newStore(gen)

		oldDone := make(chan struct{})
		go func() {
			store.FetchDailyCoaching(ctx)
			close(oldDone)
		}()
		<-startedOld
		store.ClearAll()

		newDone := make(chan struct{})
		go func() {
			store.FetchDailyCoaching(ctx)
			close(newDone)
		}()
		<-startedNew

		close(releaseOld)
		<-oldDone
		state := store.State()
		assert.True(t, state.IsLoadingCoaching, "newer fetch is still running")
		assert.Nil(t, state.DailyCoaching)

		close(releaseNew)
		<-newDone
		state = store.State()
		assert.False(t, state.IsLoadingCoaching)
		require.NotNil(t, state.DailyCoaching)
		assert.Equal(t, "new", state.DailyCoaching.Message)
	})
}

func TestInsightsStore_StateIsASnapshot(t *testing.T) {
	gen := new(MockInsightsGenerator)
	gen.On("GenerateDailyCoaching", mock.Anything).Return(coaching("original"), nil)
	store, _ := newStore(gen)
	store.FetchDailyCoaching(context.Background())

	snapshot := store.State()
	snapshot.DailyCoaching.Message = "mutated"
	snapshot.DailyCoaching.ActionItems[0] = "mutated"

	state := store.State()
	assert.Equal(t, "original", state.DailyCoaching.Message)
	assert.Equal(t, "Go to bed by 23:00", state.DailyCoaching.ActionItems[0])
}
