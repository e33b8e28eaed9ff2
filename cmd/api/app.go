package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-insights/internal/adapters/ai"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-insights/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/core/workers"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/config"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/database"
)

// app is the wired object graph shared by the commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	clock  clock.Clock

	db    *sqlx.DB
	redis *redis.Client

	generator domain.Generator
	breaker   *ai.BreakerGenerator

	stats    *services.StatsService
	activity *services.ActivityService
	insights *services.InsightsStore
	analysis *services.AnalysisService
	tokens   *services.TokenService
	streaks  *workers.StreakWorker
}

type appOption func(*app)

// withGenerator replaces the Anthropic client, for tests.
func withGenerator(g domain.Generator) appOption {
	return func(a *app) { a.generator = g }
}

func withClock(c clock.Clock) appOption {
	return func(a *app) { a.clock = c }
}

// newApp opens the database, applies migrations and wires every service.
func newApp(ctx context.Context, cfg *config.Config, l *slog.Logger, opts ...appOption) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: l,
		clock:  clock.SystemClock{Location: cfg.Timezone},
	}
	for _, opt := range opts {
		opt(a)
	}

	l.Info("connecting to database", "driver", cfg.Database.Driver)
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var habits domain.HabitRepository = repository.NewSQLHabitRepository(db)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.redis = rdb
		habits = repository.NewCachedHabitRepository(habits, rdb, l)
		l.Info("redis cache enabled", "addr", rdb.Options().Addr)
	}

	completions := repository.NewSQLCompletionRepository(db)
	sleep := repository.NewSQLSleepRepository(db)
	exercise := repository.NewSQLExerciseRepository(db)
	meals := repository.NewSQLMealRepository(db)
	journal := repository.NewSQLJournalRepository(db)

	if a.generator == nil {
		if cfg.AI.APIKey == "" {
			l.Warn("ANTHROPIC_API_KEY is not set, AI requests will fail")
		}
		a.generator = ai.NewAnthropicGenerator(cfg.AI.APIKey, cfg.AI.Model)
	}
	a.breaker = ai.NewBreakerGenerator(a.generator, ai.DefaultBreakerConfig(), l)

	a.stats = services.NewStatsService(services.StatsSources{
		Habits:      habits,
		Completions: completions,
		Sleep:       sleep,
		Exercise:    exercise,
		Meals:       meals,
	}, a.clock)
	a.streaks = workers.NewStreakWorker(a.stats, l)

	a.activity = services.NewActivityService(services.ActivityRepositories{
		Habits:      habits,
		Completions: completions,
		Sleep:       sleep,
		Exercise:    exercise,
		Meals:       meals,
		Journal:     journal,
	}, a.streaks)

	coach := services.NewCoachService(a.breaker, a.stats, services.CoachSources{
		Habits:   habits,
		Sleep:    sleep,
		Exercise: exercise,
		Meals:    meals,
		Journal:  journal,
	}, a.clock, cfg.AI.MaxTokens, l)
	a.insights = services.NewInsightsStore(coach, a.clock, cfg.AI.CoachingTTL, l)

	a.analysis = services.NewAnalysisService(a.breaker, ai.FileImageReader{}, services.AnalysisConfig{
		Model:       cfg.AI.Model,
		FoodTimeout: cfg.AI.FoodTimeout,
		MaxTokens:   cfg.AI.MaxTokens,
	}, l)

	if cfg.Auth.Secret != "" {
		a.tokens = services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenDuration)
	}

	return a, nil
}

// routes builds the HTTP surface. Uploads are written under uploadDir.
func (a *app) routes(uploadDir string, startTime time.Time) adapterHTTP.RouterDependencies {
	return adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(a.activity, a.clock),
		RecordHandler:   adapterHTTP.NewRecordHandler(a.activity, a.clock),
		StatsHandler:    adapterHTTP.NewStatsHandler(a.stats, a.streaks, a.clock),
		InsightsHandler: adapterHTTP.NewInsightsHandler(a.insights),
		AnalysisHandler: adapterHTTP.NewAnalysisHandler(a.analysis, a.activity, a.clock, uploadDir),
		TokenService:    a.tokens,
		DB:              a.db,
		Redis:           a.redis,
		RateLimits:      adapterHTTP.DefaultRateLimits(),
		AIState:         a.breaker.State,
		StartTime:       startTime,
		Logger:          a.logger,
	}
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}

func uploadDirectory() (string, error) {
	dir, err := os.MkdirTemp("", "kanso-uploads-")
	if err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	return dir, nil
}
