package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const (
	activeHabitsKey = "habits:active"
	habitsCacheTTL  = 30 * time.Minute
)

// CachedHabitRepository keeps the active habit list in redis. The weekly
// aggregation reads it on every call; writes invalidate it.
type CachedHabitRepository struct {
	next   domain.HabitRepository
	cache  *redis.Client
	logger *slog.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client, l *slog.Logger) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:   next,
		cache:  cache,
		logger: logger.OrDefault(l).With("component", "cache"),
	}
}

func (r *CachedHabitRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, activeHabitsKey).Err(); err != nil {
		r.logger.Warn("failed to invalidate habit list", "error", err)
	}
}

func (r *CachedHabitRepository) ListAll(ctx context.Context) ([]*domain.Habit, error) {
	val, err := r.cache.Get(ctx, activeHabitsKey).Result()
	if err == nil {
		var habits []*domain.Habit
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			return habits, nil
		}

		r.logger.Warn("corrupted habit list, cleaning up key")
		r.cache.Del(ctx, activeHabitsKey)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", "error", err)
	}

	habits, err := r.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, activeHabitsKey, data, habitsCacheTTL).Err(); setErr != nil {
			r.logger.Warn("redis set error", "error", setErr)
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
