package workers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

const queueSize = 100

// StreakCalculator computes the streak summary from every activity source.
type StreakCalculator interface {
	ComputeStreakSummary(ctx context.Context) (*domain.StreakSummary, error)
}

type StreakJob struct {
	Reason string
}

// StreakWorker recomputes the streak summary in the background after each
// write. Bursts of writes collapse: jobs queued while one is running are
// drained before the next recomputation.
type StreakWorker struct {
	calc   StreakCalculator
	jobs   chan StreakJob
	logger *slog.Logger

	mu     sync.RWMutex
	latest *domain.StreakSummary
}

func NewStreakWorker(calc StreakCalculator, l *slog.Logger) *StreakWorker {
	return &StreakWorker{
		calc:   calc,
		jobs:   make(chan StreakJob, queueSize),
		logger: logger.OrDefault(l).With("component", "streak_worker"),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.drain()
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("streak worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks; a full queue drops the job.
func (w *StreakWorker) Enqueue(reason string) {
	select {
	case w.jobs <- StreakJob{Reason: reason}:
	default:
		w.logger.Warn("streak worker queue full, dropping job", "reason", reason)
	}
}

// Latest returns the last computed summary, or nil before the first run.
func (w *StreakWorker) Latest() *domain.StreakSummary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.latest == nil {
		return nil
	}
	s := *w.latest
	return &s
}

// Refresh recomputes the summary synchronously.
func (w *StreakWorker) Refresh(ctx context.Context) (*domain.StreakSummary, error) {
	summary, err := w.calc.ComputeStreakSummary(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.latest = summary
	w.mu.Unlock()

	return summary, nil
}

func (w *StreakWorker) drain() {
	for {
		select {
		case <-w.jobs:
		default:
			return
		}
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	summary, err := w.Refresh(ctx)
	if err != nil {
		w.logger.Error("streak recomputation failed", "reason", job.Reason, "error", err)
		return
	}
	w.logger.Debug("streak updated", "reason", job.Reason, "current", summary.Current, "longest", summary.Longest)
}
