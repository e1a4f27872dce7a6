package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/traces"
)

// Runner drives one generator: seed on start, tick on a fixed interval,
// stop on context cancel or Stop.
type Runner struct {
	gen      Generator
	interval time.Duration
	logger   *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	seeded   atomic.Bool
	lastTick atomic.Int64 // unix nanos, 0 before the first tick
}

// NewRunner creates a runner. interval must be positive.
func NewRunner(gen Generator, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		gen:      gen,
		interval: interval,
		logger:   logger.With("generator", gen.Name()),
		stop:     make(chan struct{}),
	}
}

// Name returns the generator name.
func (r *Runner) Name() string {
	return r.gen.Name()
}

// Interval returns the tick interval.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Running reports whether the tick loop is active.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// LastTick returns when the generator last refreshed (zero before the first tick).
func (r *Runner) LastTick() time.Time {
	n := r.lastTick.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// Seed seeds the generator now. Start will not seed it again.
func (r *Runner) Seed() {
	r.gen.Seed()
	r.seeded.Store(true)
}

// Start seeds the generator unless Seed already ran, then ticks until ctx is
// done or Stop is called. Call in a goroutine.
func (r *Runner) Start(ctx context.Context) {
	r.running.Store(true)
	defer r.running.Store(false)

	if !r.seeded.Load() {
		r.Seed()
	}
	r.logger.Info("generator started", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("generator stopped", "reason", "context")
			return
		case <-r.stop:
			r.logger.Info("generator stopped", "reason", "stop")
			return
		case <-ticker.C:
			r.safeTick(ctx)
		}
	}
}

// Stop signals the loop to exit. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Runner) safeTick(ctx context.Context) {
	name := r.gen.Name()
	defer func() {
		if rec := recover(); rec != nil {
			metrics.GeneratorPanicsTotal.WithLabelValues(name).Inc()
			r.logger.Error("panic in generator tick", "panic", fmt.Sprint(rec))
		}
	}()

	ctx, span := traces.StartSpan(ctx, "generator.tick", traces.Generator(name))
	defer span.End()

	done := metrics.ObserveTick(name)
	r.gen.Tick(ctx)
	done()

	r.lastTick.Store(time.Now().UnixNano())
	r.logger.Debug("generator tick")
}
