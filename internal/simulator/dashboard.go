package simulator

import (
	"context"
	"log/slog"
	"time"

	"github.com/fraudlens/fraudlens/internal/rng"
	"golang.org/x/sync/errgroup"
)

// Intervals sets the refresh period of each generator.
type Intervals struct {
	Transactions time.Duration
	Alerts       time.Duration
	Risk         time.Duration
	Models       time.Duration
	Chains       time.Duration
	Overview     time.Duration
}

// DefaultIntervals returns the launch refresh periods.
func DefaultIntervals() Intervals {
	return Intervals{
		Transactions: 4 * time.Second,
		Alerts:       8 * time.Second,
		Risk:         5 * time.Second,
		Models:       10 * time.Second,
		Chains:       15 * time.Second,
		Overview:     3 * time.Second,
	}
}

// Config configures a Dashboard.
type Config struct {
	// Seed for the random streams; 0 seeds from the clock.
	Seed             int64
	Intervals        Intervals
	AlertProbability float64
}

// Snapshot is a combined, point-in-time copy of every widget.
type Snapshot struct {
	GeneratedAt  time.Time     `json:"generatedAt"`
	Overview     OverviewStats `json:"overview"`
	Transactions []Transaction `json:"transactions"`
	Alerts       []Alert       `json:"alerts"`
	Risk         RiskSnapshot  `json:"risk"`
	Models       ModelSnapshot `json:"models"`
	Chains       ChainSnapshot `json:"chains"`
}

// Dashboard composes the generators. It owns no logic beyond starting and
// stopping them.
type Dashboard struct {
	Overview     *Overview
	Transactions *TransactionFeed
	Alerts       *AlertFeed
	Risk         *RiskSeries
	Models       *ModelMetrics
	Chains       *ChainStatus

	runners []*Runner
	logger  *slog.Logger
	now     func() time.Time
}

// NewDashboard wires every generator to its own random stream and runner.
func NewDashboard(cfg Config, logger *slog.Logger, opts ...Option) *Dashboard {
	f := rng.New(cfg.Seed)
	iv := cfg.Intervals

	d := &Dashboard{
		Overview:     NewOverview(f.R(rng.Overview), opts...),
		Transactions: NewTransactionFeed(f.R(rng.Transactions), opts...),
		Alerts:       NewAlertFeed(f.R(rng.Alerts), cfg.AlertProbability, opts...),
		Risk:         NewRiskSeries(f.R(rng.RiskSeries), opts...),
		Models:       NewModelMetrics(f.R(rng.ModelMetrics), opts...),
		Chains:       NewChainStatus(f.R(rng.ChainStatus), opts...),
		logger:       logger,
		now:          newBase(nil, opts).now,
	}
	d.runners = []*Runner{
		NewRunner(d.Overview, iv.Overview, logger),
		NewRunner(d.Transactions, iv.Transactions, logger),
		NewRunner(d.Alerts, iv.Alerts, logger),
		NewRunner(d.Risk, iv.Risk, logger),
		NewRunner(d.Models, iv.Models, logger),
		NewRunner(d.Chains, iv.Chains, logger),
	}

	logger.Info("simulator configured", "seed", f.Seed())
	return d
}

// Seed seeds every generator synchronously, so snapshots are populated
// before Run. Runners skip their own seeding afterwards.
func (d *Dashboard) Seed() {
	for _, r := range d.runners {
		r.Seed()
	}
}

// Run starts every runner and blocks until ctx is cancelled or Stop is called.
func (d *Dashboard) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range d.runners {
		r := r
		g.Go(func() error {
			r.Start(gctx)
			return nil
		})
	}
	return g.Wait()
}

// Stop stops every runner.
func (d *Dashboard) Stop() {
	for _, r := range d.runners {
		r.Stop()
	}
}

// Runners exposes the runners for health reporting.
func (d *Dashboard) Runners() []*Runner {
	out := make([]*Runner, len(d.runners))
	copy(out, d.runners)
	return out
}

// Snapshot collects a copy of every widget.
func (d *Dashboard) Snapshot() Snapshot {
	return Snapshot{
		GeneratedAt:  d.now(),
		Overview:     d.Overview.Snapshot(),
		Transactions: d.Transactions.Snapshot(),
		Alerts:       d.Alerts.Snapshot(),
		Risk:         d.Risk.Snapshot(),
		Models:       d.Models.Snapshot(),
		Chains:       d.Chains.Snapshot(),
	}
}
