package simulator

import (
	"context"
	"math/rand"
	"sync"

	"github.com/fraudlens/fraudlens/internal/rng"
)

// OverviewStats are the header counters of the dashboard.
type OverviewStats struct {
	TotalTransactions   int64   `json:"totalTransactions"`
	FlaggedTransactions int64   `json:"flaggedTransactions"`
	AverageRiskScore    float64 `json:"averageRiskScore"`
	ActiveContracts     int64   `json:"activeContracts"`
}

// AverageRiskBounds is the range of the header risk score.
var AverageRiskBounds = Bounds{20, 35}

const (
	maxTxIncrement      = 5
	flaggedProbability  = 0.2
	contractProbability = 0.1
)

// Overview advances the header counters. Counters only grow.
type Overview struct {
	base

	mu    sync.RWMutex
	stats OverviewStats
}

// NewOverview creates the generator; call Seed before reading.
func NewOverview(r *rand.Rand, opts ...Option) *Overview {
	return &Overview{base: newBase(r, opts)}
}

func (o *Overview) Name() string { return rng.Overview }

// Seed restores the launch counters.
func (o *Overview) Seed() {
	o.mu.Lock()
	o.stats = OverviewStats{
		TotalTransactions:   156432,
		FlaggedTransactions: 1247,
		AverageRiskScore:    23.7,
		ActiveContracts:     342,
	}
	o.mu.Unlock()
}

// Tick advances the counters and redraws the average risk score.
func (o *Overview) Tick(_ context.Context) {
	o.mu.Lock()
	o.stats.TotalTransactions += int64(o.r.Intn(maxTxIncrement))
	if rng.Chance(o.r, flaggedProbability) {
		o.stats.FlaggedTransactions++
	}
	o.stats.AverageRiskScore = rng.Between(o.r, AverageRiskBounds.Lo, AverageRiskBounds.Hi)
	if rng.Chance(o.r, contractProbability) {
		o.stats.ActiveContracts++
	}
	stats := o.stats
	o.mu.Unlock()

	o.publish(TopicOverview, stats)
}

// Snapshot returns the current counters.
func (o *Overview) Snapshot() OverviewStats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stats
}
