package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/rng"
)

const (
	SeriesLength      = 24
	RiskMin           = 15.0
	RiskMax           = 40.0
	HighRiskThreshold = 30.0
)

// RiskPoint is one hourly bar of the risk chart.
type RiskPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	HighRisk bool    `json:"highRisk"`
}

// RiskSnapshot is the full window plus its summary.
type RiskSnapshot struct {
	Points        []RiskPoint `json:"points"`
	Average       float64     `json:"average"`
	Max           float64     `json:"max"`
	HighRiskCount int         `json:"highRiskCount"`
}

// HourLabel formats t as "HH:00".
func HourLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}

// RiskSeries is a sliding window of exactly SeriesLength points once seeded.
type RiskSeries struct {
	base

	mu     sync.RWMutex
	points []RiskPoint
}

// NewRiskSeries creates an empty series; call Seed before reading.
func NewRiskSeries(r *rand.Rand, opts ...Option) *RiskSeries {
	return &RiskSeries{base: newBase(r, opts)}
}

func (s *RiskSeries) Name() string { return rng.RiskSeries }

// Seed fills the window with one point per hour for the last 24 hours,
// oldest first.
func (s *RiskSeries) Seed() {
	s.mu.Lock()
	now := s.now()
	points := make([]RiskPoint, 0, SeriesLength)
	for i := SeriesLength - 1; i >= 0; i-- {
		points = append(points, s.point(now.Add(-time.Duration(i)*time.Hour)))
	}
	s.points = points
	avg := average(points)
	s.mu.Unlock()

	metrics.RiskScoreAverage.Set(avg)
}

// Tick slides the window by one point labelled with the current hour.
func (s *RiskSeries) Tick(_ context.Context) {
	s.mu.Lock()
	p := s.point(s.now())
	if len(s.points) >= SeriesLength {
		s.points = append(s.points[1:len(s.points):len(s.points)], p)
	} else {
		s.points = append(s.points, p)
	}
	avg := average(s.points)
	s.mu.Unlock()

	metrics.RiskScoreAverage.Set(avg)
	s.publish(TopicRiskPoint, p)
}

// Snapshot copies the window and computes its summary.
func (s *RiskSeries) Snapshot() RiskSnapshot {
	s.mu.RLock()
	points := make([]RiskPoint, len(s.points))
	copy(points, s.points)
	s.mu.RUnlock()

	snap := RiskSnapshot{Points: points, Average: average(points)}
	for _, p := range points {
		if p.Value > snap.Max {
			snap.Max = p.Value
		}
		if p.HighRisk {
			snap.HighRiskCount++
		}
	}
	return snap
}

// point draws one value. Caller holds s.mu.
func (s *RiskSeries) point(at time.Time) RiskPoint {
	v := rng.Between(s.r, RiskMin, RiskMax)
	return RiskPoint{Label: HourLabel(at), Value: v, HighRisk: v > HighRiskThreshold}
}

func average(points []RiskPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}
