package simulator

import (
	"context"
	"math/rand"
	"sync"

	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/rng"
)

// Bounds is a half-open [Lo, Hi) range for a perturbed value.
type Bounds struct {
	Lo, Hi float64
}

// Contains reports whether v is inside the range.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lo && v < b.Hi
}

// Ranges of the perturbed model scores, in percent (milliseconds for
// processing time).
var (
	AccuracyBounds          = Bounds{94, 97}
	PrecisionBounds         = Bounds{91, 95}
	RecallBounds            = Bounds{95, 98}
	F1ScoreBounds           = Bounds{93, 96}
	FalsePositiveRateBounds = Bounds{2, 6}
	ProcessingTimeBounds    = Bounds{10, 15}
)

// ModelStatus is one row of the model roster.
type ModelStatus struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Accuracy  float64 `json:"accuracy"`
	LatencyMs float64 `json:"latencyMs"`
}

// ModelSnapshot holds the six headline scores plus the roster.
type ModelSnapshot struct {
	Accuracy          float64       `json:"accuracy"`
	Precision         float64       `json:"precision"`
	Recall            float64       `json:"recall"`
	F1Score           float64       `json:"f1Score"`
	FalsePositiveRate float64       `json:"falsePositiveRate"`
	ProcessingTimeMs  float64       `json:"processingTimeMs"`
	Models            []ModelStatus `json:"models"`
}

var modelRoster = []ModelStatus{
	{Name: "Random Forest", Status: "online", Accuracy: 94.7, LatencyMs: 8.2},
	{Name: "Neural Network", Status: "online", Accuracy: 96.1, LatencyMs: 15.3},
	{Name: "Anomaly Detection", Status: "online", Accuracy: 91.8, LatencyMs: 5.7},
	{Name: "Pattern Recognition", Status: "updating", Accuracy: 93.4, LatencyMs: 11.2},
}

// ModelMetrics perturbs the six model scores independently on every tick.
type ModelMetrics struct {
	base

	mu   sync.RWMutex
	snap ModelSnapshot
}

// NewModelMetrics creates the generator; call Seed before reading.
func NewModelMetrics(r *rand.Rand, opts ...Option) *ModelMetrics {
	return &ModelMetrics{base: newBase(r, opts)}
}

func (m *ModelMetrics) Name() string { return rng.ModelMetrics }

// Seed restores the launch values.
func (m *ModelMetrics) Seed() {
	m.mu.Lock()
	m.snap = ModelSnapshot{
		Accuracy:          94.7,
		Precision:         92.3,
		Recall:            96.1,
		F1Score:           94.2,
		FalsePositiveRate: 3.8,
		ProcessingTimeMs:  12.4,
	}
	snap := m.snap
	m.mu.Unlock()

	recordModelMetrics(snap)
}

// Tick redraws all six scores.
func (m *ModelMetrics) Tick(_ context.Context) {
	m.mu.Lock()
	m.snap.Accuracy = rng.Between(m.r, AccuracyBounds.Lo, AccuracyBounds.Hi)
	m.snap.Precision = rng.Between(m.r, PrecisionBounds.Lo, PrecisionBounds.Hi)
	m.snap.Recall = rng.Between(m.r, RecallBounds.Lo, RecallBounds.Hi)
	m.snap.F1Score = rng.Between(m.r, F1ScoreBounds.Lo, F1ScoreBounds.Hi)
	m.snap.FalsePositiveRate = rng.Between(m.r, FalsePositiveRateBounds.Lo, FalsePositiveRateBounds.Hi)
	m.snap.ProcessingTimeMs = rng.Between(m.r, ProcessingTimeBounds.Lo, ProcessingTimeBounds.Hi)
	snap := m.snap
	m.mu.Unlock()

	recordModelMetrics(snap)
	m.publish(TopicModelMetrics, m.Snapshot())
}

// Snapshot returns the current scores with a copy of the roster.
func (m *ModelMetrics) Snapshot() ModelSnapshot {
	m.mu.RLock()
	snap := m.snap
	m.mu.RUnlock()

	snap.Models = make([]ModelStatus, len(modelRoster))
	copy(snap.Models, modelRoster)
	return snap
}

func recordModelMetrics(s ModelSnapshot) {
	metrics.ModelMetric.WithLabelValues("accuracy").Set(s.Accuracy)
	metrics.ModelMetric.WithLabelValues("precision").Set(s.Precision)
	metrics.ModelMetric.WithLabelValues("recall").Set(s.Recall)
	metrics.ModelMetric.WithLabelValues("f1_score").Set(s.F1Score)
	metrics.ModelMetric.WithLabelValues("false_positive_rate").Set(s.FalsePositiveRate)
	metrics.ModelMetric.WithLabelValues("processing_time_ms").Set(s.ProcessingTimeMs)
}
