package simulator

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/fraudlens/fraudlens/internal/idgen"
	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/rng"
)

// ErrAlertNotFound is returned when dismissing an id that is not in the feed.
var ErrAlertNotFound = errors.New("alert not found")

// AlertKind is the category of a fraud alert.
type AlertKind string

const (
	KindHighRisk          AlertKind = "high_risk"
	KindAnomaly           AlertKind = "anomaly"
	KindSuspiciousPattern AlertKind = "suspicious_pattern"
	KindBlacklist         AlertKind = "blacklist"
)

// Severity of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

const (
	MaxAlerts               = 10
	InitialAlerts           = 5
	DefaultAlertProbability = 0.3
)

type alertTemplate struct {
	kind        AlertKind
	title       string
	description string
	severity    Severity
}

var alertTemplates = []alertTemplate{
	{KindHighRisk, "High Risk Transaction", "Transaction exceeds risk threshold", SeverityCritical},
	{KindAnomaly, "Anomalous Behavior", "Unusual transaction pattern detected", SeverityHigh},
	{KindSuspiciousPattern, "Suspicious Pattern", "Multiple rapid transactions from same wallet", SeverityMedium},
	{KindBlacklist, "Blacklisted Address", "Transaction from known fraudulent address", SeverityCritical},
}

// SeverityFor returns the fixed severity of a kind. Unknown kinds are medium.
func SeverityFor(kind AlertKind) Severity {
	for _, t := range alertTemplates {
		if t.kind == kind {
			return t.severity
		}
	}
	return SeverityMedium
}

// AutoAction is the action label shown next to an alert.
func AutoAction(sev Severity) string {
	if sev == SeverityCritical {
		return "Transaction Blocked"
	}
	return "Under Review"
}

// Alert is a synthetic fraud alert.
type Alert struct {
	ID          string    `json:"id"`
	Kind        AlertKind `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
	TxHash      string    `json:"txHash"`
	Dismissed   bool      `json:"dismissed"`
	AutoAction  string    `json:"autoAction"`
}

// AlertFeed keeps the newest MaxAlerts alerts, newest first. A tick only
// produces an alert with the configured probability.
type AlertFeed struct {
	base
	probability float64

	mu     sync.RWMutex
	alerts []Alert
}

// NewAlertFeed creates an empty feed. probability outside (0,1] falls back
// to DefaultAlertProbability.
func NewAlertFeed(r *rand.Rand, probability float64, opts ...Option) *AlertFeed {
	if probability <= 0 || probability > 1 {
		probability = DefaultAlertProbability
	}
	return &AlertFeed{base: newBase(r, opts), probability: probability}
}

func (f *AlertFeed) Name() string { return rng.Alerts }

// Seed replaces the feed with InitialAlerts fresh alerts.
func (f *AlertFeed) Seed() {
	f.mu.Lock()
	var alerts []Alert
	for i := 0; i < InitialAlerts; i++ {
		alerts = prependCapped(alerts, f.generate(), MaxAlerts)
	}
	f.alerts = alerts
	f.mu.Unlock()
}

// Tick adds an alert with probability f.probability.
func (f *AlertFeed) Tick(_ context.Context) {
	f.mu.Lock()
	if !rng.Chance(f.r, f.probability) {
		f.mu.Unlock()
		return
	}
	a := f.generate()
	f.alerts = prependCapped(f.alerts, a, MaxAlerts)
	f.mu.Unlock()

	metrics.AlertsGeneratedTotal.WithLabelValues(string(a.Severity)).Inc()
	f.publish(TopicAlert, a)
}

// Snapshot returns every retained alert, dismissed ones included.
func (f *AlertFeed) Snapshot() []Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Alert, len(f.alerts))
	copy(out, f.alerts)
	return out
}

// Active returns the alerts that have not been dismissed.
func (f *AlertFeed) Active() []Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Alert, 0, len(f.alerts))
	for _, a := range f.alerts {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out
}

// Dismiss marks an alert as dismissed. Dismissing twice is a no-op.
func (f *AlertFeed) Dismiss(id string) (Alert, error) {
	f.mu.Lock()
	idx := -1
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.mu.Unlock()
		return Alert{}, ErrAlertNotFound
	}
	already := f.alerts[idx].Dismissed
	f.alerts[idx].Dismissed = true
	a := f.alerts[idx]
	f.mu.Unlock()

	if !already {
		metrics.AlertsDismissedTotal.Inc()
		f.publish(TopicAlertDismissed, a)
	}
	return a, nil
}

// generate draws one alert. Caller holds f.mu.
func (f *AlertFeed) generate() Alert {
	t := alertTemplates[f.r.Intn(len(alertTemplates))]
	return Alert{
		ID:          idgen.WithPrefix(f.r, "alt_"),
		Kind:        t.kind,
		Title:       t.title,
		Description: t.description,
		Severity:    t.severity,
		Timestamp:   f.now(),
		TxHash:      idgen.TxHash(f.r),
		AutoAction:  AutoAction(t.severity),
	}
}
