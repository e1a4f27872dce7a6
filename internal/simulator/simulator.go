// Package simulator generates the synthetic telemetry behind the dashboard.
//
// Every widget owns one generator. A generator seeds an initial batch when
// its runner starts and then refreshes on its own ticker, drawing uniform
// values inside hard-coded bounds. Generators never talk to each other and
// share no state; each guards its own data with a mutex so HTTP handlers
// can take snapshots while the ticker is running.
package simulator

import (
	"context"
	"math/rand"
	"time"
)

// Topic names the kind of refresh a generator publishes.
type Topic string

const (
	TopicTransaction    Topic = "transaction"
	TopicAlert          Topic = "alert"
	TopicAlertDismissed Topic = "alert_dismissed"
	TopicRiskPoint      Topic = "risk_point"
	TopicModelMetrics   Topic = "model_metrics"
	TopicChainStatus    Topic = "chain_status"
	TopicOverview       Topic = "overview"
)

// Publisher receives every refresh. Implementations must not block.
type Publisher interface {
	Publish(topic Topic, payload interface{})
}

// Generator is one simulated data source.
type Generator interface {
	Name() string
	// Seed resets the generator to its initial batch.
	Seed()
	// Tick performs one refresh.
	Tick(ctx context.Context)
}

// Option configures a generator.
type Option func(*base)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// WithPublisher sets where refreshes are published.
func WithPublisher(p Publisher) Option {
	return func(b *base) {
		b.pub = p
	}
}

// base holds what every generator needs. r is only touched under the
// owning generator's lock.
type base struct {
	r   *rand.Rand
	now func() time.Time
	pub Publisher
}

func newBase(r *rand.Rand, opts []Option) base {
	b := base{r: r, now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) publish(topic Topic, payload interface{}) {
	if b.pub != nil {
		b.pub.Publish(topic, payload)
	}
}
