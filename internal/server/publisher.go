package server

import (
	"time"

	"github.com/fraudlens/fraudlens/internal/realtime"
	"github.com/fraudlens/fraudlens/internal/simulator"
)

// hubPublisher adapts realtime.Hub to simulator.Publisher. It tags each
// event with the routing metadata subscriptions filter on.
type hubPublisher struct {
	hub *realtime.Hub
	now func() time.Time
}

func (p *hubPublisher) Publish(topic simulator.Topic, payload interface{}) {
	if p.hub == nil {
		return
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}

	p.hub.Broadcast(toEvent(topic, payload, now()))
}

func toEvent(topic simulator.Topic, payload interface{}, at time.Time) *realtime.Event {
	ev := &realtime.Event{
		Type:      realtime.EventType(topic),
		Timestamp: at,
		Data:      payload,
	}

	switch v := payload.(type) {
	case simulator.Transaction:
		ev.Chain = string(v.Chain)
		score := v.RiskScore
		ev.RiskScore = &score
	}
	return ev
}
