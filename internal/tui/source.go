package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fraudlens/fraudlens/internal/circuitbreaker"
	"github.com/fraudlens/fraudlens/internal/security"
	"github.com/fraudlens/fraudlens/internal/simulator"
)

// Source supplies dashboard snapshots to the terminal view.
type Source interface {
	// Name describes where data comes from, for the header.
	Name() string
	Snapshot(ctx context.Context) (simulator.Snapshot, error)
}

// LocalSource reads an in-process dashboard.
type LocalSource struct {
	dash *simulator.Dashboard
}

// NewLocalSource wraps a dashboard. The caller runs it.
func NewLocalSource(dash *simulator.Dashboard) *LocalSource {
	return &LocalSource{dash: dash}
}

func (s *LocalSource) Name() string { return "local simulator" }

func (s *LocalSource) Snapshot(_ context.Context) (simulator.Snapshot, error) {
	return s.dash.Snapshot(), nil
}

// SnapshotPath is the server route the remote source polls.
const SnapshotPath = "/api/v1/snapshot"

// RemoteSource polls a running server over HTTP.
type RemoteSource struct {
	baseURL string
	client  *resty.Client
	breaker *circuitbreaker.Breaker
}

const (
	breakerThreshold = 3
	breakerCooldown  = 10 * time.Second
)

// NewRemoteSource validates baseURL and builds a client for it.
func NewRemoteSource(baseURL string, timeout time.Duration) (*RemoteSource, error) {
	normalized, err := security.ValidateEndpointURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote url: %w", err)
	}

	client := resty.New().
		SetBaseURL(normalized).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(1)

	return &RemoteSource{
		baseURL: normalized,
		client:  client,
		breaker: circuitbreaker.New(normalized, breakerThreshold, breakerCooldown),
	}, nil
}

func (s *RemoteSource) Name() string { return s.baseURL }

// Snapshot fetches the combined view. After repeated failures the source
// stops calling the server until the breaker cooldown elapses.
func (s *RemoteSource) Snapshot(ctx context.Context) (simulator.Snapshot, error) {
	var snap simulator.Snapshot
	err := s.breaker.Do(func() error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetResult(&snap).
			Get(SnapshotPath)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		return nil
	})
	if err != nil {
		return simulator.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}
