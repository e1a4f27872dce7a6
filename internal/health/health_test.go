package health

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()
	healthy, statuses := r.CheckAll(context.Background())
	if !healthy {
		t.Fatal("empty registry should be healthy")
	}
	if len(statuses) != 0 {
		t.Fatalf("expected 0 statuses, got %d", len(statuses))
	}
}

func TestRegistryAllHealthy(t *testing.T) {
	r := NewRegistry()
	r.Register("transactions", func(_ context.Context) Status {
		return Status{Name: "transactions", Healthy: true}
	})
	r.Register("realtime", func(_ context.Context) Status {
		return Status{Name: "realtime", Healthy: true, Detail: "ok"}
	})

	healthy, statuses := r.CheckAll(context.Background())
	if !healthy {
		t.Fatal("all-healthy registry should report healthy")
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
}

func TestRegistryOneUnhealthy(t *testing.T) {
	r := NewRegistry()
	r.Register("transactions", func(_ context.Context) Status {
		return Status{Name: "transactions", Healthy: true}
	})
	r.Register("realtime", func(_ context.Context) Status {
		return Status{Name: "realtime", Healthy: false, Detail: "hub stopped"}
	})

	healthy, statuses := r.CheckAll(context.Background())
	if healthy {
		t.Fatal("registry with unhealthy checker should report unhealthy")
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[1].Detail != "hub stopped" {
		t.Fatalf("expected detail 'hub stopped', got %q", statuses[1].Detail)
	}
}

func TestRegistryConcurrentRegisterAndCheck(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	// Register concurrently
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Register("checker", func(_ context.Context) Status {
				return Status{Name: "checker", Healthy: true}
			})
		}(i)
	}

	// Check concurrently
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.CheckAll(context.Background())
		}()
	}

	wg.Wait()
}

type fakeLoop struct {
	running  bool
	interval time.Duration
	last     time.Time
}

func (f fakeLoop) Name() string            { return "alerts" }
func (f fakeLoop) Running() bool           { return f.running }
func (f fakeLoop) Interval() time.Duration { return f.interval }
func (f fakeLoop) LastTick() time.Time     { return f.last }

func TestLoopChecker(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tests := []struct {
		name    string
		loop    fakeLoop
		healthy bool
		detail  string
	}{
		{"stopped", fakeLoop{running: false}, false, "not running"},
		{"awaiting first tick", fakeLoop{running: true, interval: time.Second}, true, "awaiting first tick"},
		{"fresh", fakeLoop{running: true, interval: time.Second, last: now.Add(-2 * time.Second)}, true, ""},
		{"stale", fakeLoop{running: true, interval: time.Second, last: now.Add(-4 * time.Second)}, false, "stale: last tick 4s ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := LoopChecker(tt.loop, clock)(context.Background())
			if st.Name != "alerts" {
				t.Fatalf("expected name alerts, got %q", st.Name)
			}
			if st.Healthy != tt.healthy {
				t.Fatalf("expected healthy=%v, got %v (%s)", tt.healthy, st.Healthy, st.Detail)
			}
			if st.Detail != tt.detail {
				t.Fatalf("expected detail %q, got %q", tt.detail, st.Detail)
			}
		})
	}
}
