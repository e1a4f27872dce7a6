package tui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/circuitbreaker"
	"github.com/fraudlens/fraudlens/internal/simulator"
)

func seededDashboard(t *testing.T) *simulator.Dashboard {
	t.Helper()
	now := time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)
	d := simulator.NewDashboard(simulator.Config{
		Seed:             3,
		Intervals:        simulator.DefaultIntervals(),
		AlertProbability: simulator.DefaultAlertProbability,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), simulator.WithClock(func() time.Time { return now }))
	d.Seed()
	return d
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Snapshot(context.Context) (simulator.Snapshot, error) {
	return simulator.Snapshot{}, errors.New("connection refused")
}

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

func TestLocalSource(t *testing.T) {
	d := seededDashboard(t)
	src := NewLocalSource(d)

	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, simulator.MaxTransactions)
	assert.Equal(t, "local simulator", src.Name())
}

func TestRemoteSource_FetchesSnapshot(t *testing.T) {
	want := seededDashboard(t).Snapshot()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SnapshotPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	src, err := NewRemoteSource(srv.URL+"/", time.Second)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, src.Name())

	got, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Overview, got.Overview)
	require.Len(t, got.Transactions, len(want.Transactions))
	assert.Equal(t, want.Transactions[0].Hash, got.Transactions[0].Hash)
	assert.Equal(t, want.Risk.Points, got.Risk.Points)
}

func TestRemoteSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src, err := NewRemoteSource(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = src.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch snapshot")
}

func TestRemoteSource_BreakerStopsPolling(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, err := NewRemoteSource(srv.URL, time.Second)
	require.NoError(t, err)

	for i := 0; i < breakerThreshold; i++ {
		_, err = src.Snapshot(context.Background())
		require.Error(t, err)
	}
	before := hits.Load()

	_, err = src.Snapshot(context.Background())
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, before, hits.Load(), "open circuit must not reach the server")
}

func TestRemoteSource_InvalidURL(t *testing.T) {
	_, err := NewRemoteSource("ftp://example", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote url")
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

func TestModel_LoadingView(t *testing.T) {
	m := NewModel(NewLocalSource(seededDashboard(t)), 0)

	assert.Equal(t, DefaultRefresh, m.refresh)
	assert.Contains(t, m.View(), "loading snapshot")
}

func TestModel_FetchAndRender(t *testing.T) {
	d := seededDashboard(t)
	m := NewModel(NewLocalSource(d), time.Second)

	msg := m.fetch()()
	snapMsg, ok := msg.(snapshotMsg)
	require.True(t, ok, "expected snapshotMsg, got %T", msg)

	updated, cmd := m.Update(snapMsg)
	require.NotNil(t, cmd, "a refresh tick is scheduled")
	m = updated.(Model)

	assert.True(t, m.loaded)
	assert.Len(t, m.txTable.Rows(), simulator.MaxTransactions)

	view := m.View()
	for _, want := range []string{
		"FraudLens",
		"Live transaction monitor",
		"Fraud alerts",
		"Risk score",
		"Model performance",
		"Ethereum",
		"NEAR",
		"Uniswap V3",
		"156,432",
		"updated 09:15:00",
	} {
		assert.Contains(t, view, want)
	}
}

func TestModel_ErrorKeepsLastSnapshot(t *testing.T) {
	m := NewModel(failingSource{}, time.Second)

	msg := m.fetch()()
	_, isErr := msg.(errMsg)
	require.True(t, isErr)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.View(), "connection refused")

	updated, _ = m.Update(snapshotMsg{snap: seededDashboard(t).Snapshot()})
	m = updated.(Model)
	updated, _ = m.Update(errMsg{err: errors.New("timeout")})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "stale: timeout")
	assert.Contains(t, view, "Live transaction monitor")
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel(failingSource{}, time.Second)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

func TestModel_TickTriggersFetch(t *testing.T) {
	m := NewModel(NewLocalSource(seededDashboard(t)), time.Second)

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	_, ok := cmd().(snapshotMsg)
	assert.True(t, ok)
}

// ---------------------------------------------------------------------------
// Rendering helpers
// ---------------------------------------------------------------------------

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁█", sparkline([]float64{15, 40}, 15, 40))
	assert.Equal(t, "▁█", sparkline([]float64{-5, 99}, 15, 40), "values are clamped")
	assert.Equal(t, "", sparkline([]float64{20}, 40, 15))
	assert.Len(t, []rune(sparkline(make([]float64, 24), 15, 40)), 24)
}

func TestGroupThousands(t *testing.T) {
	tests := map[int64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		156432:    "156,432",
		104785692: "104,785,692",
		-1247:     "-1,247",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupThousands(in))
	}
}

func TestRenderAlerts_SkipsDismissed(t *testing.T) {
	st := NewStyles()
	alerts := []simulator.Alert{
		{ID: "a", Title: "Blacklisted Address", Severity: simulator.SeverityCritical, Dismissed: true},
		{ID: "b", Title: "Anomalous Behavior", Severity: simulator.SeverityHigh, AutoAction: "Under Review"},
	}

	out := renderAlerts(st, alerts, 5)
	assert.NotContains(t, out, "Blacklisted Address")
	assert.Contains(t, out, "Anomalous Behavior")
	assert.Contains(t, out, "Under Review")

	out = renderAlerts(st, alerts[:1], 5)
	assert.Contains(t, out, "No active alerts")
}

func TestTransactionRows(t *testing.T) {
	rows := transactionRows([]simulator.Transaction{{
		Hash:      "0xabcdef0123456789",
		From:      "0x1234567890abcdef",
		Amount:    "12.50",
		Currency:  "DAI",
		Chain:     simulator.ChainEthereum,
		RiskScore: 72.26,
		Status:    simulator.StatusBlocked,
	}})

	require.Len(t, rows, 1)
	assert.Equal(t, "0xabcdef01...", rows[0][0])
	assert.Equal(t, "12.50 DAI", rows[0][2])
	assert.Equal(t, "72.3", rows[0][4])
	assert.True(t, strings.EqualFold(rows[0][5], "blocked"))
}
