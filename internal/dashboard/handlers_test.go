package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/simulator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestHandler creates a handler over a seeded, deterministic dashboard.
func setupTestHandler(t *testing.T) (*Handler, *simulator.Dashboard) {
	t.Helper()
	clock := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	dash := simulator.NewDashboard(simulator.Config{
		Seed:             99,
		Intervals:        simulator.DefaultIntervals(),
		AlertProbability: simulator.DefaultAlertProbability,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), simulator.WithClock(func() time.Time { return clock }))
	dash.Seed()
	return NewHandler(dash), dash
}

func newRouter(h *Handler) *gin.Engine {
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	}
	return w, body
}

// makeRequest creates a test context and calls the handler directly.
func makeRequest(t *testing.T, handler gin.HandlerFunc, params gin.Params, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = params
	c.Request = httptest.NewRequest("GET", target, nil)
	handler(c)
	return w
}

// --- Snapshot ---

func TestSnapshot_AllWidgets(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/snapshot")

	assert.Equal(t, http.StatusOK, w.Code)
	for _, key := range []string{"generatedAt", "overview", "transactions", "alerts", "risk", "models", "chains"} {
		assert.Contains(t, body, key)
	}
	assert.Len(t, body["transactions"], simulator.MaxTransactions)
	assert.Len(t, body["alerts"], simulator.InitialAlerts)
}

func TestOverview(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/overview")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(156432), body["totalTransactions"])
	assert.Equal(t, float64(1247), body["flaggedTransactions"])
}

// --- Transactions ---

func TestTransactions_Unfiltered(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/transactions")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(simulator.MaxTransactions), body["count"])
}

func TestTransactions_StatusFilter(t *testing.T) {
	h, dash := setupTestHandler(t)
	r := newRouter(h)

	total := 0
	for _, status := range []simulator.TxStatus{simulator.StatusApproved, simulator.StatusFlagged, simulator.StatusBlocked} {
		w, body := do(t, r, "GET", "/api/v1/transactions?status="+string(status))
		require.Equal(t, http.StatusOK, w.Code)

		for _, raw := range body["transactions"].([]interface{}) {
			tx := raw.(map[string]interface{})
			assert.Equal(t, string(status), tx["status"])
		}
		total += int(body["count"].(float64))
	}
	assert.Equal(t, len(dash.Transactions.Snapshot()), total, "status buckets partition the feed")
}

func TestTransactions_ChainFilter(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/transactions?chain=near")

	assert.Equal(t, http.StatusOK, w.Code)
	for _, raw := range body["transactions"].([]interface{}) {
		assert.Equal(t, "NEAR", raw.(map[string]interface{})["blockchain"])
	}
}

func TestTransactions_Limit(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/transactions?limit=3")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])
}

func TestTransactions_InvalidFilters(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := newRouter(h)

	w, body := do(t, r, "GET", "/api/v1/transactions?status=pending")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", body["error"])

	w, body = do(t, r, "GET", "/api/v1/transactions?chain=solana")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_chain", body["error"])
}

// --- Alerts ---

func TestAlerts_DismissHidesFromActive(t *testing.T) {
	h, dash := setupTestHandler(t)
	r := newRouter(h)

	target := dash.Alerts.Snapshot()[0]

	w, body := do(t, r, "POST", "/api/v1/alerts/"+target.ID+"/dismiss")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["alert"].(map[string]interface{})["dismissed"])

	_, all := do(t, r, "GET", "/api/v1/alerts")
	assert.Equal(t, float64(simulator.InitialAlerts), all["count"], "dismissed alerts stay in the list")

	_, active := do(t, r, "GET", "/api/v1/alerts?active=true")
	assert.Equal(t, float64(simulator.InitialAlerts-1), active["count"])
	for _, raw := range active["alerts"].([]interface{}) {
		assert.NotEqual(t, target.ID, raw.(map[string]interface{})["id"])
	}
}

func TestAlerts_DismissTwice(t *testing.T) {
	h, dash := setupTestHandler(t)
	r := newRouter(h)
	id := dash.Alerts.Snapshot()[1].ID

	w, _ := do(t, r, "POST", "/api/v1/alerts/"+id+"/dismiss")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, "POST", "/api/v1/alerts/"+id+"/dismiss")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAlerts_DismissUnknown(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "POST", "/api/v1/alerts/alert_missing/dismiss")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", body["error"])
}

func TestAlerts_SeverityFilter(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/alerts?severity=critical")

	assert.Equal(t, http.StatusOK, w.Code)
	for _, raw := range body["alerts"].([]interface{}) {
		a := raw.(map[string]interface{})
		assert.Equal(t, "critical", a["severity"])
		assert.Equal(t, "Transaction Blocked", a["autoAction"])
	}
}

// --- Risk, models, chains ---

func TestRisk(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/risk")

	assert.Equal(t, http.StatusOK, w.Code)
	points := body["points"].([]interface{})
	assert.Len(t, points, simulator.SeriesLength)
	assert.Equal(t, "14:00", points[len(points)-1].(map[string]interface{})["label"])
}

func TestModels(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/models")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 94.7, body["accuracy"])
	assert.Len(t, body["models"], 4)
}

func TestChains(t *testing.T) {
	h, _ := setupTestHandler(t)
	w, body := do(t, newRouter(h), "GET", "/api/v1/chains")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["chains"], 2)
	assert.Len(t, body["protocols"], 4)
}

func TestChain_ByName(t *testing.T) {
	h, _ := setupTestHandler(t)

	w := makeRequest(t, h.Chain, gin.Params{{Key: "chain", Value: "ethereum"}}, "/api/v1/chains/ethereum")
	assert.Equal(t, http.StatusOK, w.Code)

	var st simulator.ChainState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, simulator.ChainEthereum, st.Chain)
	assert.Equal(t, uint64(18756432), st.BlockHeight)
}

func TestChain_Unknown(t *testing.T) {
	h, _ := setupTestHandler(t)

	w := makeRequest(t, h.Chain, gin.Params{{Key: "chain", Value: "bitcoin"}}, "/api/v1/chains/bitcoin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=4", 4},
		{"?limit=0", 10},
		{"?limit=-2", 10},
		{"?limit=abc", 10},
		{"?limit=500", 10},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/x"+tt.query, nil)
		assert.Equal(t, tt.want, parseLimit(c, 10, 10), tt.query)
	}
}
