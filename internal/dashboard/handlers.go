// Package dashboard provides the JSON API over the simulated widgets.
package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/internal/simulator"
	"github.com/fraudlens/fraudlens/internal/traces"
)

// Handler provides dashboard API endpoints.
type Handler struct {
	dash *simulator.Dashboard
}

// NewHandler creates a new dashboard handler.
func NewHandler(dash *simulator.Dashboard) *Handler {
	return &Handler{dash: dash}
}

// RegisterRoutes sets up dashboard routes under the given group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/snapshot", h.Snapshot)
	r.GET("/overview", h.Overview)
	r.GET("/transactions", h.Transactions)
	r.GET("/alerts", h.Alerts)
	r.POST("/alerts/:id/dismiss", h.DismissAlert)
	r.GET("/risk", h.Risk)
	r.GET("/models", h.Models)
	r.GET("/chains", h.Chains)
	r.GET("/chains/:chain", h.Chain)
}

// Snapshot returns every widget in one document.
func (h *Handler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Snapshot())
}

// Overview returns the header counters.
func (h *Handler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Overview.Snapshot())
}

// Transactions returns the live feed, optionally filtered by status and chain.
func (h *Handler) Transactions(c *gin.Context) {
	statusFilter := c.Query("status")
	switch simulator.TxStatus(statusFilter) {
	case "", simulator.StatusApproved, simulator.StatusFlagged, simulator.StatusBlocked:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status", "message": "must be approved, flagged, or blocked"})
		return
	}

	chainFilter, ok := parseChain(c.Query("chain"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_chain", "message": "must be Ethereum or NEAR"})
		return
	}

	txs := h.dash.Transactions.Snapshot()
	filtered := make([]simulator.Transaction, 0, len(txs))
	for _, tx := range txs {
		if statusFilter != "" && string(tx.Status) != statusFilter {
			continue
		}
		if chainFilter != "" && tx.Chain != chainFilter {
			continue
		}
		filtered = append(filtered, tx)
	}
	filtered = filtered[:min(len(filtered), parseLimit(c, simulator.MaxTransactions, simulator.MaxTransactions))]

	c.JSON(http.StatusOK, gin.H{
		"transactions": filtered,
		"count":        len(filtered),
	})
}

// Alerts returns the capped alert list; ?active=true hides dismissed alerts.
func (h *Handler) Alerts(c *gin.Context) {
	var alerts []simulator.Alert
	if active, _ := strconv.ParseBool(c.DefaultQuery("active", "false")); active {
		alerts = h.dash.Alerts.Active()
	} else {
		alerts = h.dash.Alerts.Snapshot()
	}

	if sev := c.Query("severity"); sev != "" {
		filtered := make([]simulator.Alert, 0, len(alerts))
		for _, a := range alerts {
			if string(a.Severity) == sev {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}
	if alerts == nil {
		alerts = []simulator.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// DismissAlert marks one alert as dismissed.
func (h *Handler) DismissAlert(c *gin.Context) {
	id := c.Param("id")
	ctx, span := traces.StartSpan(c.Request.Context(), "alerts.dismiss", traces.AlertID(id))
	defer span.End()

	alert, err := h.dash.Alerts.Dismiss(id)
	if err != nil {
		if errors.Is(err, simulator.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "alert not found"})
			return
		}
		logging.L(ctx).Error("dismiss alert failed", "alert_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	logging.L(ctx).Info("alert dismissed", "alert_id", id, "severity", alert.Severity)
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// Risk returns the 24-point window and its summary.
func (h *Handler) Risk(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Risk.Snapshot())
}

// Models returns the model scores and roster.
func (h *Handler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Models.Snapshot())
}

// Chains returns every chain plus the protocol roster.
func (h *Handler) Chains(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Chains.Snapshot())
}

// Chain returns one chain by name (case-insensitive).
func (h *Handler) Chain(c *gin.Context) {
	chain, ok := parseChain(c.Param("chain"))
	if !ok || chain == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown chain"})
		return
	}

	st, found := h.dash.Chains.Chain(chain)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown chain"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// parseChain accepts an empty value (no filter) or a known chain name.
func parseChain(v string) (simulator.Chain, bool) {
	switch strings.ToLower(v) {
	case "":
		return "", true
	case "ethereum", "eth":
		return simulator.ChainEthereum, true
	case "near":
		return simulator.ChainNEAR, true
	default:
		return "", false
	}
}

func parseLimit(c *gin.Context, defaultVal, maxVal int) int {
	limit := defaultVal
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxVal {
		limit = maxVal
	}
	return limit
}
