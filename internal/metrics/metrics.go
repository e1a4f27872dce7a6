// Package metrics provides Prometheus instrumentation for FraudLens.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraudlens"

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GeneratorTicksTotal counts refresh ticks per generator.
	GeneratorTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_ticks_total",
			Help:      "Total refresh ticks by generator.",
		},
		[]string{"generator"},
	)

	// GeneratorPanicsTotal counts ticks that panicked and were recovered.
	GeneratorPanicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_panics_total",
			Help:      "Total recovered panics by generator.",
		},
		[]string{"generator"},
	)

	// GeneratorTickDuration observes how long a single tick takes.
	GeneratorTickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generator_tick_duration_seconds",
			Help:      "Duration of one generator refresh in seconds.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"generator"},
	)

	// TransactionsGeneratedTotal counts synthetic transactions by derived status.
	TransactionsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_generated_total",
			Help:      "Total synthetic transactions by status.",
		},
		[]string{"status"},
	)

	// AlertsGeneratedTotal counts synthetic alerts by severity.
	AlertsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_generated_total",
			Help:      "Total synthetic fraud alerts by severity.",
		},
		[]string{"severity"},
	)

	// AlertsDismissedTotal counts alerts dismissed by operators.
	AlertsDismissedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_dismissed_total",
		Help:      "Total fraud alerts dismissed.",
	})

	// RiskScoreAverage tracks the mean of the rolling risk window.
	RiskScoreAverage = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "risk_score_average_percent",
		Help:      "Average of the 24-point rolling risk window.",
	})

	// ModelMetric tracks the simulated model scores by metric name.
	ModelMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_metric",
			Help:      "Simulated model performance values by metric.",
		},
		[]string{"metric"},
	)

	// ChainBlockHeight tracks the simulated block height per chain.
	ChainBlockHeight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_block_height",
			Help:      "Simulated block height by chain.",
		},
		[]string{"chain"},
	)

	// ChainLatency tracks the simulated RPC latency per chain.
	ChainLatency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_latency_ms",
			Help:      "Simulated node latency in milliseconds by chain.",
		},
		[]string{"chain"},
	)

	// ActiveWebSocketClients tracks connected WebSocket clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)

	// BroadcastDroppedTotal counts events dropped because the hub was saturated.
	BroadcastDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_dropped_total",
		Help:      "Total realtime events dropped on a full broadcast channel.",
	})

	// GoroutineCount tracks the current number of goroutines.
	GoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "goroutines",
		Help: "Current number of goroutines.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		GeneratorTicksTotal,
		GeneratorPanicsTotal,
		GeneratorTickDuration,
		TransactionsGeneratedTotal,
		AlertsGeneratedTotal,
		AlertsDismissedTotal,
		RiskScoreAverage,
		ModelMetric,
		ChainBlockHeight,
		ChainLatency,
		ActiveWebSocketClients,
		BroadcastDroppedTotal,
		GoroutineCount,
	)
}

// ObserveTick records one generator tick. Call the returned func when the
// tick completes.
func ObserveTick(generator string) func() {
	timer := prometheus.NewTimer(GeneratorTickDuration.WithLabelValues(generator))
	return func() {
		timer.ObserveDuration()
		GeneratorTicksTotal.WithLabelValues(generator).Inc()
	}
}

// StartRuntimeCollector periodically samples the goroutine count.
// Call in a goroutine; exits when ctx is done.
func StartRuntimeCollector(ctx context.Context, interval time.Duration) {
	GoroutineCount.Set(float64(runtime.NumGoroutine()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // route pattern keeps label cardinality bounded
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
