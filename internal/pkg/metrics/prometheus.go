package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	claimsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "claims",
			Name:      "created_total",
			Help:      "Pending claims created, by plan",
		},
		[]string{"plan"},
	)

	claimsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "claims",
			Name:      "purged_total",
			Help:      "Stale pending claims removed by the purge job",
		},
	)

	paymentsConfirmedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "payments",
			Name:      "confirmed_total",
			Help:      "Payments confirmed through a provider callback",
		},
		[]string{"plan", "billing"},
	)

	paymentFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "payments",
			Name:      "failures_total",
			Help:      "Payment confirmations that failed, by error code",
		},
		[]string{"code"},
	)

	roleUpgradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hub",
			Subsystem: "users",
			Name:      "role_upgrades_total",
			Help:      "Role upgrades applied after payment",
		},
		[]string{"role"},
	)
)

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordClaimCreated(plan string) {
	claimsCreatedTotal.WithLabelValues(plan).Inc()
}

func RecordClaimsPurged(n int) {
	claimsPurgedTotal.Add(float64(n))
}

func RecordPaymentConfirmed(plan string, yearly bool) {
	billing := "monthly"
	if yearly {
		billing = "yearly"
	}
	paymentsConfirmedTotal.WithLabelValues(plan, billing).Inc()
}

func RecordPaymentFailure(code string) {
	paymentFailuresTotal.WithLabelValues(code).Inc()
}

func RecordRoleUpgrade(role string) {
	roleUpgradesTotal.WithLabelValues(role).Inc()
}
