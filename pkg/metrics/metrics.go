package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukkan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dukkan_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// WithdrawalCounter counts ledger outcomes: claimed, completed, rejected.
	WithdrawalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukkan_withdrawals_total",
			Help: "Withdrawal ledger operations by outcome",
		},
		[]string{"outcome"},
	)

	// AdvisorCounter counts advisor answers by source (llm or fallback).
	AdvisorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukkan_advisor_answers_total",
			Help: "AI advisor answers by source",
		},
		[]string{"kind", "source"},
	)

	NotificationPushCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukkan_notification_push_total",
			Help: "Push notification attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDuration, WithdrawalCounter, AdvisorCounter, NotificationPushCounter)
}

// Middleware records request counts and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			RequestCounter.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			RequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
