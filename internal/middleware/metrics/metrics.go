// Package metrics exposes Prometheus collectors for the HTTP server.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	authFailures *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_server_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_server_requests_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status_code"},
		),
		authFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admin_auth_failures_total",
				Help: "Admin requests rejected by the gate or by login",
			},
			[]string{"reason"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ratelimit_dropped_total",
				Help: "Total number of requests dropped due to rate limiting",
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.authFailures, m.rateLimited)
	return m
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}
			code := strconv.Itoa(status)

			m.requests.WithLabelValues(c.Request().Method, route, code).Inc()
			m.duration.WithLabelValues(c.Request().Method, route, code).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) AuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}
