package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/products/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/products/a", "/api/products/b", "/api/products/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products/:id", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestAuthFailureAndRateLimited(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.AuthFailure("missing")
	m.AuthFailure("invalid")
	m.AuthFailure("invalid")
	m.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.authFailures.WithLabelValues("missing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.authFailures.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}
