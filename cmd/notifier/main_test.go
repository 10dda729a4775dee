package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"library-store/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewMetricsServer(t *testing.T) {
	t.Run("serves prometheus on the configured path", func(t *testing.T) {
		srv := newMetricsServer(config.MetricsConfig{Port: 9091, Path: "/internal/metrics"})

		assert.Equal(t, ":9091", srv.Addr)
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "go_goroutines")
	})

	t.Run("falls back to /metrics", func(t *testing.T) {
		srv := newMetricsServer(config.MetricsConfig{Port: 9091})

		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
