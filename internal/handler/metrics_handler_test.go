package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/k12-registration-api/internal/dto"
	"github.com/noah-isme/k12-registration-api/internal/service"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMetricsHandlerReady(t *testing.T) {
	h := NewMetricsHandler(nil, map[string]Pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
		"cache":    pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	})
	c, w := newGinContext(http.MethodGet, "/ready", nil)

	h.Ready(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var out dto.HealthResponse
	decodeData(t, decode(t, w), &out)
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, map[string]string{"database": "ok", "cache": "unavailable"}, out.Checks)
	assert.NotContains(t, w.Body.String(), "refused")
}

func TestMetricsHandlerHealthAndPrometheus(t *testing.T) {
	m := service.NewMetricsService()
	m.RecordRegistration(service.ChannelForm)
	h := NewMetricsHandler(m, nil)

	c, w := newGinContext(http.MethodGet, "/health", nil)
	h.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "registrations_submitted_total")

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
