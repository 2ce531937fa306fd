// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

package api_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora/internal/api"
)

func newHealthRecorder(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", path, nil))
	return recorder
}

/*
TestReadiness_AllDependenciesHealthy verifies the happy readiness path.

Expected: 200 with status "ready" and a result per configured check.
*/
func TestReadiness_AllDependenciesHealthy(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	}, slog.New(slog.DiscardHandler))

	recorder := newHealthRecorder(t, readiness, "/ready")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
	assert.Contains(t, recorder.Body.String(), "postgres")
	assert.Contains(t, recorder.Body.String(), "redis")
}

/*
TestReadiness_DegradedDependencyIs503 verifies the degraded readiness path.

Scenario: The database ping fails while Redis is healthy.

Expected: 503 carrying the SERVICE_UNAVAILABLE code alongside the
per-dependency check results.
*/
func TestReadiness_DegradedDependencyIs503(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return errors.New("connection refused") },
		CheckCache:    func() error { return nil },
	}, slog.New(slog.DiscardHandler))

	recorder := newHealthRecorder(t, readiness, "/ready")

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "SERVICE_UNAVAILABLE")
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

/*
TestLiveness verifies the liveness probe never depends on anything.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.DiscardHandler))

	recorder := newHealthRecorder(t, liveness, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
