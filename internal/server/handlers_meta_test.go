package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/api"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get(t, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[api.HealthResponse](t, w)
	assert.Equal(t, api.HealthResponse{Status: "ok", Posts: 2, Projects: 2, Version: "test"}, resp)
}

func TestHealthReportsMissingContent(t *testing.T) {
	env := newTestEnv(t, nil)
	env.server.cfg.Content.ProjectsDir = env.postsDir + "-missing"

	w := env.get(t, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody[api.HealthResponse](t, w)
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, 2, resp.Posts)
	assert.Zero(t, resp.Projects)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	require.Equal(t, http.StatusOK, env.get(t, "/blog/").Code)

	w := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `inkwell_http_requests_total{method="GET",route="GET /blog/{$}",status="200"}`)
	assert.Contains(t, body, `inkwell_content_skipped_total{kind="post"}`)
	assert.Contains(t, body, "inkwell_http_request_duration_seconds")
}
