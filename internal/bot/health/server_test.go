package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trustbot/internal/logging"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error { return p.err }

func newTestServer(t *testing.T, pingErr error) (*Server, *Status) {
	t.Helper()
	status := NewStatus()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewServer(":0", logger, status, &fakePinger{err: pingErr}), status
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth_AliveReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestHealth_DownReturns503(t *testing.T) {
	srv, status := newTestServer(t, nil)
	status.SetAlive(false)
	h := srv.Handler()

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestReady_StoreUnreachableReturns503(t *testing.T) {
	srv, _ := newTestServer(t, errors.New("connection refused"))
	h := srv.Handler()

	assert.Equal(t, http.StatusOK, get(t, h, "/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/health/ready").Code)
}

func TestStatusUpdate_FlipsFlag(t *testing.T) {
	srv, status := newTestServer(t, nil)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/status/update", strings.NewReader(`{"alive": false}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, status.Alive())

	req = httptest.NewRequest(http.MethodPost, "/status/update", strings.NewReader(`{"alive": true}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, status.Alive())
}

func TestStatusUpdate_BadBodyReturns400(t *testing.T) {
	srv, status := newTestServer(t, nil)
	h := srv.Handler()

	for _, body := range []string{``, `{}`, `{"alive": "yes"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/status/update", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.True(t, status.Alive(), "bad requests must not flip the flag")
}

func TestMetrics_Counters(t *testing.T) {
	srv, status := newTestServer(t, nil)
	status.IncUpdates()
	status.IncUpdates()
	status.IncLookups()
	h := srv.Handler()

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updates_total":2`)
	assert.Contains(t, rec.Body.String(), `"lookups_total":1`)
}

func TestInfo(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec := get(t, h, "/info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"trustbot"`)
	assert.Contains(t, rec.Body.String(), `"version"`)
}
