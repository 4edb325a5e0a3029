package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-telegram-cardbot/internal/health"
)

type fakeDB struct {
	pingErr  error
	count    int
	countErr error
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func (f *fakeDB) Count(context.Context) (int, error) { return f.count, f.countErr }

type fakeChats int

func (f fakeChats) Len() int { return int(f) }

func serve(t *testing.T, db *fakeDB, chats int, path string) *httptest.ResponseRecorder {
	t.Helper()

	started := time.Now().Add(-90 * time.Second)
	h := health.NewHandler(zaptest.NewLogger(t), "1.2.3", started, db, db, fakeChats(chats))

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHealth_OK(t *testing.T) {
	rec := serve(t, &fakeDB{}, 0, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp health.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(90))
	assert.Empty(t, resp.Error)
}

func TestHealth_DatabaseDown(t *testing.T) {
	rec := serve(t, &fakeDB{pingErr: errors.New("database is closed")}, 0, "/healthz")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp health.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "database is closed", resp.Error)
}

func TestStats(t *testing.T) {
	rec := serve(t, &fakeDB{count: 42}, 7, "/stats")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp health.StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 42, resp.Scans)
	assert.Equal(t, 7, resp.CachedChats)
}

func TestStats_CountError(t *testing.T) {
	rec := serve(t, &fakeDB{countErr: errors.New("boom")}, 0, "/stats")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to count scans")
}

func TestRouter_UnknownPathAndMethod(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(t, &fakeDB{}, 0, "/metrics").Code)

	h := health.NewHandler(zaptest.NewLogger(t), "dev", time.Now(), &fakeDB{}, &fakeDB{}, fakeChats(0))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
