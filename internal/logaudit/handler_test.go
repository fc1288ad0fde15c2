package logaudit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewRepository(setupTestDB(t))
	handler := NewHandler(NewService(repo))

	router := gin.New()
	internal := router.Group("/v1/internal")
	internal.GET("/logs", handler.GetLogs)
	internal.GET("/logs/service/:service", handler.GetLogsByService)
	internal.GET("/logs/level/:level", handler.GetLogsByLevel)
	return router, repo
}

func getLogs(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEntries(t *testing.T, recorder *httptest.ResponseRecorder) []Entry {
	t.Helper()
	var entries []Entry
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &entries))
	return entries
}

func TestGetLogsEndpointNewestFirst(t *testing.T) {
	router, repo := newTestRouter(t)
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	seedEntry(t, repo, "info", "verifier-api", "first", base)
	seedEntry(t, repo, "error", "chain-worker", "second", base.Add(time.Minute))

	recorder := getLogs(router, "/v1/internal/logs")
	require.Equal(t, http.StatusOK, recorder.Code)

	entries := decodeEntries(t, recorder)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "first", entries[1].Message)
}

func TestGetLogsEndpointRejectsOversizedLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := getLogs(router, "/v1/internal/logs?limit=1001")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetLogsEndpointDefaultsGarbagePaging(t *testing.T) {
	router, repo := newTestRouter(t)
	seedEntry(t, repo, "info", "verifier-api", "kept", time.Now().UTC())

	recorder := getLogs(router, "/v1/internal/logs?limit=abc&offset=-3")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decodeEntries(t, recorder), 1)
}

func TestGetLogsByServiceEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)
	now := time.Now().UTC()
	seedEntry(t, repo, "info", "verifier-api", "api line", now)
	seedEntry(t, repo, "info", "chain-worker", "worker line", now)

	recorder := getLogs(router, "/v1/internal/logs/service/chain-worker")
	require.Equal(t, http.StatusOK, recorder.Code)

	entries := decodeEntries(t, recorder)
	require.Len(t, entries, 1)
	assert.Equal(t, "worker line", entries[0].Message)
}

func TestGetLogsByLevelEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)
	now := time.Now().UTC()
	seedEntry(t, repo, "info", "verifier-api", "fine", now)
	seedEntry(t, repo, "error", "verifier-api", "broken", now)

	recorder := getLogs(router, "/v1/internal/logs/level/error")
	require.Equal(t, http.StatusOK, recorder.Code)

	entries := decodeEntries(t, recorder)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].Message)
}
