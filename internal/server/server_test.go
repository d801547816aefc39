package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ku524/clickhouse-datasource/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Addr:         ":0",
		DefaultLimit: 1000,
		TimeColumn:   "timestamp",
		Logger:       testutil.NewLogger(t),
	})
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeRewrite(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp rewriteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.SQL
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPaginateAppliesDefaultLimit(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/paginate", paginateRequest{SQL: "SELECT * FROM logs"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT * FROM logs LIMIT 1000", decodeRewrite(t, rec))
}

func TestPaginateKeepsExistingLimit(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/paginate", paginateRequest{SQL: "SELECT * FROM logs LIMIT 5", Limit: 100})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT * FROM logs LIMIT 5", decodeRewrite(t, rec))
}

func TestPaginateInjectsOrderBy(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/paginate", paginateRequest{
		SQL:     "SELECT * FROM logs",
		Limit:   10,
		OrderBy: "ts",
		Order:   "desc",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `SELECT * FROM logs ORDER BY "ts" DESC LIMIT 10`, decodeRewrite(t, rec))
}

func TestPaginateRejectsEmptySQL(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/paginate", paginateRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sql is required")
}

func TestPaginateRejectsBadJSON(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/paginate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestContextBuildsQuery(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/context", contextRequest{
		SQL:      "SELECT * FROM logs",
		TimeExpr: "T0",
		Limit:    10,
		Filters:  []contextFilter{{Column: "service", Value: "api"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	// Direction defaults to backward and the time column to the configured one.
	assert.Equal(t, `SELECT * FROM logs WHERE "service" = 'api' AND "timestamp" <= T0 ORDER BY "timestamp" DESC LIMIT 10`, decodeRewrite(t, rec))
}

func TestContextForwardDirection(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/context", contextRequest{
		SQL:        "SELECT * FROM logs",
		TimeColumn: "ts",
		TimeExpr:   "T0",
		Direction:  "forward",
		Limit:      5,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `SELECT * FROM logs WHERE "ts" >= T0 ORDER BY "ts" ASC LIMIT 5`, decodeRewrite(t, rec))
}

func TestContextValidation(t *testing.T) {
	router := newTestServer(t).Router()

	t.Run("missing sql", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/context", contextRequest{TimeExpr: "T0"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "sql is required")
	})

	t.Run("missing time expr", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/context", contextRequest{SQL: "SELECT 1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "time_expr is required")
	})

	t.Run("bad direction", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/context", contextRequest{
			SQL:      "SELECT 1",
			TimeExpr:  "T0",
			Direction: "sideways",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "direction")
	})
}

func TestInspectReportsClauses(t *testing.T) {
	router := newTestServer(t).Router()

	rec := postJSON(t, router, "/api/v1/inspect", inspectRequest{
		SQL: "SELECT count() FROM logs WHERE level = 'ERROR'",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp inspectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.ScalarAggregate)
	assert.False(t, resp.HasLimit)
	assert.False(t, resp.HasOrderBy)
	assert.Contains(t, resp.Clauses, "WHERE")
	assert.NotContains(t, resp.Clauses, "LIMIT")
}
