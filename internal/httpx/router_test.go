package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsemetrics/adpulse/internal/metrics"
	"github.com/pulsemetrics/adpulse/internal/policy"
	"github.com/pulsemetrics/adpulse/internal/report"
	"github.com/pulsemetrics/adpulse/internal/store"
)

func testServer(t *testing.T) (*Server, *store.DB, *prometheus.Registry) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(db, logger, m), db, reg
}

func seedRun(t *testing.T, db *store.DB, date time.Time) {
	t.Helper()
	_, err := db.InsertReport(report.Report{
		RunID:       "run-" + date.Format("20060102"),
		GeneratedAt: date,
		Period:      report.Period{Type: report.PeriodWeekly, Date: date, WindowDays: 7},
		Status:      policy.PriorityInfo,
		Metrics:     metrics.BlendedMetrics{TotalSpend: 400, BlendedCAC: 17.5, BlendedROAS: 2.25},
		Decision:    policy.Decision{Tier: "autoExecute", Trigger: "blended_roas", Priority: policy.PriorityInfo},
		LeadCount:   40,
	})
	require.NoError(t, err)
}

func TestHealthz(t *testing.T) {
	s, _, reg := testServer(t)
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLatestRun_EmptyReturns404(t *testing.T) {
	s, _, reg := testServer(t)
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestRun_ReturnsDecodedReport(t *testing.T) {
	s, db, reg := testServer(t)
	seedRun(t, db, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "autoExecute", rep.Decision.Tier)
	assert.Equal(t, 17.5, rep.Metrics.BlendedCAC)
}

func TestListRuns_LimitValidation(t *testing.T) {
	s, _, reg := testServer(t)
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRuns_OversizedLimitIsClamped(t *testing.T) {
	s, db, reg := testServer(t)
	seedRun(t, db, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=1000000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var runs []store.RunRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestListRuns_EmptyReturnsArray(t *testing.T) {
	s, _, reg := testServer(t)
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDiff_RequiresAtLeastOneRun(t *testing.T) {
	s, db, reg := testServer(t)
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/diff", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	seedRun(t, db, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/diff", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRun_ByID(t *testing.T) {
	s, db, reg := testServer(t)
	seedRun(t, db, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	router := s.Router(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail runDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "autoExecute", detail.Run.Tier)
	assert.NotNil(t, detail.Bottlenecks)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	s, _, reg := testServer(t)
	router := s.Router(reg)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adpulse_http_requests_total")
	assert.Contains(t, rec.Body.String(), "adpulse_runs_stored")
}
