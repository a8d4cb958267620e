package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/repository"
	"github.com/alexanderramin/tdee/internal/service"
	"github.com/alexanderramin/tdee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, service.TrackerService, *bytes.Buffer) {
	t.Helper()
	database := testutil.NewTestDB(t)
	tracker := service.NewTrackerService(
		repository.NewSQLiteLogEntryRepo(database),
		repository.NewSQLiteUserProfileRepo(database),
		testutil.NewTestUoW(database),
	)
	var logs bytes.Buffer
	srv := NewServer(tracker, slog.New(slog.NewTextHandler(&logs, nil)))
	srv.now = func() time.Time { return testutil.Day(2) }
	return srv, tracker, &logs
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateLog_RecomputesEstimate(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler([]string{"*"})

	for _, body := range []string{
		`{"date":"2025-01-01","weight":70.0,"calories":2000}`,
		`{"date":"2025-01-02","weight":70.2,"calories":2100}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/logs", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	// No date means today.
	rec := do(t, h, http.MethodPost, "/api/logs", `{"weight":70.4,"calories":2050}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[logWriteResponse](t, rec)
	assert.Equal(t, 1553, resp.TDEE)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "2025-01-03", resp.Entry.Date)
}

func TestCreateLog_ValidationIs400(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler(nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative weight", `{"date":"2025-01-01","weight":-2}`, "weight must be positive"},
		{"no values", `{"date":"2025-01-01"}`, "needs a weight or a calorie value"},
		{"bad date", `{"date":"01/02/2025","weight":70}`, "invalid date"},
		{"bad json", `{"date":`, "invalid JSON body"},
		{"unknown field", `{"date":"2025-01-01","weigth":70}`, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/logs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[errorResponse](t, rec).Error, tt.want)
		})
	}
}

func TestListLogs_DaysFilter(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	ctx := context.Background()
	for _, e := range testutil.GainingLog() {
		_, err := tracker.AddLog(ctx, e)
		require.NoError(t, err)
	}
	h := srv.Handler(nil)

	rec := do(t, h, http.MethodGet, "/api/logs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]logEntryJSON](t, rec)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-01-03", all[0].Date)

	rec = do(t, h, http.MethodGet, "/api/logs?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/logs?days=-3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteLog(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	_, err := tracker.AddLog(context.Background(), testutil.NewTestLogEntry(testutil.Day(0)))
	require.NoError(t, err)
	h := srv.Handler(nil)

	rec := do(t, h, http.MethodDelete, "/api/logs/2025-01-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/logs/2025-01-01", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "not found")

	rec = do(t, h, http.MethodDelete, "/api/logs/yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile_GetAndPatch(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler(nil)

	rec := do(t, h, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[profileJSON](t, rec)
	assert.InDelta(t, domain.DefaultWeeklyRate, p.WeeklyRate, 1e-9)
	assert.Nil(t, p.CalculatedTDEE)

	rec = do(t, h, http.MethodPatch, "/api/profile", `{"start_weight":80,"goal_weight":72,"weekly_rate":-0.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p = decode[profileJSON](t, rec)
	require.NotNil(t, p.CalculatedTDEE)
	assert.Equal(t, 2319, *p.CalculatedTDEE)
	assert.InDelta(t, -0.5, p.WeeklyRate, 1e-9)

	rec = do(t, h, http.MethodPatch, "/api/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryAndTarget(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler(nil)

	rec := do(t, h, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[contract.SummaryResponse](t, rec)
	assert.Equal(t, 2000, summary.TDEE)
	assert.Equal(t, contract.SourceDefault, summary.TDEESource)

	rec = do(t, h, http.MethodGet, "/api/target?rate=-0.5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	target := decode[contract.TargetResponse](t, rec)
	assert.InDelta(t, 1450.0, target.CalorieTarget, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/target?rate=fast", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, rate := range []string{"NaN", "Inf", "-Inf"} {
		rec = do(t, h, http.MethodGet, "/api/target?rate="+rate, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, rate)
		assert.Contains(t, decode[errorResponse](t, rec).Error, "finite number")
	}
}

func TestWriteJSON_EncodeFailureIsServerError(t *testing.T) {
	srv, _, logs := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/target", nil)
	rec := httptest.NewRecorder()

	srv.writeJSON(rec, req, http.StatusOK, contract.TargetResponse{CalorieTarget: math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "encoding response failed", decode[errorResponse](t, rec).Error)
	assert.Contains(t, logs.String(), "api_encode_failed")
}

func TestRecalculate(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	for _, e := range testutil.GainingLog() {
		_, err := tracker.AddLog(context.Background(), e)
		require.NoError(t, err)
	}

	rec := do(t, srv.Handler(nil), http.MethodPost, "/api/recalculate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1240, decode[logWriteResponse](t, rec).TDEE)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler(nil)

	rec := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/profile", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decode[errorResponse](t, rec).Error)

	rec = do(t, h, http.MethodGet, "/api/logs/2025-01-01", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodGet, "/elsewhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decode[errorResponse](t, rec).Error)
}

func TestHandler_CORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/logs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_RecordsRequests(t *testing.T) {
	srv, _, logs := newTestServer(t)
	do(t, srv.Handler(nil), http.MethodGet, "/api/summary", "")

	out := logs.String()
	assert.Contains(t, out, "msg=api_request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/summary")
	assert.Contains(t, out, "status=200")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", srv.Handler(nil), slog.New(slog.DiscardHandler))
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
