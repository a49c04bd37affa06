package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenprep/backend/internal/api"
	"github.com/citizenprep/backend/internal/cache"
	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/stats"
	"github.com/citizenprep/backend/internal/domain/testset"
	"github.com/citizenprep/backend/internal/service"
	"github.com/citizenprep/backend/internal/store"
)

func newServer(t *testing.T) (http.Handler, *store.SQLiteStore) {
	t.Helper()

	pools := make(testset.Pools)
	for _, cat := range question.Categories {
		for i := 0; i < 10; i++ {
			correct := fmt.Sprintf("%s answer %d", cat, i)
			pools[cat] = append(pools[cat], question.Question{
				Text:          fmt.Sprintf("%s question %d", cat, i),
				Options:       []string{correct, "wrong"},
				CorrectAnswer: correct,
				Category:      cat,
			})
		}
	}

	st, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.NewPracticeService(pools, st, cache.NewMemory(), nil, logger, service.Options{
		FreeLimit: 1,
		Rand:      rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, logger))
	return api.Logging(logger)(api.CORS(mux)), st
}

func do(t *testing.T, h http.Handler, method, path, body string, premium bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("X-User-ID", "user-1")
	if premium {
		req.Header.Set("X-Premium", "true")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// correctBody answers every question of the test at path correctly.
func correctBody(t *testing.T, h http.Handler, path string) string {
	t.Helper()
	rec := do(t, h, http.MethodGet, path, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var test api.TestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&test))

	answers := make([]string, len(test.Questions))
	for i, q := range test.Questions {
		answers[i] = q.Options[0]
	}
	raw, err := json.Marshal(map[string]any{"answers": answers, "time_used_seconds": 900})
	require.NoError(t, err)
	return string(raw)
}

func TestHealth(t *testing.T) {
	h, _ := newServer(t)
	rec := do(t, h, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTests(t *testing.T) {
	h, _ := newServer(t)

	rec := do(t, h, http.MethodGet, "/tests/guided", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing service.Listing
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listing))
	require.Len(t, listing.Tests, 2)
	assert.False(t, listing.Tests[0].Locked)
	assert.True(t, listing.Tests[1].Locked)
}

func TestListTests_UnknownType(t *testing.T) {
	h, _ := newServer(t)
	rec := do(t, h, http.MethodGet, "/tests/mock", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissingUser(t *testing.T) {
	h, _ := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/tests/guided", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTest(t *testing.T) {
	h, _ := newServer(t)

	rec := do(t, h, http.MethodGet, "/tests/sequential/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correct_answer")

	var test api.TestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&test))
	assert.Len(t, test.Questions, testset.Size)
	assert.Equal(t, 2700, test.DurationSeconds)
}

func TestGetTest_Errors(t *testing.T) {
	h, _ := newServer(t)

	tests := []struct {
		name    string
		path    string
		premium bool
		want    int
	}{
		{"locked for free user", "/tests/guided/2", false, http.StatusForbidden},
		{"random is premium only", "/tests/random/1", false, http.StatusForbidden},
		{"out of range", "/tests/guided/3", true, http.StatusNotFound},
		{"bad id", "/tests/guided/abc", true, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "", tt.premium)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSubmitAttempt(t *testing.T) {
	h, _ := newServer(t)
	body := correctBody(t, h, "/tests/guided/1")

	rec := do(t, h, http.MethodPost, "/tests/guided/1/attempts", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SubmitAttemptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Persisted)
	assert.Equal(t, 100, resp.Scored.ScorePercent)
	assert.True(t, resp.Scored.Passed)
	assert.Equal(t, 1, resp.Summary.TotalPassed)
	assert.Empty(t, resp.Warning)
}

func TestSubmitAttempt_Random(t *testing.T) {
	h, _ := newServer(t)
	body := correctBody(t, h, "/tests/random/2")

	rec := do(t, h, http.MethodPost, "/tests/random/2/attempts", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SubmitAttemptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 100, resp.Scored.ScorePercent)
}

func TestSubmitAttempt_RandomNotOpened(t *testing.T) {
	h, _ := newServer(t)

	answers := make([]string, testset.Size)
	for i := range answers {
		answers[i] = "wrong"
	}
	raw, err := json.Marshal(map[string]any{"answers": answers})
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/tests/random/1/attempts", string(raw), true)
	assert.Equal(t, http.StatusGone, rec.Code)

	rec = do(t, h, http.MethodGet, "/tests/random/stats", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAttempt_BadRequests(t *testing.T) {
	h, _ := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing answers", `{"time_used_seconds": 10}`},
		{"negative time", `{"answers": [], "time_used_seconds": -1}`},
		{"rating out of range", `{"answers": [], "feedback_rating": 6}`},
		{"wrong answer count", `{"answers": ["a", null]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/tests/guided/1/attempts", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitAttempt_PersistenceFailure(t *testing.T) {
	h, st := newServer(t)
	body := correctBody(t, h, "/tests/guided/1")
	require.NoError(t, st.Close())

	rec := do(t, h, http.MethodPost, "/tests/guided/1/attempts", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SubmitAttemptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Persisted)
	assert.Equal(t, 100, resp.Scored.ScorePercent)
	assert.NotEmpty(t, resp.Warning)
}

func TestStats(t *testing.T) {
	h, _ := newServer(t)

	rec := do(t, h, http.MethodGet, "/tests/guided/1/stats", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/tests/guided/stats", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := correctBody(t, h, "/tests/guided/1")
	rec = do(t, h, http.MethodPost, "/tests/guided/1/attempts", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/tests/guided/1/stats", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var ts stats.TestStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ts))
	assert.Equal(t, 1, ts.TotalAttempts)
	assert.Equal(t, 100, ts.BestScore)

	rec = do(t, h, http.MethodGet, "/tests/guided/stats", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var report service.TypeReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 1, report.Stats.TestsAttempted)
	assert.Equal(t, 100, report.Stats.PassRate)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/tests/guided", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
