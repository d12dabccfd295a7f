package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datathieves/internal/catalog"
	"datathieves/internal/clock"
	"datathieves/internal/config"
	"datathieves/internal/domain"
	"datathieves/internal/store"
	"datathieves/internal/viewmodel"
)

func newTestRouter(t *testing.T, money uint64) http.Handler {
	t.Helper()
	return newTestRouterWithRepo(t, money, store.NewJSONStore(t.TempDir()))
}

func newTestRouterWithRepo(t *testing.T, money uint64, repo store.Repository) http.Handler {
	t.Helper()
	cat, err := catalog.Parse([]byte(`
curve: {cost_growth_pct: 200, earn_growth_pct: 150, duration_shrink_pct: 0, min_duration_secs: 1}
jobs:
  - {id: scan, name: port scan, cost: 10, earn: 2, duration_secs: 5}
  - {id: phish, name: phishing, cost: 5000, earn: 20, duration_secs: 10}
`))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.StartingMoney = money
	cfg.SaveInterval = time.Hour

	vm, err := viewmodel.New(context.Background(), viewmodel.Deps{
		Config:  cfg,
		Catalog: cat,
		Clock:   clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Repo:    repo,
		Log:     zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = vm.Clear() })

	return NewRouter(NewApp(vm, zerolog.Nop()))
}

func do(t *testing.T, h http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, 0)
	rec, body := do(t, h, http.MethodGet, "/v1/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStateAndJobs(t *testing.T) {
	h := newTestRouter(t, 1500)

	rec, body := do(t, h, http.MethodGet, "/v1/state")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.5K", body["stashed_money_display"])
	assert.Equal(t, "default", body["save_id"])

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []jobView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 2)
	assert.Equal(t, "Port Scan", jobs[0].Name)
	assert.Equal(t, int64(5), jobs[0].DurationSecs)
	assert.False(t, jobs[0].AlreadyBought)
}

func TestCollect(t *testing.T) {
	h := newTestRouter(t, 0)

	rec, body := do(t, h, http.MethodPost, "/v1/collect")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["stashed_money"])
}

func TestHireWorkerFlow(t *testing.T) {
	h := newTestRouter(t, 10)

	rec, _ := do(t, h, http.MethodPost, "/v1/jobs/phish/workers")
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec, body := do(t, h, http.MethodPost, "/v1/jobs/scan/workers")
	require.Equal(t, http.StatusCreated, rec.Code)
	jobs := body["jobs"].([]any)
	assert.Equal(t, true, jobs[0].(map[string]any)["already_bought"])

	rec, body = do(t, h, http.MethodPost, "/v1/jobs/scan/workers")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, body["error"], "already owned")

	rec, _ = do(t, h, http.MethodPost, "/v1/jobs/nope/workers")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpgradeAndReset(t *testing.T) {
	h := newTestRouter(t, 30)

	rec, body := do(t, h, http.MethodPost, "/v1/jobs/scan/upgrade")
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := body["jobs"].([]any)
	assert.Equal(t, float64(2), jobs[0].(map[string]any)["level"])
	assert.Equal(t, float64(20), body["stashed_money"])

	rec, _ = do(t, h, http.MethodPost, "/v1/jobs/nope/upgrade")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, h, http.MethodPost, "/v1/reset")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(30), body["stashed_money"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("x: %w", domain.ErrUnknownJob)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(domain.ErrAlreadyOwned))
	assert.Equal(t, http.StatusConflict, HTTPStatus(domain.ErrMaxLevel))
	assert.Equal(t, http.StatusPaymentRequired, HTTPStatus(domain.ErrInsufficientFunds))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

type readOnlyRepo struct{}

func (readOnlyRepo) Load(context.Context, string) (domain.GameState, error) {
	return domain.GameState{}, domain.ErrNotFound
}
func (readOnlyRepo) Save(context.Context, domain.GameState) error { return errors.New("read-only") }
func (readOnlyRepo) Delete(context.Context, string) error         { return nil }

func TestUnsavedIntentStillSucceeds(t *testing.T) {
	h := newTestRouterWithRepo(t, 100, readOnlyRepo{})

	rec, body := do(t, h, http.MethodPost, "/v1/jobs/scan/upgrade")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Save-Pending"))
	assert.Equal(t, float64(90), body["stashed_money"])

	rec, _ = do(t, h, http.MethodPost, "/v1/jobs/scan/workers")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Save-Pending"))

	rec, _ = do(t, h, http.MethodPost, "/v1/jobs/scan/workers")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Save-Pending"))
}
