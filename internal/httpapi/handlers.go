package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datathieves/internal/domain"
)

func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) GetState(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, newStateView(a.Game.Snapshot()))
}

func (a *App) ListJobs(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, newStateView(a.Game.Snapshot()).Jobs)
}

func (a *App) Collect(w http.ResponseWriter, r *http.Request) {
	st, err := a.Game.ClickMoney(r.Context())
	a.applied(w, r, http.StatusOK, st, err)
}

func (a *App) HireWorker(w http.ResponseWriter, r *http.Request) {
	job, err := a.lookupJob(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	st, err := a.Game.AddWorker(r.Context(), job)
	a.applied(w, r, http.StatusCreated, st, err)
}

func (a *App) UpgradeJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.lookupJob(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	st, err := a.Game.UpgradeJob(r.Context(), job)
	a.applied(w, r, http.StatusOK, st, err)
}

func (a *App) Reset(w http.ResponseWriter, r *http.Request) {
	st, err := a.Game.Reset(r.Context())
	a.applied(w, r, http.StatusOK, st, err)
}

// applied answers an intent. An intent that changed the game but could not
// be saved still succeeds, flagged with X-Save-Pending; autosave retries.
func (a *App) applied(w http.ResponseWriter, r *http.Request, code int, st domain.GameState, err error) {
	if err != nil && !errors.Is(err, domain.ErrNotPersisted) {
		a.fail(w, r, err)
		return
	}
	if err != nil {
		a.Log.Warn().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("http.save_pending")
		w.Header().Set("X-Save-Pending", "true")
	}
	a.json(w, code, newStateView(st))
}

func (a *App) lookupJob(r *http.Request) (domain.GameJob, error) {
	id := chi.URLParam(r, "id")
	job, ok := a.Game.Snapshot().Job(id)
	if !ok {
		return domain.GameJob{}, fmt.Errorf("job %q: %w", id, domain.ErrUnknownJob)
	}
	return job, nil
}
