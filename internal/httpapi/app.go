package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"datathieves/internal/domain"
	"datathieves/internal/format"
)

// Game is the view-model surface exposed over HTTP.
type Game interface {
	Snapshot() domain.GameState
	ClickMoney(ctx context.Context) (domain.GameState, error)
	AddWorker(ctx context.Context, job domain.GameJob) (domain.GameState, error)
	UpgradeJob(ctx context.Context, job domain.GameJob) (domain.GameState, error)
	Reset(ctx context.Context) (domain.GameState, error)
}

type App struct {
	Game Game
	Log  zerolog.Logger
}

func NewApp(g Game, log zerolog.Logger) *App {
	return &App{Game: g, Log: log}
}

type jobView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Level         uint32 `json:"level"`
	Cost          uint64 `json:"cost"`
	CostDisplay   string `json:"cost_display"`
	Earn          uint64 `json:"earn"`
	EarnDisplay   string `json:"earn_display"`
	DurationSecs  int64  `json:"duration_secs"`
	AlreadyBought bool   `json:"already_bought"`
}

type stateView struct {
	SaveID       string    `json:"save_id"`
	Version      uint64    `json:"version"`
	StashedMoney uint64    `json:"stashed_money"`
	MoneyDisplay string    `json:"stashed_money_display"`
	Jobs         []jobView `json:"jobs"`
}

func newJobView(st domain.GameState, j domain.GameJob) jobView {
	return jobView{
		ID:            j.ID,
		Name:          j.Name,
		Level:         j.Level.Level,
		Cost:          uint64(j.Level.Cost),
		CostDisplay:   format.HumanReadable(j.Level.Cost),
		Earn:          uint64(j.Level.Earn),
		EarnDisplay:   format.HumanReadable(j.Level.Earn),
		DurationSecs:  format.Seconds(j.Level.Duration),
		AlreadyBought: st.HasWorker(j.ID),
	}
}

func newStateView(st domain.GameState) stateView {
	jobs := make([]jobView, 0, len(st.AvailableJobs))
	for _, j := range st.AvailableJobs {
		jobs = append(jobs, newJobView(st, j))
	}
	return stateView{
		SaveID:       st.SaveID,
		Version:      st.Version,
		StashedMoney: uint64(st.StashedMoney),
		MoneyDisplay: format.HumanReadable(st.StashedMoney),
		Jobs:         jobs,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		a.Log.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("http.request_failed")
	}
	a.json(w, code, map[string]string{"error": err.Error()})
}

// HTTPStatus returns the status code for a game error.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownJob), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyOwned), errors.Is(err, domain.ErrMaxLevel):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
