package tui

import (
	"context"

	"github.com/rs/zerolog"

	"datathieves/internal/domain"
)

// GameModel is the view-model surface the screen binds to.
type GameModel interface {
	GameState() <-chan *domain.GameState
	ClickMoney(ctx context.Context) (domain.GameState, error)
	AddWorker(ctx context.Context, job domain.GameJob) (domain.GameState, error)
	UpgradeJob(ctx context.Context, job domain.GameJob) (domain.GameState, error)
	Reset(ctx context.Context) (domain.GameState, error)
	Clear() error
}

type Deps struct {
	Game GameModel
	Log  zerolog.Logger
}
