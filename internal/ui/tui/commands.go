package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"datathieves/internal/domain"
)

const intentTimeout = 5 * time.Second

func waitForState(ch <-chan *domain.GameState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		return stateMsg{st: st, ok: ok}
	}
}

func runIntent(name string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), intentTimeout)
		defer cancel()
		return intentDoneMsg{intent: name, err: fn(ctx)}
	}
}

func cmdCollect(g GameModel) tea.Cmd {
	return runIntent("collect", func(ctx context.Context) error {
		_, err := g.ClickMoney(ctx)
		return err
	})
}

func cmdBuy(g GameModel, job domain.GameJob) tea.Cmd {
	return runIntent("purchase", func(ctx context.Context) error {
		_, err := g.AddWorker(ctx, job)
		return err
	})
}

func cmdUpgrade(g GameModel, job domain.GameJob) tea.Cmd {
	return runIntent("upgrade", func(ctx context.Context) error {
		_, err := g.UpgradeJob(ctx, job)
		return err
	})
}

func cmdReset(g GameModel) tea.Cmd {
	return runIntent("reset", func(ctx context.Context) error {
		_, err := g.Reset(ctx)
		return err
	})
}

// cmdQuit disposes the view-model before the program exits.
func cmdQuit(g GameModel) tea.Cmd {
	return func() tea.Msg {
		_ = g.Clear()
		return tea.QuitMsg{}
	}
}

func toastAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Not enough Data"
	case errors.Is(err, domain.ErrAlreadyOwned):
		return "Already purchased"
	case errors.Is(err, domain.ErrUnknownJob):
		return "That source no longer exists"
	case errors.Is(err, domain.ErrMaxLevel):
		return "Max level reached"
	case errors.Is(err, domain.ErrNotPersisted):
		return "Done, but not saved yet"
	default:
		return "Something went wrong (see logs)"
	}
}
