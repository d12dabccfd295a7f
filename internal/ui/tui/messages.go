package tui

import "datathieves/internal/domain"

type stateMsg struct {
	st *domain.GameState
	ok bool
}

type intentDoneMsg struct {
	intent string
	err    error
}

type toastExpiredMsg struct {
	seq int
}
