// Package store persists game saves and the event journal.
package store

import (
	"context"

	"datathieves/internal/domain"
	"datathieves/internal/events"
)

// Repository loads and saves game state by save id. Load returns an error
// matching domain.ErrNotFound when no save exists.
type Repository interface {
	Load(ctx context.Context, saveID string) (domain.GameState, error)
	Save(ctx context.Context, st domain.GameState) error
	Delete(ctx context.Context, saveID string) error
}

// Journal is a Repository that also records game events.
type Journal interface {
	Repository
	events.Sink
}
