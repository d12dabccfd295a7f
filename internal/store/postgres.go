package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"datathieves/internal/domain"
	"datathieves/internal/events"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements Journal on top of a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Journal = (*PostgresStore)(nil)

// Connect opens a pool, verifies it and applies the embedded migrations.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, saveID string) (domain.GameState, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM game_saves WHERE save_id = $1`,
		saveID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GameState{}, &domain.OpError{Op: "pgstore.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
		}
		return domain.GameState{}, &domain.OpError{Op: "pgstore.load", Kind: domain.KindExecution, Err: err}
	}

	if err := ValidateSave(raw); err != nil {
		return domain.GameState{}, &domain.OpError{Op: "pgstore.validate", Kind: domain.KindInvalid, Err: err}
	}
	var st domain.GameState
	if err := json.Unmarshal(raw, &st); err != nil {
		return domain.GameState{}, &domain.OpError{Op: "pgstore.decode", Kind: domain.KindInvalid, Err: err}
	}
	return st, nil
}

// Save upserts the state. An older version never overwrites a newer one.
func (s *PostgresStore) Save(ctx context.Context, st domain.GameState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return &domain.OpError{Op: "pgstore.encode", Kind: domain.KindExecution, Err: err}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO game_saves (save_id, state, version, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (save_id) DO UPDATE
		 SET state = EXCLUDED.state, version = EXCLUDED.version, updated_at = NOW()
		 WHERE game_saves.version <= EXCLUDED.version`,
		st.SaveID, raw, int64(st.Version),
	)
	if err != nil {
		return &domain.OpError{Op: "pgstore.save", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, saveID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM game_saves WHERE save_id = $1`, saveID)
	if err != nil {
		return &domain.OpError{Op: "pgstore.delete", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

// Handle records ev in game_events. Replays of the same event are ignored.
func (s *PostgresStore) Handle(ctx context.Context, ev events.Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", ev.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO game_events (save_id, event_id, command_id, type, data, at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT DO NOTHING`,
		ev.SaveID, int64(ev.ID), ev.CommandID, string(ev.Type), data, ev.At,
	)
	if err != nil {
		return &domain.OpError{Op: "pgstore.event", Kind: domain.KindExecution, Err: err}
	}
	return nil
}
