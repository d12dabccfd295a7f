package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"datathieves/internal/domain"
	"datathieves/internal/events"
)

const journalFile = "events.jsonl"

var saveIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// JSONStore keeps one JSON file per save and an append-only event journal
// in a directory.
type JSONStore struct {
	dir string
	mu  sync.Mutex
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

var _ Journal = (*JSONStore)(nil)

func (s *JSONStore) path(saveID string) (string, error) {
	if !saveIDPattern.MatchString(saveID) {
		return "", &domain.OpError{Op: "jsonstore.path", Kind: domain.KindInvalid, Err: fmt.Errorf("bad save id %q", saveID)}
	}
	return filepath.Join(s.dir, saveID+".json"), nil
}

func (s *JSONStore) Load(_ context.Context, saveID string) (domain.GameState, error) {
	p, err := s.path(saveID)
	if err != nil {
		return domain.GameState{}, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.GameState{}, &domain.OpError{Op: "jsonstore.load", Kind: domain.KindNotFound, Path: p, Err: domain.ErrNotFound}
		}
		return domain.GameState{}, &domain.OpError{Op: "jsonstore.load", Kind: domain.KindExecution, Path: p, Err: err}
	}

	if err := ValidateSave(data); err != nil {
		return domain.GameState{}, &domain.OpError{Op: "jsonstore.validate", Kind: domain.KindInvalid, Path: p, Err: err}
	}

	var st domain.GameState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.GameState{}, &domain.OpError{Op: "jsonstore.decode", Kind: domain.KindInvalid, Path: p, Err: err}
	}
	return st, nil
}

// Save writes the state atomically via a temp file and rename.
func (s *JSONStore) Save(_ context.Context, st domain.GameState) error {
	p, err := s.path(st.SaveID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return &domain.OpError{Op: "jsonstore.encode", Kind: domain.KindExecution, Path: p, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.OpError{Op: "jsonstore.mkdir", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, st.SaveID+".*.tmp")
	if err != nil {
		return &domain.OpError{Op: "jsonstore.tmp", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return &domain.OpError{Op: "jsonstore.write", Kind: domain.KindExecution, Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.OpError{Op: "jsonstore.close", Kind: domain.KindExecution, Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, p); err != nil {
		return &domain.OpError{Op: "jsonstore.rename", Kind: domain.KindExecution, Path: p, Err: err}
	}
	return nil
}

func (s *JSONStore) Delete(_ context.Context, saveID string) error {
	p, err := s.path(saveID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.OpError{Op: "jsonstore.delete", Kind: domain.KindExecution, Path: p, Err: err}
	}
	return nil
}

// Handle appends ev to events.jsonl.
func (s *JSONStore) Handle(_ context.Context, ev events.Event) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", ev.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.OpError{Op: "jsonstore.mkdir", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}
	p := filepath.Join(s.dir, journalFile)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return &domain.OpError{Op: "jsonstore.journal", Kind: domain.KindExecution, Path: p, Err: err}
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return &domain.OpError{Op: "jsonstore.journal", Kind: domain.KindExecution, Path: p, Err: err}
	}
	return nil
}
