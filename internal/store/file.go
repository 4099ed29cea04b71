package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// fileStore keeps the whole grid in one JSON snapshot and replaces it
// atomically (write temp + rename) on every save. The grid is small (a few
// hundred slots at most), so rewriting it wholesale is cheaper than a journal.
type fileStore struct {
	log  logx.Logger
	path string

	mu     sync.Mutex
	closed bool
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("store.path is required for file driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &fileStore{log: log, path: path}, nil
}

func (s *fileStore) Load(ctx context.Context) (slot.Grid, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return slot.Grid{}, nil
	}
	if err != nil {
		return nil, err
	}
	g, err := decodeGrid(b)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *fileStore) Save(ctx context.Context, g slot.Grid) error {
	_ = ctx
	b, err := encodeGrid(g)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
