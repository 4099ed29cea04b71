package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

var (
	ErrDisabled = errors.New("slot store disabled")
	ErrClosed   = errors.New("slot store closed")
)

// Store persists the learned slot grid. Load returns an empty grid (not an
// error) when nothing has been saved yet; callers seed defaults on top.
//
// Persistence is at-most-once: the scheduler keeps its in-memory grid
// authoritative and treats Save failures as log-and-continue.
type Store interface {
	Load(ctx context.Context) (slot.Grid, error)
	Save(ctx context.Context, g slot.Grid) error
	Close() error
}

// Config selects and configures a driver.
//
// Driver values:
//   - "file": single JSON snapshot with atomic replace
//   - "sqlite": SQLite database file
//   - "postgres": PostgreSQL via DSN
//   - "redis": one hash per platform
//
// Empty or "none" disables persistence (memory-only operation).
type Config struct {
	Driver string

	Path        string        // file, sqlite
	BusyTimeout time.Duration // sqlite only; 0 means default

	DSN string // postgres

	Addr      string // redis
	Password  string // redis
	DB        int    // redis
	KeyPrefix string // redis; default "postpilot"
}

// Open initializes the configured store.
// It returns (nil, nil) if persistence is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	case "postgres", "postgresql":
		return openPostgres(cfg, log)
	case "redis":
		return openRedis(cfg, log)
	default:
		return nil, errors.New("unknown store driver: " + driver)
	}
}
