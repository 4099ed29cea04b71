package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("store.path is required for sqlite driver")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Load(ctx context.Context) (slot.Grid, error) {
	if s == nil || s.db == nil {
		return nil, ErrDisabled
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, hour, day_of_week, score, confidence, sample_count, last_updated FROM slots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	g := slot.Grid{}
	for rows.Next() {
		var sl slot.Slot
		var updated string
		if err := rows.Scan(&sl.Platform, &sl.Hour, &sl.Weekday, &sl.Score, &sl.Confidence, &sl.SampleCount, &updated); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			sl.LastUpdated = t
		}
		g.Put(&sl)
	}
	return g, rows.Err()
}

func (s *sqliteStore) Save(ctx context.Context, g slot.Grid) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO slots(platform, hour, day_of_week, score, confidence, sample_count, last_updated)
		 VALUES(?,?,?,?,?,?,?)
		 ON CONFLICT(platform, hour, day_of_week) DO UPDATE SET
		   score=excluded.score, confidence=excluded.confidence,
		   sample_count=excluded.sample_count, last_updated=excluded.last_updated`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, slots := range g {
		for _, sl := range slots {
			_, err := stmt.ExecContext(ctx,
				sl.Platform, sl.Hour, sl.Weekday, sl.Score, sl.Confidence, sl.SampleCount,
				sl.LastUpdated.Format(time.RFC3339Nano))
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
