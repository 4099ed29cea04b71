package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

type postgresStore struct {
	db  *sql.DB
	log logx.Logger
}

func openPostgres(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("store.dsn is required for postgres driver")
	}
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	st := &postgresStore{db: db, log: log}
	if err := st.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *postgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS slots (
			platform     TEXT             NOT NULL,
			hour         INTEGER          NOT NULL,
			day_of_week  INTEGER          NOT NULL,
			score        DOUBLE PRECISION NOT NULL,
			confidence   DOUBLE PRECISION NOT NULL,
			sample_count INTEGER          NOT NULL,
			last_updated TIMESTAMPTZ      NOT NULL,
			PRIMARY KEY (platform, hour, day_of_week)
		)`)
	return err
}

func (s *postgresStore) Load(ctx context.Context) (slot.Grid, error) {
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
		var updated time.Time
		if err := rows.Scan(&sl.Platform, &sl.Hour, &sl.Weekday, &sl.Score, &sl.Confidence, &sl.SampleCount, &updated); err != nil {
			return nil, err
		}
		sl.LastUpdated = updated.UTC()
		g.Put(&sl)
	}
	return g, rows.Err()
}

func (s *postgresStore) Save(ctx context.Context, g slot.Grid) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slots(platform, hour, day_of_week, score, confidence, sample_count, last_updated)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (platform, hour, day_of_week) DO UPDATE SET
		  score=EXCLUDED.score, confidence=EXCLUDED.confidence,
		  sample_count=EXCLUDED.sample_count, last_updated=EXCLUDED.last_updated`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, slots := range g {
		for _, sl := range slots {
			_, err := stmt.ExecContext(ctx,
				sl.Platform, sl.Hour, sl.Weekday, sl.Score, sl.Confidence, sl.SampleCount, sl.LastUpdated)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *postgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
