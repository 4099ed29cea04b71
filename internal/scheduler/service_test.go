package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// testNow is a Monday morning; instagram's first default slot (19:00 Monday)
// is still ahead of it on the same day.
var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := New(Config{}, nil, logx.Nop())
	s.nowFn = func() time.Time { return now }
	return s
}

// newSeededService returns a service with every platform's default table
// seeded, as after a clean Init with an empty store.
func newSeededService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := newTestService(t, now)
	s.Init(context.Background())
	return s
}

// brokenStore fails every operation, standing in for an unreachable backend.
type brokenStore struct{}

func (brokenStore) Load(context.Context) (slot.Grid, error) { return nil, errors.New("backend down") }
func (brokenStore) Save(context.Context, slot.Grid) error   { return errors.New("backend down") }
func (brokenStore) Close() error                            { return nil }

func TestInitStoreFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	s := New(Config{}, brokenStore{}, logx.Nop())
	s.nowFn = func() time.Time { return testNow }
	s.Init(context.Background())

	// Recommendations must still work off the compiled-in tables.
	rec, err := s.OptimalTime(context.Background(), "instagram", RecommendOptions{})
	if err != nil {
		t.Fatalf("OptimalTime after load failure: %v", err)
	}
	if rec.Fallback {
		t.Fatal("defaults were not seeded after load failure")
	}
	if got := s.Stats().LoadFallbacks; got != 1 {
		t.Fatalf("load fallback counter = %d, want 1", got)
	}

	// A save failure is absorbed and counted, never surfaced.
	s.SaveNow(context.Background())
	if got := s.Stats().SaveFailures; got != 1 {
		t.Fatalf("save failure counter = %d, want 1", got)
	}
}

func TestInitSeedsConfiguredPlatformTable(t *testing.T) {
	t.Parallel()
	s := New(Config{
		PlatformDefaults: map[string][]slot.Key{
			"mastodon": {{Hour: 18, Weekday: 2}, {Hour: 12, Weekday: 5}},
		},
	}, nil, logx.Nop())
	s.nowFn = func() time.Time { return testNow }
	s.Init(context.Background())

	rec, err := s.OptimalTime(context.Background(), "mastodon", RecommendOptions{})
	if err != nil {
		t.Fatalf("OptimalTime for configured platform: %v", err)
	}
	if h := rec.TimeUTC.Hour(); h != 18 && h != 12 {
		t.Fatalf("pick at hour %d, want one of the configured slots", h)
	}
}
