package scheduler

import (
	"math"
	"testing"
	"time"

	"postpilot/internal/slot"
)

func TestScoreStaysWithinBounds(t *testing.T) {
	t.Parallel()
	targets := []time.Time{
		time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC), // Monday
		time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC), // Friday
		time.Date(2025, 3, 15, 19, 0, 0, 0, time.UTC), // Saturday
		time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC),  // first of month
	}
	slots := []*slot.Slot{
		{Score: 0, Confidence: 0, SampleCount: 0},
		{Score: 1, Confidence: 1, SampleCount: 100, LastUpdated: testNow},
		{Score: 0.5, Confidence: 0.5, SampleCount: 5, LastUpdated: testNow.AddDate(0, 0, -90)},
		{Score: 1, Confidence: 1, SampleCount: 1000}, // never updated
	}
	for _, target := range targets {
		for _, sl := range slots {
			got := Score(sl, target)
			if got < 0 || got > 1 {
				t.Fatalf("Score(%+v, %v) = %v, out of [0,1]", sl, target, got)
			}
		}
	}
}

func TestDayAdjustments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		day   time.Time
		want  float64
		event float64
	}{
		{"monday penalized", time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), -0.1, 0},
		{"friday boosted", time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), 0.05, 0},
		{"first of month penalized", time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC), -0.05, 0},
		{"plain wednesday neutral", time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC), 0, 0},
		{"saturday weekend boost", time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), 0, 0.02},
		{"sunday weekend boost", time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), 0, 0.02},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := dayAdjustment(tt.day); got != tt.want {
				t.Fatalf("dayAdjustment = %v, want %v", got, tt.want)
			}
			if got := eventAdjustment(tt.day); got != tt.event {
				t.Fatalf("eventAdjustment = %v, want %v", got, tt.event)
			}
		})
	}
}

func TestScoreFreshSlotExactValue(t *testing.T) {
	t.Parallel()
	// Just-updated slot, plain Wednesday: decay=1, so the result is
	// base + confidence*0.2 + min(n/10,1)*0.1 with no calendar adjustment.
	target := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC)
	sl := &slot.Slot{Score: 0.5, Confidence: 0.5, SampleCount: 5, LastUpdated: target}
	want := 0.5 + 0.5*0.2 + 0.05
	if got := Score(sl, target); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScoreDecaysWithAge(t *testing.T) {
	t.Parallel()
	target := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC) // Wednesday
	recent := &slot.Slot{Score: 0.8, Confidence: 0.3, SampleCount: 10, LastUpdated: target.AddDate(0, 0, -1)}
	stale := &slot.Slot{Score: 0.8, Confidence: 0.3, SampleCount: 10, LastUpdated: target.AddDate(0, 0, -60)}

	if Score(recent, target) <= Score(stale, target) {
		t.Fatalf("recent slot should outscore stale slot: recent=%v stale=%v",
			Score(recent, target), Score(stale, target))
	}
}

func TestScoreNeverUpdatedUsesFloorDecay(t *testing.T) {
	t.Parallel()
	target := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC) // Wednesday
	sl := &slot.Slot{Score: 1, Confidence: 0, SampleCount: 0}
	want := 0.1 // base * staleDecay, no other contributions
	if got := Score(sl, target); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}
