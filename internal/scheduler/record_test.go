package scheduler

import (
	"context"
	"errors"
	"math"
	"testing"

	"postpilot/internal/slot"
)

func metricsFor(rate float64) slot.PostMetrics {
	// views=10000 keeps the likes count integral for any rate with
	// four decimal places.
	return slot.PostMetrics{
		PostID:   "p1",
		Platform: "instagram",
		Hour:     19,
		Weekday:  2, // Wednesday
		Views:    10000,
		Likes:    int64(rate * 10000),
	}
}

func TestRecordSequenceMatchesAdaptiveEMA(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	rates := []float64{0.05, 0.06, 0.05, 0.07, 0.06}
	for _, r := range rates {
		if err := s.RecordPerformance(context.Background(), metricsFor(r)); err != nil {
			t.Fatalf("RecordPerformance: %v", err)
		}
	}

	// Replay the recurrence: new slots start at the neutral 0.5 and each
	// observation moves the estimate by alpha = min(0.3, 1/(n+1)).
	want := 0.5
	for n, r := range rates {
		alpha := math.Min(0.3, 1.0/float64(n+1))
		want = (1-alpha)*want + alpha*r
	}

	sl, ok := s.grid.Get("instagram", slot.Key{Hour: 19, Weekday: 2})
	if !ok {
		t.Fatal("slot was not created")
	}
	if math.Abs(sl.Score-want) > 1e-12 {
		t.Fatalf("score = %v, want %v", sl.Score, want)
	}
	if sl.SampleCount != 5 {
		t.Fatalf("sample_count = %d, want 5", sl.SampleCount)
	}
	if want := 0.1 + 5*slot.ConfidenceStep; math.Abs(sl.Confidence-want) > 1e-12 {
		t.Fatalf("confidence = %v, want %v", sl.Confidence, want)
	}
}

func TestRecordConvergesToConstantRate(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	const rate = 0.06
	for i := 0; i < 300; i++ {
		if err := s.RecordPerformance(context.Background(), metricsFor(rate)); err != nil {
			t.Fatalf("RecordPerformance: %v", err)
		}
	}

	sl, _ := s.grid.Get("instagram", slot.Key{Hour: 19, Weekday: 2})
	if math.Abs(sl.Score-rate) > 0.005 {
		t.Fatalf("score = %v, did not converge to %v", sl.Score, rate)
	}
	if sl.SampleCount != 300 {
		t.Fatalf("sample_count = %d, want 300", sl.SampleCount)
	}
}

func TestRecordConfidenceMonotoneAndCapped(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	prev := 0.0
	for i := 0; i < 50; i++ {
		if err := s.RecordPerformance(context.Background(), metricsFor(0.04)); err != nil {
			t.Fatalf("RecordPerformance: %v", err)
		}
		sl, _ := s.grid.Get("instagram", slot.Key{Hour: 19, Weekday: 2})
		if sl.Confidence < prev {
			t.Fatalf("confidence decreased: %v -> %v", prev, sl.Confidence)
		}
		if sl.Confidence > slot.ConfidenceCap {
			t.Fatalf("confidence %v exceeds cap", sl.Confidence)
		}
		prev = sl.Confidence
	}
	if math.Abs(prev-slot.ConfidenceCap) > 1e-12 {
		t.Fatalf("confidence = %v, want saturated at %v", prev, slot.ConfidenceCap)
	}
}

func TestRecordClampsRunawayEngagement(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	// Interactions far above views: the raw rate is > 1 but the stored
	// score must stay within [0,1].
	m := slot.PostMetrics{Platform: "instagram", Hour: 19, Weekday: 2, Views: 100, Likes: 5000}
	for i := 0; i < 20; i++ {
		if err := s.RecordPerformance(context.Background(), m); err != nil {
			t.Fatalf("RecordPerformance: %v", err)
		}
	}
	sl, _ := s.grid.Get("instagram", slot.Key{Hour: 19, Weekday: 2})
	if sl.Score < 0 || sl.Score > 1 {
		t.Fatalf("score %v escaped [0,1]", sl.Score)
	}
}

func TestRecordRejectsInvalidMetrics(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	tests := []slot.PostMetrics{
		{Platform: "", Hour: 19, Weekday: 2},
		{Platform: "instagram", Hour: 24, Weekday: 2},
		{Platform: "instagram", Hour: -1, Weekday: 2},
		{Platform: "instagram", Hour: 19, Weekday: 7},
	}
	for _, m := range tests {
		if err := s.RecordPerformance(context.Background(), m); !errors.Is(err, ErrInvalidMetrics) {
			t.Fatalf("metrics %+v: error = %v, want ErrInvalidMetrics", m, err)
		}
	}
	if s.grid.Len() != 0 {
		t.Fatalf("invalid metrics created slots: %d", s.grid.Len())
	}
}

func TestRecordCreatesSlotForUnlistedPlatform(t *testing.T) {
	t.Parallel()
	s := newTestService(t, testNow)

	m := slot.PostMetrics{Platform: "mastodon", Hour: 20, Weekday: 3, Views: 100, Likes: 4}
	if err := s.RecordPerformance(context.Background(), m); err != nil {
		t.Fatalf("RecordPerformance: %v", err)
	}
	if _, ok := s.grid.Get("mastodon", slot.Key{Hour: 20, Weekday: 3}); !ok {
		t.Fatal("slot for unlisted platform was not created")
	}
}
