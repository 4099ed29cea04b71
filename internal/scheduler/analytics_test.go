package scheduler

import (
	"math"
	"testing"

	"postpilot/internal/slot"
)

func TestPostingAnalyticsSeededGrid(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	a := s.PostingAnalytics("")
	wantPlatforms := len(slot.DefaultPlatforms())
	if len(a.Platforms) != wantPlatforms {
		t.Fatalf("platform count = %d, want %d", len(a.Platforms), wantPlatforms)
	}
	if a.TotalSlots != s.grid.Len() {
		t.Fatalf("total slots = %d, want %d", a.TotalSlots, s.grid.Len())
	}
	// Fresh seeds all sit at the neutral score, none above the
	// high-performance line.
	if math.Abs(a.AverageScore-slot.NeutralScore) > 1e-12 {
		t.Fatalf("average score = %v, want %v", a.AverageScore, slot.NeutralScore)
	}
	if a.HighPerformanceSlots != 0 {
		t.Fatalf("high-performance slots = %d, want 0", a.HighPerformanceSlots)
	}
	if len(a.TopSlots) != 10 {
		t.Fatalf("top slots = %d, want 10", len(a.TopSlots))
	}
	for _, pa := range a.Platforms {
		if len(pa.BestTimes) > 5 {
			t.Fatalf("best times = %d, want at most 5", len(pa.BestTimes))
		}
	}
}

func TestPostingAnalyticsSurfacesLearnedSlot(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)
	s.grid.Put(&slot.Slot{Platform: "instagram", Hour: 21, Weekday: 4, Score: 0.95, Confidence: 0.9, SampleCount: 40, LastUpdated: testNow})

	a := s.PostingAnalytics("")
	if a.HighPerformanceSlots != 1 {
		t.Fatalf("high-performance slots = %d, want 1", a.HighPerformanceSlots)
	}
	top := a.TopSlots[0]
	if top.Platform != "instagram" || top.Label != "Fri 21:00" {
		t.Fatalf("top slot = %+v, want the learned instagram Friday slot", top)
	}
	if top.Score != 0.95 || top.Samples != 40 {
		t.Fatalf("top slot fields = %+v", top)
	}
}

func TestPostingAnalyticsSinglePlatform(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	a := s.PostingAnalytics("twitter")
	if len(a.Platforms) != 1 {
		t.Fatalf("platform count = %d, want 1", len(a.Platforms))
	}
	pa, ok := a.Platforms["twitter"]
	if !ok {
		t.Fatal("twitter missing from report")
	}
	if pa.SlotCount == 0 {
		t.Fatal("twitter report has no slots")
	}
	for _, ts := range a.TopSlots {
		if ts.Platform != "twitter" {
			t.Fatalf("foreign platform %q in single-platform report", ts.Platform)
		}
	}
}

func TestPostingAnalyticsUnknownPlatformIsEmpty(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	a := s.PostingAnalytics("myspace")
	if a.TotalSlots != 0 || len(a.TopSlots) != 0 {
		t.Fatalf("unexpected data for unknown platform: %+v", a)
	}
	if pa := a.Platforms["myspace"]; pa.SlotCount != 0 {
		t.Fatalf("slot count = %d, want 0", pa.SlotCount)
	}
}
