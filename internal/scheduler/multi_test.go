package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func circularHourDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if 24-d < d {
		d = 24 - d
	}
	return d
}

func TestMultiPlatformScheduleSeparatesHours(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	recs, err := s.MultiPlatformSchedule(context.Background(), []string{"twitter", "linkedin"}, 2)
	if err != nil {
		t.Fatalf("MultiPlatformSchedule: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}

	// linkedin is scheduled first (highest priority); its earliest tied slot
	// is Tuesday 08:00. With hours 6..10 then excluded, twitter's 09:00
	// defaults are gone and it lands on Tuesday 17:00.
	if recs[0].Platform != "linkedin" || recs[1].Platform != "twitter" {
		t.Fatalf("platform order = [%s, %s], want [linkedin, twitter]", recs[0].Platform, recs[1].Platform)
	}
	if want := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC); !recs[0].TimeUTC.Equal(want) {
		t.Fatalf("linkedin at %v, want %v", recs[0].TimeUTC, want)
	}
	if want := time.Date(2025, 3, 11, 17, 0, 0, 0, time.UTC); !recs[1].TimeUTC.Equal(want) {
		t.Fatalf("twitter at %v, want %v", recs[1].TimeUTC, want)
	}

	if d := circularHourDistance(recs[0].TimeUTC.Hour(), recs[1].TimeUTC.Hour()); d <= 2 {
		t.Fatalf("picks only %d hours apart, want > 2", d)
	}
}

func TestMultiPlatformScheduleOrdersByPriority(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	recs, err := s.MultiPlatformSchedule(context.Background(), []string{"tiktok", "linkedin", "twitter"}, 2)
	if err != nil {
		t.Fatalf("MultiPlatformSchedule: %v", err)
	}
	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = r.Platform
	}
	want := []string{"linkedin", "twitter", "tiktok"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestMultiPlatformSchedulePropagatesUnknownPlatform(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	_, err := s.MultiPlatformSchedule(context.Background(), []string{"instagram", "myspace"}, 2)
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("error = %v, want ErrUnknownPlatform", err)
	}
}

func TestMultiPlatformScheduleDefaultsGap(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	// Zero gap falls back to the configured default rather than allowing
	// back-to-back hours.
	recs, err := s.MultiPlatformSchedule(context.Background(), []string{"twitter", "linkedin"}, 0)
	if err != nil {
		t.Fatalf("MultiPlatformSchedule: %v", err)
	}
	if d := circularHourDistance(recs[0].TimeUTC.Hour(), recs[1].TimeUTC.Hour()); d <= s.cfg.MinGapHours {
		t.Fatalf("picks only %d hours apart with default gap %d", d, s.cfg.MinGapHours)
	}
}
