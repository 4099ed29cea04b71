package scheduler

import (
	"context"
	"errors"
	"testing"
)

func TestWeeklyPlanOnePostPerDay(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	plan, err := s.WeeklyPlan(context.Background(), []string{"instagram", "twitter"}, nil)
	if err != nil {
		t.Fatalf("WeeklyPlan: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("plan covers %d platforms, want 2", len(plan))
	}
	for platform, recs := range plan {
		if len(recs) != 7 {
			t.Fatalf("%s: %d entries, want 7", platform, len(recs))
		}
		for i, r := range recs {
			if r.Platform != platform {
				t.Fatalf("%s entry %d tagged %q", platform, i, r.Platform)
			}
			if !r.TimeUTC.After(testNow) {
				t.Fatalf("%s entry %d at %v is not in the future", platform, i, r.TimeUTC)
			}
		}
	}
}

func TestWeeklyPlanMultiplePostsPerDay(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	plan, err := s.WeeklyPlan(context.Background(), []string{"tiktok"}, map[string]int{"tiktok": 2})
	if err != nil {
		t.Fatalf("WeeklyPlan: %v", err)
	}
	if got := len(plan["tiktok"]); got != 14 {
		t.Fatalf("tiktok entries = %d, want 14", got)
	}
}

func TestWeeklyPlanUnknownPlatform(t *testing.T) {
	t.Parallel()
	s := newSeededService(t, testNow)

	_, err := s.WeeklyPlan(context.Background(), []string{"myspace"}, nil)
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("error = %v, want ErrUnknownPlatform", err)
	}
}
