package scheduler

import (
	"testing"
	"time"

	logx "postpilot/pkg/logx"
)

func TestZoneResolverDefaultUTC(t *testing.T) {
	t.Parallel()
	r := NewZoneResolver("", nil, logx.Nop())

	at := time.Date(2025, 3, 12, 23, 0, 0, 0, time.UTC) // Wednesday
	if got, want := r.Label("instagram", at), "Wednesday 23:00 (UTC)"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
}

func TestZoneResolverUnknownZoneFallsBackToUTC(t *testing.T) {
	t.Parallel()
	r := NewZoneResolver("Mars/Olympus_Mons", map[string]string{
		"tiktok": "Not/A_Zone",
	}, logx.Nop())

	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) // Friday
	if got, want := r.Label("tiktok", at), "Friday 09:30 (UTC)"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
	if got, want := r.Label("twitter", at), "Friday 09:30 (UTC)"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
}
