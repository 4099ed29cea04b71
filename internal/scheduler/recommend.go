package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// ErrUnknownPlatform is returned when a platform has neither learned slots
// nor a compiled-in default table. This is the only hard failure on the
// recommendation path; everything else degrades to a low-confidence result.
var ErrUnknownPlatform = errors.New("unknown platform")

// RecommendOptions tune a single recommendation request.
type RecommendOptions struct {
	// ExcludeHours lists hour-of-day values (0..23) that must not be used.
	ExcludeHours []int
	// MinGapHours overrides the configured default spacing when > 0.
	MinGapHours int
}

// Recommendation is the scheduler's answer: the best future posting time for
// one platform, with up to three alternates. Regenerated per request, never
// persisted.
type Recommendation struct {
	RequestID    string      `json:"request_id"`
	Platform     string      `json:"platform"`
	TimeUTC      time.Time   `json:"datetime_utc"`
	LocalLabel   string      `json:"local_time_label"`
	Score        float64     `json:"score"`
	Confidence   float64     `json:"confidence"`
	Reason       string      `json:"reason"`
	Fallback     bool        `json:"fallback"`
	Alternatives []Candidate `json:"alternatives,omitempty"`
}

// OptimalTime picks the highest-scoring future slot for the platform within
// the horizon. With no viable candidates it falls back to the platform's
// first default slot at its next future occurrence (score 0.5,
// confidence 0.1). Only an unknown platform errors.
func (s *Service) OptimalTime(ctx context.Context, platform string, opts RecommendOptions) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	now := s.nowFn()

	minGap := opts.MinGapHours
	if minGap <= 0 {
		minGap = s.cfg.MinGapHours
	}
	exclude := make(map[int]bool, len(opts.ExcludeHours))
	for _, h := range opts.ExcludeHours {
		exclude[((h % 24) + 24) % 24] = true
	}

	s.mu.RLock()
	known := len(s.grid.Platform(platform)) > 0 ||
		slot.KnownPlatform(platform) ||
		len(s.cfg.PlatformDefaults[platform]) > 0
	cands := s.candidatesLocked(platform, now, exclude, minGap)
	s.mu.RUnlock()

	if !known {
		return Recommendation{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	if len(cands) == 0 {
		s.fallbacks.Add(1)
		return s.fallbackRecommendation(platform, now), nil
	}

	// Highest score first; stable so the generator's (weekday, hour) order
	// breaks ties deterministically.
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	best := cands[0]

	alt := cands[1:]
	if len(alt) > 3 {
		alt = alt[:3]
	}

	rec := Recommendation{
		RequestID:    uuid.NewString(),
		Platform:     platform,
		TimeUTC:      best.Time,
		LocalLabel:   s.tz.Label(platform, best.Time),
		Score:        best.Score,
		Confidence:   best.Confidence,
		Reason:       recommendationReason(best, platform),
		Alternatives: append([]Candidate(nil), alt...),
	}

	s.log.Debug("recommendation",
		logx.String("request_id", rec.RequestID),
		logx.String("platform", platform),
		logx.Time("at", rec.TimeUTC),
		logx.Float64("score", rec.Score),
	)
	return rec, nil
}

// fallbackKey is used for platforms that have learned slots but no default
// table: Tuesday noon.
var fallbackKey = slot.Key{Hour: 12, Weekday: 1}

func (s *Service) fallbackRecommendation(platform string, now time.Time) Recommendation {
	key := fallbackKey
	if custom := s.cfg.PlatformDefaults[platform]; len(custom) > 0 && custom[0].Valid() {
		key = custom[0]
	} else if defaults := slot.Defaults(platform); len(defaults) > 0 {
		key = defaults[0]
	}
	at := nextOccurrence(now, key)

	return Recommendation{
		RequestID:  uuid.NewString(),
		Platform:   platform,
		TimeUTC:    at,
		LocalLabel: s.tz.Label(platform, at),
		Score:      slot.NeutralScore,
		Confidence: slot.SeedConfidence,
		Reason:     fmt.Sprintf("Using default %s posting time (no historical data available)", platform),
		Fallback:   true,
	}
}

// nextOccurrence finds the next strictly-future instant matching the slot's
// weekday and hour. A same-day slot whose hour has already started rolls over
// a full week.
func nextOccurrence(now time.Time, key slot.Key) time.Time {
	daysAhead := (key.Weekday - slot.WeekdayIndex(now) + 7) % 7
	if daysAhead == 0 && now.Hour() >= key.Hour {
		daysAhead = 7
	}
	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), key.Hour, 0, 0, 0, time.UTC)
}

// recommendationReason renders the three qualitative bands:
// score, confidence, weekday.
func recommendationReason(c Candidate, platform string) string {
	var scoreBand string
	switch {
	case c.Score > 0.7:
		scoreBand = "High historical engagement"
	case c.Score > 0.5:
		scoreBand = "Good historical performance"
	default:
		scoreBand = "Average performance expected"
	}

	var confBand string
	switch {
	case c.Confidence > 0.7:
		confBand = "high confidence"
	case c.Confidence > 0.4:
		confBand = "medium confidence"
	default:
		confBand = "low confidence"
	}

	return fmt.Sprintf("%s • %s • optimal for %s on %ss",
		scoreBand, confBand, platform, slot.WeekdayName(c.Weekday))
}
