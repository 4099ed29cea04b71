package scheduler

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// ExploreTime is the Thompson-sampling entry point: instead of ranking point
// estimates it draws one Beta sample per learned slot and picks the largest
// draw. Poorly-sampled slots have wide distributions and occasionally win,
// which keeps the scheduler from locking onto an early local optimum.
//
// This path skips the candidate generator's exclusion and gap filters; it is
// a single-platform alternative to OptimalTime, not a replacement.
func (s *Service) ExploreTime(ctx context.Context, platform string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	now := s.nowFn()

	s.mu.RLock()
	slots := s.grid.Platform(platform)
	type drawn struct {
		key    slot.Key
		sl     slot.Slot
		sample float64
	}
	draws := make([]drawn, 0, len(slots))
	for key, sl := range slots {
		n := float64(sl.SampleCount)
		alpha := n*sl.Score + 1
		if alpha < 1 {
			alpha = 1
		}
		beta := n*(1-sl.Score) + 1
		if beta < 1 {
			beta = 1
		}
		dist := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.randSrc}
		draws = append(draws, drawn{key: key, sl: *sl, sample: dist.Rand()})
	}
	s.mu.RUnlock()

	if len(draws) == 0 {
		// Nothing learned yet; defer to the deterministic path.
		return s.OptimalTime(ctx, platform, RecommendOptions{})
	}

	// Sort for a deterministic winner when samples tie (map order is random).
	sort.Slice(draws, func(i, j int) bool {
		if draws[i].sample != draws[j].sample {
			return draws[i].sample > draws[j].sample
		}
		if draws[i].key.Weekday != draws[j].key.Weekday {
			return draws[i].key.Weekday < draws[j].key.Weekday
		}
		return draws[i].key.Hour < draws[j].key.Hour
	})
	best := draws[0]

	at := nextOccurrence(now, best.key)
	s.explorations.Add(1)

	rec := Recommendation{
		RequestID:  uuid.NewString(),
		Platform:   platform,
		TimeUTC:    at,
		LocalLabel: s.tz.Label(platform, at),
		Score:      best.sl.Score,
		Confidence: best.sl.Confidence,
		Reason:     "Thompson sampling pick (exploration/exploitation balance)",
	}

	s.log.Debug("exploration pick",
		logx.String("request_id", rec.RequestID),
		logx.String("platform", platform),
		logx.Int("hour", best.key.Hour),
		logx.Int("day_of_week", best.key.Weekday),
		logx.Float64("sample", best.sample),
	)
	return rec, nil
}
