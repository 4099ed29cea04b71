package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// ErrInvalidMetrics is returned for observation records that cannot map to a
// slot (blank platform, out-of-range hour or weekday).
var ErrInvalidMetrics = errors.New("invalid post metrics")

// RecordPerformance folds one observed post into its slot via an
// adaptive-rate moving average: the first observations move the estimate by
// up to alpha=0.3, later ones asymptotically less. Confidence climbs in
// fixed steps and saturates below 1.0. The slot is created lazily for
// platforms never seen before.
//
// The store write afterwards is best-effort; only invalid input errors.
func (s *Service) RecordPerformance(ctx context.Context, m slot.PostMetrics) error {
	platform := strings.TrimSpace(m.Platform)
	if platform == "" {
		return fmt.Errorf("%w: platform is empty", ErrInvalidMetrics)
	}
	key := slot.Key{Hour: m.Hour, Weekday: m.Weekday}
	if !key.Valid() {
		return fmt.Errorf("%w: hour=%d day_of_week=%d", ErrInvalidMetrics, m.Hour, m.Weekday)
	}

	rate := m.EngagementRate()
	now := s.nowFn()

	s.mu.Lock()
	sl, ok := s.grid.Get(platform, key)
	if !ok {
		sl = slot.NewSeed(platform, key, now)
		s.grid.Put(sl)
	}

	alpha := 1.0 / float64(sl.SampleCount+1)
	if alpha > 0.3 {
		alpha = 0.3
	}
	sl.Score = slot.Clamp01((1-alpha)*sl.Score + alpha*rate)
	sl.Confidence = sl.Confidence + slot.ConfidenceStep
	if sl.Confidence > slot.ConfidenceCap {
		sl.Confidence = slot.ConfidenceCap
	}
	sl.SampleCount++
	sl.LastUpdated = now
	samples := sl.SampleCount
	s.mu.Unlock()

	s.records.Add(1)
	s.log.Info("performance recorded",
		logx.String("post_id", m.PostID),
		logx.String("platform", platform),
		logx.Int("hour", key.Hour),
		logx.Int("day_of_week", key.Weekday),
		logx.Float64("engagement_rate", rate),
		logx.Int("samples", samples),
	)

	s.SaveNow(ctx)
	return nil
}
