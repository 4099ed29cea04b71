package scheduler

import (
	"context"
	"sort"
	"time"
)

// Most schedule-constrained platforms go first so the flexible ones absorb
// conflicts. Unknown platforms sort last in input order.
var platformPriority = map[string]int{
	"linkedin":  0,
	"twitter":   1,
	"instagram": 2,
	"youtube":   3,
	"tiktok":    4,
}

func priorityOf(platform string) int {
	if p, ok := platformPriority[platform]; ok {
		return p
	}
	return 999
}

// MultiPlatformSchedule builds one recommendation per platform such that no
// two picks share an hour-of-day within minGapHours of each other.
//
// The exclusion works at hour-of-day granularity (matching the per-platform
// candidate filter), so picks on different days still repel by wall-clock
// hour; cross-day proximity through midnight is not considered.
func (s *Service) MultiPlatformSchedule(ctx context.Context, platforms []string, minGapHours int) ([]Recommendation, error) {
	if minGapHours <= 0 {
		minGapHours = s.cfg.MinGapHours
	}

	ordered := append([]string(nil), platforms...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return priorityOf(ordered[i]) < priorityOf(ordered[j])
	})

	recs := make([]Recommendation, 0, len(ordered))
	var used []time.Time

	for _, platform := range ordered {
		exclude := make([]int, 0, len(used)*(2*minGapHours+1))
		for _, t := range used {
			for off := -minGapHours; off <= minGapHours; off++ {
				exclude = append(exclude, ((t.Hour()+off)%24+24)%24)
			}
		}

		rec, err := s.OptimalTime(ctx, platform, RecommendOptions{
			ExcludeHours: exclude,
			MinGapHours:  minGapHours,
		})
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
		used = append(used, rec.TimeUTC)
	}
	return recs, nil
}
