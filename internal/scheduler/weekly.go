package scheduler

import "context"

// WeeklyPlan generates a 7-day posting plan per platform. postsPerDay maps
// platform -> posts per day (default 1). Same-day posts on one platform are
// staggered by excluding the hours of the last three picks and tightening the
// gap to 6 hours.
func (s *Service) WeeklyPlan(ctx context.Context, platforms []string, postsPerDay map[string]int) (map[string][]Recommendation, error) {
	plan := make(map[string][]Recommendation, len(platforms))

	for _, platform := range platforms {
		daily := postsPerDay[platform]
		if daily < 1 {
			daily = 1
		}
		minGap := 24
		if daily > 1 {
			minGap = 6
		}

		var recs []Recommendation
		for day := 0; day < 7; day++ {
			for n := 0; n < daily; n++ {
				var exclude []int
				tail := recs
				if len(tail) > 3 {
					tail = tail[len(tail)-3:]
				}
				for _, r := range tail {
					exclude = append(exclude, r.TimeUTC.Hour())
				}

				rec, err := s.OptimalTime(ctx, platform, RecommendOptions{
					ExcludeHours: exclude,
					MinGapHours:  minGap,
				})
				if err != nil {
					return nil, err
				}
				recs = append(recs, rec)
			}
		}
		plan[platform] = recs
	}
	return plan, nil
}
