package scheduler

import (
	"fmt"
	"sort"

	"postpilot/internal/slot"
)

// SlotSummary is a compact, display-ready view of one slot.
type SlotSummary struct {
	Platform   string  `json:"platform"`
	Label      string  `json:"label"` // e.g. "Wed 19:00"
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Samples    int     `json:"samples"`
}

// PlatformAnalytics summarizes one platform's grid.
type PlatformAnalytics struct {
	SlotCount     int           `json:"slot_count"`
	AvgScore      float64       `json:"avg_score"`
	AvgConfidence float64       `json:"avg_confidence"`
	BestTimes     []SlotSummary `json:"best_times"` // top 5 by score*confidence
}

// Analytics is a read-only report over the learned grid, served to the ops
// digest and to whoever embeds the scheduler.
type Analytics struct {
	TotalSlots           int                          `json:"total_slots"`
	HighPerformanceSlots int                          `json:"high_performance_slots"` // score > 0.7
	AverageScore         float64                      `json:"average_score"`
	TopSlots             []SlotSummary                `json:"top_slots"` // top 10 across platforms
	Platforms            map[string]PlatformAnalytics `json:"platforms"`
}

// PostingAnalytics reports on one platform, or on every platform when the
// argument is empty.
func (s *Service) PostingAnalytics(platform string) Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var platforms []string
	if platform != "" {
		platforms = []string{platform}
	} else {
		for p := range s.grid {
			platforms = append(platforms, p)
		}
		sort.Strings(platforms)
	}

	out := Analytics{Platforms: make(map[string]PlatformAnalytics, len(platforms))}
	var all []SlotSummary

	for _, p := range platforms {
		slots := s.grid.Platform(p)
		pa := PlatformAnalytics{SlotCount: len(slots)}
		if len(slots) == 0 {
			out.Platforms[p] = pa
			continue
		}

		summaries := make([]SlotSummary, 0, len(slots))
		var scoreSum, confSum float64
		for _, sl := range slots {
			scoreSum += sl.Score
			confSum += sl.Confidence
			summaries = append(summaries, summarize(sl))
			if sl.Score > 0.7 {
				out.HighPerformanceSlots++
			}
			out.AverageScore += sl.Score
			out.TotalSlots++
		}
		pa.AvgScore = scoreSum / float64(len(slots))
		pa.AvgConfidence = confSum / float64(len(slots))

		sortByQuality(summaries)
		if len(summaries) > 5 {
			pa.BestTimes = summaries[:5]
		} else {
			pa.BestTimes = summaries
		}

		out.Platforms[p] = pa
		all = append(all, summaries...)
	}

	if out.TotalSlots > 0 {
		out.AverageScore /= float64(out.TotalSlots)
	}

	sortByQuality(all)
	if len(all) > 10 {
		all = all[:10]
	}
	out.TopSlots = all
	return out
}

func summarize(sl *slot.Slot) SlotSummary {
	return SlotSummary{
		Platform:   sl.Platform,
		Label:      fmt.Sprintf("%s %02d:00", slot.WeekdayAbbrev(sl.Weekday), sl.Hour),
		Score:      sl.Score,
		Confidence: sl.Confidence,
		Samples:    sl.SampleCount,
	}
}

// sortByQuality orders by score*confidence descending, label as tie-break so
// output is stable across runs.
func sortByQuality(s []SlotSummary) {
	sort.Slice(s, func(i, j int) bool {
		qi := s[i].Score * s[i].Confidence
		qj := s[j].Score * s[j].Confidence
		if qi != qj {
			return qi > qj
		}
		if s[i].Platform != s[j].Platform {
			return s[i].Platform < s[j].Platform
		}
		return s[i].Label < s[j].Label
	})
}
