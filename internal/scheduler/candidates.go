package scheduler

import (
	"sort"
	"time"

	"postpilot/internal/slot"
)

// Candidate is a concrete future posting time generated from a learned slot
// and scored for one request.
type Candidate struct {
	Time       time.Time `json:"time"`
	Hour       int       `json:"hour"`
	Weekday    int       `json:"day_of_week"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
}

// candidatesLocked scans the horizon (day offsets 0..HorizonDays-1) and emits
// a scored candidate for every stored slot that lands on that date, is
// strictly in the future, and survives the exclusion filters.
//
// Caller holds at least s.mu.RLock. Slots are visited in (weekday, hour)
// order so equal scores resolve deterministically downstream.
func (s *Service) candidatesLocked(platform string, now time.Time, exclude map[int]bool, minGapHours int) []Candidate {
	slots := s.grid.Platform(platform)
	if len(slots) == 0 {
		return nil
	}

	keys := make([]slot.Key, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Weekday != keys[j].Weekday {
			return keys[i].Weekday < keys[j].Weekday
		}
		return keys[i].Hour < keys[j].Hour
	})

	var out []Candidate
	for offset := 0; offset < s.cfg.HorizonDays; offset++ {
		day := now.AddDate(0, 0, offset)
		dow := slot.WeekdayIndex(day)

		for _, key := range keys {
			if key.Weekday != dow {
				continue
			}
			if exclude[key.Hour] {
				continue
			}

			at := time.Date(day.Year(), day.Month(), day.Day(), key.Hour, 0, 0, 0, time.UTC)
			if !at.After(now) {
				continue
			}
			if violatesMinGap(at, minGapHours) {
				continue
			}

			sl := slots[key]
			out = append(out, Candidate{
				Time:       at,
				Hour:       key.Hour,
				Weekday:    key.Weekday,
				Score:      Score(sl, at),
				Confidence: sl.Confidence,
			})
		}
	}
	return out
}

// violatesMinGap would reject candidates that land too close to recently
// published posts. The publish history lives in the publishing subsystem and
// is not fed into this service yet, so the check deliberately passes
// everything. Cross-platform spacing is handled separately by
// MultiPlatformSchedule's hour exclusion.
//
// TODO: enforce once the publisher exposes its recent-post feed.
func violatesMinGap(at time.Time, minGapHours int) bool {
	_ = at
	_ = minGapHours
	return false
}
