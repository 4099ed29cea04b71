package scheduler

import (
	"math"
	"time"

	"postpilot/internal/slot"
)

// Scoring blends the learned base estimate with recency, confidence, sample
// depth and fixed calendar priors. Recent, well-sampled, high-confidence
// slots dominate; stale or unseasoned slots sink back toward neutral.

const (
	// decayHalfLifeDays controls how fast stale observations lose weight.
	decayHalfLifeDays = 30.0
	// staleDecay applies when a slot has never been updated.
	staleDecay = 0.1

	confidenceWeight = 0.2
	sampleSaturation = 10.0
	sampleWeight     = 0.1
)

// Score computes the dynamic score of a slot at the target instant,
// clamped to [0,1]. Pure function of its inputs.
func Score(sl *slot.Slot, target time.Time) float64 {
	decay := staleDecay
	if !sl.LastUpdated.IsZero() {
		ageDays := target.Sub(sl.LastUpdated).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		decay = math.Exp(-ageDays / decayHalfLifeDays)
	}

	confidenceBoost := sl.Confidence * confidenceWeight
	sampleFactor := math.Min(float64(sl.SampleCount)/sampleSaturation, 1.0) * sampleWeight

	v := sl.Score*decay + confidenceBoost + sampleFactor + dayAdjustment(target) + eventAdjustment(target)
	return slot.Clamp01(v)
}

// dayAdjustment applies fixed calendar priors: Mondays depressed, Fridays
// boosted, first of the month slightly depressed. Weekday checks take
// precedence over the month-day check.
func dayAdjustment(t time.Time) float64 {
	switch slot.WeekdayIndex(t) {
	case 0: // Monday
		return -0.1
	case 4: // Friday
		return 0.05
	}
	if t.Day() == 1 {
		return -0.05
	}
	return 0
}

// eventAdjustment is a small weekend boost. Holiday calendars would hook in
// here if the deployment ever feeds them.
func eventAdjustment(t time.Time) float64 {
	if slot.WeekdayIndex(t) >= 5 {
		return 0.02
	}
	return 0
}
