package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday indexing follows the learned-slot convention: 0=Monday .. 6=Sunday.
// This is NOT time.Weekday (which starts at Sunday); convert via WeekdayIndex.

const (
	// NeutralScore is the starting estimate for a slot with no observations.
	NeutralScore = 0.5
	// SeedConfidence is the confidence assigned to freshly created slots.
	SeedConfidence = 0.1
	// ConfidenceCap bounds confidence from above; it never reaches 1.0.
	ConfidenceCap = 0.95
	// ConfidenceStep is added per recorded observation.
	ConfidenceStep = 0.05
)

// Key addresses a slot within one platform's grid.
type Key struct {
	Hour    int `json:"hour"`        // 0..23
	Weekday int `json:"day_of_week"` // 0=Monday .. 6=Sunday
}

func (k Key) Valid() bool {
	return k.Hour >= 0 && k.Hour <= 23 && k.Weekday >= 0 && k.Weekday <= 6
}

// Encode renders the key as "hour:weekday", e.g. "19:2".
// Used as a JSON object key by the file and redis store drivers.
func (k Key) Encode() string {
	return strconv.Itoa(k.Hour) + ":" + strconv.Itoa(k.Weekday)
}

// ParseKey is the inverse of Encode. It rejects out-of-range values.
func ParseKey(s string) (Key, error) {
	h, d, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("slot key %q: missing separator", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return Key{}, fmt.Errorf("slot key %q: %w", s, err)
	}
	dow, err := strconv.Atoi(d)
	if err != nil {
		return Key{}, fmt.Errorf("slot key %q: %w", s, err)
	}
	k := Key{Hour: hour, Weekday: dow}
	if !k.Valid() {
		return Key{}, fmt.Errorf("slot key %q: out of range", s)
	}
	return k, nil
}

// Slot is a (platform, hour, day-of-week) bucket with a learned quality
// estimate. Score and Confidence stay within [0,1]; SampleCount never
// decreases. Slots are created lazily or seeded from defaults, never deleted.
type Slot struct {
	Platform    string    `json:"platform"`
	Hour        int       `json:"hour"`
	Weekday     int       `json:"day_of_week"`
	Score       float64   `json:"score"`
	Confidence  float64   `json:"confidence"`
	SampleCount int       `json:"sample_count"`
	LastUpdated time.Time `json:"last_updated"`
}

func (s *Slot) Key() Key { return Key{Hour: s.Hour, Weekday: s.Weekday} }

// NewSeed returns a fresh slot with the neutral starting estimate.
func NewSeed(platform string, key Key, now time.Time) *Slot {
	return &Slot{
		Platform:    platform,
		Hour:        key.Hour,
		Weekday:     key.Weekday,
		Score:       NeutralScore,
		Confidence:  SeedConfidence,
		LastUpdated: now,
	}
}

// Grid maps platform -> slot key -> slot. It is the in-memory form of the
// persisted state; the scheduler service owns the live copy under its lock.
type Grid map[string]map[Key]*Slot

func (g Grid) Get(platform string, key Key) (*Slot, bool) {
	s, ok := g[platform][key]
	return s, ok
}

// Put inserts the slot, creating the platform map on first use.
func (g Grid) Put(s *Slot) {
	if g[s.Platform] == nil {
		g[s.Platform] = map[Key]*Slot{}
	}
	g[s.Platform][s.Key()] = s
}

// Platform returns the slot map for one platform (possibly nil).
func (g Grid) Platform(platform string) map[Key]*Slot { return g[platform] }

func (g Grid) Len() int {
	n := 0
	for _, m := range g {
		n += len(m)
	}
	return n
}

// Clone deep-copies the grid. Store drivers persist a clone so that saves
// never race with in-place slot updates.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for platform, m := range g {
		cp := make(map[Key]*Slot, len(m))
		for k, s := range m {
			dup := *s
			cp[k] = &dup
		}
		out[platform] = cp
	}
	return out
}

// WeekdayIndex converts a time.Time weekday to the Monday-first 0..6 index.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
var dayAbbrev = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayName returns the full English name for a Monday-first index.
// Out-of-range input yields "Unknown" rather than panicking.
func WeekdayName(i int) string {
	if i < 0 || i > 6 {
		return "Unknown"
	}
	return dayNames[i]
}

// WeekdayAbbrev returns the three-letter name for a Monday-first index.
func WeekdayAbbrev(i int) string {
	if i < 0 || i > 6 {
		return "???"
	}
	return dayAbbrev[i]
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
