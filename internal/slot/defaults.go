package slot

import "time"

// Compiled-in default posting windows per platform. These seed the grid when
// the store is empty or unreadable, and anchor the fallback recommendation.
// Order matters: the first entry is the fallback slot for its platform.
//
// Consumer platforms lean evening, professional platforms lean business hours.
var platformDefaults = map[string][]Key{
	"instagram": {{19, 0}, {19, 1}, {19, 2}, {19, 3}, {19, 4}}, // 7PM weekdays
	"youtube":   {{20, 6}, {20, 0}, {15, 6}, {15, 0}, {18, 2}}, // 8PM Sun/Mon, 3PM Sun/Mon, 6PM Wed
	"tiktok":    {{21, 1}, {21, 2}, {21, 3}, {19, 4}, {19, 5}}, // 9PM Tue-Thu, 7PM Fri/Sat
	"twitter":   {{9, 1}, {9, 2}, {9, 3}, {17, 1}, {17, 2}},    // 9AM & 5PM weekdays
	"linkedin":  {{8, 1}, {8, 2}, {8, 3}, {12, 1}, {17, 2}},    // 8AM, 12PM, 5PM business days
}

// Defaults returns the default slot keys for a platform, or nil when the
// platform has no compiled-in table.
func Defaults(platform string) []Key {
	keys := platformDefaults[platform]
	if len(keys) == 0 {
		return nil
	}
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// KnownPlatform reports whether a compiled-in default table exists.
func KnownPlatform(platform string) bool {
	_, ok := platformDefaults[platform]
	return ok
}

// DefaultPlatforms lists every platform with a compiled-in table.
func DefaultPlatforms() []string {
	out := make([]string, 0, len(platformDefaults))
	for p := range platformDefaults {
		out = append(out, p)
	}
	return out
}

// SeedDefaults fills missing default slots for one platform into the grid.
// Existing (learned) slots are left untouched.
func SeedDefaults(g Grid, platform string, now time.Time) int {
	return SeedKeys(g, platform, platformDefaults[platform], now)
}

// SeedKeys seeds the given slot keys for a platform, skipping slots that
// already exist and keys that are out of range. Used both for the compiled-in
// tables and for configured custom tables.
func SeedKeys(g Grid, platform string, keys []Key, now time.Time) int {
	added := 0
	for _, key := range keys {
		if !key.Valid() {
			continue
		}
		if _, ok := g.Get(platform, key); ok {
			continue
		}
		g.Put(NewSeed(platform, key, now))
		added++
	}
	return added
}

// DefaultGrid builds a grid pre-seeded with every platform's default table.
// Used when the store cannot be loaded (fallback guarantee: every known
// platform always has at least one slot).
func DefaultGrid(now time.Time) Grid {
	g := Grid{}
	for platform := range platformDefaults {
		SeedDefaults(g, platform, now)
	}
	return g
}
