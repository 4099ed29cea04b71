// Package scheduler learns, per social platform, which (hour, day-of-week)
// slots historically yield the best engagement, and produces ranked,
// conflict-aware posting-time recommendations.
//
// # Flow
//
// RecordPerformance folds each published post's engagement into its slot via
// an adaptive-rate moving average. OptimalTime scores every stored slot's
// future occurrences over a 7-day horizon and picks the best, with a
// compiled-in default as guaranteed fallback. MultiPlatformSchedule runs
// OptimalTime per platform in priority order, excluding hours near earlier
// picks. ExploreTime is an alternative randomized entry point (Thompson
// sampling) that trades a little exploitation for exploration.
//
// # Concurrency
//
// The Service is safe for concurrent use. All grid mutation (recording,
// lazy slot creation) is serialized behind a single writer lock; scoring and
// candidate generation are read-only and run concurrently. Store I/O is the
// only suspension point and carries its own timeout.
package scheduler
