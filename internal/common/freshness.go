// Package common provides shared utilities for Folium
package common

import "time"

// Freshness TTLs for cached data
const (
	FreshnessAssets = 5 * time.Minute // full asset feed snapshot
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	return IsFreshAt(time.Now(), updated, ttl)
}

// IsFreshAt is IsFresh against an explicit clock, for callers with an
// injectable now.
func IsFreshAt(now, updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
