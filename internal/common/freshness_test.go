package common

import (
	"testing"
	"time"
)

func TestIsFreshAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		updated time.Time
		ttl     time.Duration
		want    bool
	}{
		{"zero timestamp is never fresh", time.Time{}, time.Hour, false},
		{"just updated", now.Add(-time.Second), 5 * time.Minute, true},
		{"inside window", now.Add(-4 * time.Minute), 5 * time.Minute, true},
		{"exactly at window boundary", now.Add(-5 * time.Minute), 5 * time.Minute, false},
		{"past window", now.Add(-6 * time.Minute), 5 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFreshAt(now, tt.updated, tt.ttl); got != tt.want {
				t.Errorf("IsFreshAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFresh_UsesWallClock(t *testing.T) {
	if !IsFresh(time.Now(), time.Minute) {
		t.Error("timestamp from a moment ago should be fresh")
	}
	if IsFresh(time.Now().Add(-2*time.Minute), time.Minute) {
		t.Error("timestamp older than TTL should not be fresh")
	}
}
