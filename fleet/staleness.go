package fleet

import (
	"fmt"
	"time"
)

// StalenessPolicy decides whether a vehicle's last position report is too old
// to rely on for display or dispatch.
type StalenessPolicy struct {
	threshold time.Duration
}

// NewStalenessPolicy validates the threshold at the boundary; a zero or
// negative threshold is a configuration mistake, not something to clamp.
func NewStalenessPolicy(threshold time.Duration) (StalenessPolicy, error) {
	if threshold <= 0 {
		return StalenessPolicy{}, fmt.Errorf("staleness threshold must be positive, got %s", threshold)
	}
	return StalenessPolicy{threshold: threshold}, nil
}

// IsStale reports whether v's position is stale at the given instant. A
// vehicle that never reported is always stale. A report aged exactly at the
// threshold is still fresh; staleness starts strictly past it.
func (p StalenessPolicy) IsStale(v Vehicle, now time.Time) bool {
	if v.LastSeen == nil {
		return true
	}
	return now.Sub(*v.LastSeen) > p.threshold
}

// Threshold returns the configured maximum report age.
func (p StalenessPolicy) Threshold() time.Duration { return p.threshold }
