package analyzer

import "time"

// InRange reports whether t lies within the inclusive bounds. A nil bound is
// unbounded on that side.
func InRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// Select keeps the timestamps inside [start, end], or outside it when invert
// is set. The mask is aligned with ts and marks the kept entries. With no
// bounds every timestamp is in range, so invert keeps nothing.
func Select(ts []time.Time, start, end *time.Time, invert bool) ([]time.Time, []bool) {
	mask := make([]bool, len(ts))
	kept := make([]time.Time, 0, len(ts))
	for i, t := range ts {
		keep := InRange(t, start, end) != invert
		mask[i] = keep
		if keep {
			kept = append(kept, t)
		}
	}

	return kept, mask
}

// RejectFuture fails when any timestamp is later than now.
func RejectFuture(ts []time.Time, now time.Time) error {
	var offending []time.Time
	for _, t := range ts {
		if t.After(now) {
			offending = append(offending, t)
		}
	}
	if len(offending) > 0 {
		return &PolicyError{Policy: PolicyNoFuture, Offending: offending}
	}
	return nil
}

// RejectUnsorted fails when any timestamp is earlier than the one before it.
// Equal neighbours are allowed.
func RejectUnsorted(ts []time.Time) error {
	var offending []time.Time
	for i := 1; i < len(ts); i++ {
		if ts[i].Before(ts[i-1]) {
			offending = append(offending, ts[i])
		}
	}
	if len(offending) > 0 {
		return &PolicyError{Policy: PolicyNoUnsorted, Offending: offending}
	}
	return nil
}
