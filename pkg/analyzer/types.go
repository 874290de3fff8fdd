// Package analyzer derives counts, deltas and activity splits from parsed
// timestamps.
package analyzer

import (
	"fmt"
	"strings"
	"time"
)

// Interval selects the calendar bucket timestamps are grouped into.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"

	// IntervalAll puts every timestamp in a single bucket.
	IntervalAll Interval = "all"
)

// AllKey is the bucket key used for IntervalAll.
const AllKey = "all"

// ParseInterval accepts the long and short interval names.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "d", "day":
		return IntervalDay, nil
	case "m", "month":
		return IntervalMonth, nil
	case "y", "year":
		return IntervalYear, nil
	case "all", "":
		return IntervalAll, nil
	default:
		return "", fmt.Errorf("invalid interval %q (must be d, m, y or all)", s)
	}
}

// Policy names an input validation rule.
type Policy string

const (
	// PolicyNoFuture rejects timestamps later than the current time.
	PolicyNoFuture Policy = "future_datetimes"

	// PolicyNoUnsorted rejects timestamps earlier than their predecessor.
	PolicyNoUnsorted Policy = "out_of_order_datetimes"
)

// PolicyError reports every timestamp that violates a policy.
type PolicyError struct {
	Policy    Policy
	Offending []time.Time
}

func (e *PolicyError) Error() string {
	parts := make([]string, len(e.Offending))
	for i, t := range e.Offending {
		parts[i] = t.Format(time.RFC3339)
	}
	return fmt.Sprintf("reject %s: %d offending timestamp(s): %s",
		e.Policy, len(e.Offending), strings.Join(parts, ", "))
}

// Selection is the outcome of filtering and validation.
type Selection struct {
	// All is every parsed timestamp in input order.
	All []time.Time

	// Kept is the subsequence that passed the filter.
	Kept []time.Time

	// Mask is aligned with All; Mask[i] reports whether All[i] was kept.
	Mask []bool
}

// IntervalResult holds one interval's figures.
type IntervalResult struct {
	// Key identifies the interval ("all", "2023", "2023-05" or "2023-05-05").
	Key string

	// Count is the number of timestamps in the interval.
	Count int

	// Deltas are the seconds between consecutive timestamps of the interval.
	Deltas []int64

	// Splits are the durations of continuous activity in seconds.
	Splits []uint64

	// Sum is the total of Splits.
	Sum uint64
}
