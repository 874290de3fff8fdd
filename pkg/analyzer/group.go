package analyzer

import (
	"fmt"
	"sort"
	"time"
)

var intervalLayouts = map[Interval]string{
	IntervalDay:   "2006-01-02",
	IntervalMonth: "2006-01",
	IntervalYear:  "2006",
}

// IntervalKey returns the calendar key of t, using the wall-clock fields of
// t's own offset.
func IntervalKey(t time.Time, interval Interval) (string, error) {
	if interval == IntervalAll {
		return AllKey, nil
	}
	layout, ok := intervalLayouts[interval]
	if !ok {
		return "", fmt.Errorf("invalid interval %q", interval)
	}
	return t.Format(layout), nil
}

// Group partitions ts by calendar day, month or year. Each bucket keeps the
// input's relative order.
func Group(ts []time.Time, interval Interval) (map[string][]time.Time, error) {
	if _, ok := intervalLayouts[interval]; !ok {
		return nil, fmt.Errorf("cannot group by %q", interval)
	}

	groups := make(map[string][]time.Time)
	for _, t := range ts {
		key, err := IntervalKey(t, interval)
		if err != nil {
			return nil, err
		}
		groups[key] = append(groups[key], t)
	}
	return groups, nil
}

// Buckets is Group extended with IntervalAll, which yields a single "all"
// bucket holding the whole input. Empty input yields no buckets.
func Buckets(ts []time.Time, interval Interval) (map[string][]time.Time, error) {
	if interval != IntervalAll {
		return Group(ts, interval)
	}
	if len(ts) == 0 {
		return map[string][]time.Time{}, nil
	}
	return map[string][]time.Time{AllKey: ts}, nil
}

// SortedKeys returns the keys of groups in ascending order.
func SortedKeys[V any](groups map[string]V) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
