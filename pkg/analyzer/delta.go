package analyzer

import "time"

// DeltaSeconds returns b minus a in whole seconds, truncated toward zero.
func DeltaSeconds(a, b time.Time) int64 {
	d := b.Unix() - a.Unix()
	ns := b.Nanosecond() - a.Nanosecond()
	switch {
	case d > 0 && ns < 0:
		d--
	case d < 0 && ns > 0:
		d++
	}
	return d
}

// Deltas returns the seconds between each consecutive pair of ts, so the
// result is one shorter than the input (empty for fewer than two values).
// Negative differences become 0 unless allowNegative is set.
func Deltas(ts []time.Time, allowNegative bool) []int64 {
	if len(ts) < 2 {
		return []int64{}
	}

	out := make([]int64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		d := DeltaSeconds(ts[i-1], ts[i])
		if d < 0 && !allowNegative {
			d = 0
		}
		out[i-1] = d
	}
	return out
}

// Splits sums runs of continuous deltas. A delta d is continuous when
// 0 <= d <= timeout; any other delta, or the end of input, closes the
// current run. Runs that sum to zero are dropped, so every split is positive.
func Splits(deltas []int64, timeout uint64) []uint64 {
	splits := []uint64{}

	var (
		current uint64
		inRun   bool
	)
	closeRun := func() {
		if inRun && current > 0 {
			splits = append(splits, current)
		}
		current = 0
		inRun = false
	}

	for _, d := range deltas {
		if d >= 0 && uint64(d) <= timeout {
			current += uint64(d)
			inRun = true
			continue
		}
		closeRun()
	}
	closeRun()

	return splits
}

// Sum adds up splits.
func Sum(splits []uint64) uint64 {
	var total uint64
	for _, s := range splits {
		total += s
	}
	return total
}
