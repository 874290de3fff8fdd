package analyzer

import (
	"reflect"
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    Interval
		wantErr bool
	}{
		{"d", IntervalDay, false},
		{"day", IntervalDay, false},
		{"M", IntervalMonth, false},
		{"month", IntervalMonth, false},
		{"y", IntervalYear, false},
		{"YEAR", IntervalYear, false},
		{"all", IntervalAll, false},
		{"", IntervalAll, false},
		{"w", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterval(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInterval(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseInterval(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntervalKey_UsesOwnOffset(t *testing.T) {
	// 23:30 on the 5th at +10:00 is the 5th locally but 13:30Z on the 5th;
	// 01:30 on the 1st at +10:00 is still the previous year in UTC.
	tests := []struct {
		ts       string
		interval Interval
		want     string
	}{
		{"2023-05-05T23:30:00+10:00", IntervalDay, "2023-05-05"},
		{"2023-01-01T01:30:00+10:00", IntervalDay, "2023-01-01"},
		{"2023-01-01T01:30:00+10:00", IntervalMonth, "2023-01"},
		{"2023-01-01T01:30:00+10:00", IntervalYear, "2023"},
		{"2023-01-01T01:30:00+10:00", IntervalAll, "all"},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval)+" "+tt.ts, func(t *testing.T) {
			got, err := IntervalKey(utc(tt.ts), tt.interval)
			if err != nil {
				t.Fatalf("IntervalKey() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IntervalKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	ts := []time.Time{
		utc("2023-05-05T19:34:42+10:00"),
		utc("2022-12-31T10:00:00Z"),
		utc("2023-05-05T19:35:23+10:00"),
		utc("2023-05-06T08:00:00+10:00"),
	}

	got, err := Group(ts, IntervalDay)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}

	wantKeys := []string{"2022-12-31", "2023-05-05", "2023-05-06"}
	if keys := SortedKeys(got); !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("keys = %v, want %v", keys, wantKeys)
	}

	bucket := got["2023-05-05"]
	if len(bucket) != 2 || !bucket[0].Equal(ts[0]) || !bucket[1].Equal(ts[2]) {
		t.Errorf("bucket 2023-05-05 = %v, want input order preserved", bucket)
	}

	total := 0
	for key, b := range got {
		total += len(b)
		for _, tm := range b {
			if k, _ := IntervalKey(tm, IntervalDay); k != key {
				t.Errorf("timestamp %v in bucket %s has key %s", tm, key, k)
			}
		}
	}
	if total != len(ts) {
		t.Errorf("buckets hold %d timestamps, want %d", total, len(ts))
	}

	// Flattening every bucket gives back the input multiset.
	var flat []time.Time
	for _, key := range SortedKeys(got) {
		flat = append(flat, got[key]...)
	}
	if !sameInstants(flat, ts) {
		t.Errorf("flattened buckets = %v, want the input %v", flat, ts)
	}
}

func TestGroup_FlattenKeepsDuplicates(t *testing.T) {
	dup := utc("2023-05-05T19:34:42+10:00")
	ts := []time.Time{dup, utc("2023-06-01T00:00:00Z"), dup, utc("2024-01-01T00:00:00Z")}

	for _, interval := range []Interval{IntervalDay, IntervalMonth, IntervalYear} {
		t.Run(string(interval), func(t *testing.T) {
			got, err := Group(ts, interval)
			if err != nil {
				t.Fatalf("Group() error = %v", err)
			}
			var flat []time.Time
			for _, b := range got {
				flat = append(flat, b...)
			}
			if !sameInstants(flat, ts) {
				t.Errorf("flattened buckets = %v, want the input %v", flat, ts)
			}
		})
	}
}

// sameInstants reports whether a and b hold the same instants with the same
// multiplicities, in any order.
func sameInstants(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int64]int, len(a))
	for _, t := range a {
		counts[t.UnixNano()]++
	}
	for _, t := range b {
		counts[t.UnixNano()]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func TestGroup_RejectsAll(t *testing.T) {
	if _, err := Group(nil, IntervalAll); err == nil {
		t.Error("Group() expected error for IntervalAll")
	}
	if _, err := Group(nil, Interval("week")); err == nil {
		t.Error("Group() expected error for unknown interval")
	}
}

func TestBuckets(t *testing.T) {
	ts := []time.Time{utc("2023-05-05T19:34:42+10:00"), utc("2024-05-05T19:34:42+10:00")}

	all, err := Buckets(ts, IntervalAll)
	if err != nil {
		t.Fatalf("Buckets() error = %v", err)
	}
	if len(all) != 1 || len(all[AllKey]) != 2 {
		t.Errorf("Buckets(all) = %v", all)
	}

	empty, err := Buckets(nil, IntervalAll)
	if err != nil {
		t.Fatalf("Buckets() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Buckets(nil, all) = %v, want no buckets", empty)
	}

	years, err := Buckets(ts, IntervalYear)
	if err != nil {
		t.Fatalf("Buckets() error = %v", err)
	}
	if !reflect.DeepEqual(SortedKeys(years), []string{"2023", "2024"}) {
		t.Errorf("Buckets(year) keys = %v", SortedKeys(years))
	}
}
