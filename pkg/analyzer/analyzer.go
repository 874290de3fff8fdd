package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Analyzer applies range filtering and input policies to parsed timestamps
// and derives per-interval figures from the result.
type Analyzer struct {
	start, end *time.Time
	invert     bool

	noFuture   bool
	noUnsorted bool

	interval      Interval
	timeout       uint64
	allowNegative bool

	now    func() time.Time
	logger *slog.Logger
}

// DefaultTimeout is the inactivity timeout, in seconds, that ends a split.
const DefaultTimeout = 300

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithRange keeps only timestamps within the inclusive bounds. Either bound may be nil.
func WithRange(start, end *time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.start = start
		a.end = end
	}
}

// WithInvert keeps the timestamps outside the range instead.
func WithInvert(v bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.invert = v
	}
}

// WithNoFuture rejects input containing timestamps later than now.
func WithNoFuture(v bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.noFuture = v
	}
}

// WithNoUnsorted rejects input that is not in chronological order.
func WithNoUnsorted(v bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.noUnsorted = v
	}
}

// WithInterval groups results by calendar interval.
func WithInterval(i Interval) AnalyzerOption {
	return func(a *Analyzer) {
		a.interval = i
	}
}

// WithTimeout sets the split timeout in seconds.
func WithTimeout(seconds uint64) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeout = seconds
	}
}

// WithAllowNegative keeps negative deltas instead of clamping them to zero.
// Splits always clamp.
func WithAllowNegative(v bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.allowNegative = v
	}
}

// WithClock replaces the source of the current time used by the no-future policy.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates an analyzer. Without options it keeps everything,
// groups into a single interval and uses a 300 second timeout.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		interval: IntervalAll,
		timeout:  DefaultTimeout,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Interval returns the configured grouping.
func (a *Analyzer) Interval() Interval {
	return a.interval
}

// Prepare filters ts and then enforces the configured policies on the kept
// timestamps.
func (a *Analyzer) Prepare(ctx context.Context, ts []time.Time) (*Selection, error) {
	kept, mask := Select(ts, a.start, a.end, a.invert)
	a.logger.LogAttrs(ctx, slog.LevelDebug, "filtered timestamps",
		slog.Int("parsed", len(ts)),
		slog.Int("kept", len(kept)),
		slog.Bool("invert", a.invert),
	)

	if a.noFuture {
		if err := RejectFuture(kept, a.now()); err != nil {
			return nil, err
		}
	}
	if a.noUnsorted {
		if err := RejectUnsorted(kept); err != nil {
			return nil, err
		}
	}

	return &Selection{All: ts, Kept: kept, Mask: mask}, nil
}

// Count returns the number of timestamps per interval.
func (a *Analyzer) Count(ctx context.Context, ts []time.Time) ([]IntervalResult, error) {
	return a.eachBucket(ctx, ts, func(key string, bucket []time.Time) (IntervalResult, bool) {
		return IntervalResult{Key: key, Count: len(bucket)}, true
	})
}

// Deltas returns the deltas within each interval. Intervals with a single
// timestamp are kept with an empty delta list.
func (a *Analyzer) Deltas(ctx context.Context, ts []time.Time) ([]IntervalResult, error) {
	return a.eachBucket(ctx, ts, func(key string, bucket []time.Time) (IntervalResult, bool) {
		return IntervalResult{
			Key:    key,
			Count:  len(bucket),
			Deltas: Deltas(bucket, a.allowNegative),
		}, true
	})
}

// Splits returns the continuous-activity splits of each interval along with
// their sum. Intervals without any split are omitted.
func (a *Analyzer) Splits(ctx context.Context, ts []time.Time) ([]IntervalResult, error) {
	return a.eachBucket(ctx, ts, func(key string, bucket []time.Time) (IntervalResult, bool) {
		deltas := Deltas(bucket, false)
		splits := Splits(deltas, a.timeout)
		if len(splits) == 0 {
			return IntervalResult{}, false
		}
		return IntervalResult{
			Key:    key,
			Count:  len(bucket),
			Deltas: deltas,
			Splits: splits,
			Sum:    Sum(splits),
		}, true
	})
}

func (a *Analyzer) eachBucket(ctx context.Context, ts []time.Time, fn func(string, []time.Time) (IntervalResult, bool)) ([]IntervalResult, error) {
	buckets, err := Buckets(ts, a.interval)
	if err != nil {
		return nil, fmt.Errorf("grouping timestamps: %w", err)
	}

	results := make([]IntervalResult, 0, len(buckets))
	for _, key := range SortedKeys(buckets) {
		if r, ok := fn(key, buckets[key]); ok {
			results = append(results, r)
		}
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "grouped timestamps",
		slog.String("interval", string(a.interval)),
		slog.Int("buckets", len(buckets)),
		slog.Int("results", len(results)),
	)
	return results, nil
}
