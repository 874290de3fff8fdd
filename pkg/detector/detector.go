// Package detector reports which accepted timestamp forms occur in an input.
package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// DefaultSampleSize is the number of located matches examined by default.
const DefaultSampleSize = 100

// DetectionResult holds the result of classifying an input's timestamps.
type DetectionResult struct {
	Matches     []FormatMatch  // Forms that accepted at least one match, by confidence descending
	Located     int            // Number of located matches examined
	Parsed      int            // Number of examined matches some form accepted
	Unparseable []parser.Match // Located matches no form accepts
	// LocalOffsetNote is set when offset-less forms were seen; those values
	// take the local offset of the machine running the scan.
	LocalOffsetNote string
}

// FormatMatch is one accepted form with its confidence score.
type FormatMatch struct {
	Layout     parser.Layout
	Confidence float64      // 0.0 to 1.0 (share of examined matches)
	MatchCount int          // Number of matches this form accepted
	Sample     parser.Match // First match this form accepted
	ParsedTime time.Time    // Sample parsed as an instant
}

// Detector classifies located timestamps by the form that accepts them.
type Detector struct {
	parser     *parser.Parser
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of located matches to examine (default 100).
// Zero or negative values keep the default.
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithParser sets the parser used to classify matches.
func WithParser(p *parser.Parser) Option {
	return func(d *Detector) {
		if p != nil {
			d.parser = p
		}
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		parser:     parser.NewParser(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile classifies the timestamps found in a file ("-" is stdin).
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	result, err := d.DetectFromSource(ctx, parser.NewFileSource([]string{path}))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return result, nil
}

// DetectFromSource reads src to the end, closes it and classifies the
// timestamps found.
func (d *Detector) DetectFromSource(ctx context.Context, src parser.LineSource) (*DetectionResult, error) {
	defer func() { _ = src.Close() }()

	lines, err := parser.ReadAll(ctx, src)
	if err != nil {
		return nil, err
	}
	return d.DetectFromMatches(parser.LocateLines(lines)), nil
}

// DetectFromLines classifies the timestamps found in lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	return d.DetectFromMatches(parser.Locate(lines))
}

// DetectFromMatches classifies already located matches. Only the first
// sample-size matches are examined.
func (d *Detector) DetectFromMatches(matches []parser.Match) *DetectionResult {
	if len(matches) > d.sampleSize {
		matches = matches[:d.sampleSize]
	}

	result := &DetectionResult{Located: len(matches)}
	if len(matches) == 0 {
		return result
	}

	stats := make(map[string]*formatStats)
	for _, m := range matches {
		t, layout, err := d.parser.ParseLayout(m.Text)
		if err != nil {
			result.Unparseable = append(result.Unparseable, m)
			continue
		}
		result.Parsed++

		s, ok := stats[layout.Name]
		if !ok {
			s = &formatStats{layout: *layout, sample: m, parsedTime: t}
			stats[layout.Name] = s
		}
		s.matchCount++
	}

	result.Matches = rank(stats, len(matches))
	result.LocalOffsetNote = localOffsetNote(result.Matches)
	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one form matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
