// Package output renders scan results as text or JSON.
package output

import (
	"time"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// Kind identifies which command produced a report.
type Kind string

const (
	KindLocate Kind = "locate"
	KindParse  Kind = "parse"
	KindCount  Kind = "count"
	KindDeltas Kind = "deltas"
	KindSplits Kind = "splits"
	KindSum    Kind = "sum"

	// KindLines is rewritten or filtered input text.
	KindLines Kind = "lines"
)

// Report is the complete output of one command.
type Report struct {
	Kind     Kind              `json:"kind"`
	Interval analyzer.Interval `json:"interval,omitempty"`
	Unit     Unit              `json:"unit,omitempty"`

	// Matches is set for locate and parse.
	Matches []MatchRecord `json:"matches,omitempty"`

	// Groups is set for count, deltas, splits and sum.
	Groups []Group `json:"groups,omitempty"`

	// Lines is set for filtered or converted input.
	Lines []string `json:"lines,omitempty"`

	Summary  Summary  `json:"summary"`
	Metadata Metadata `json:"metadata"`
}

// MatchRecord is one located timestamp.
type MatchRecord struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	// Value is the normalized timestamp, when the match was parsed.
	Value string `json:"value,omitempty"`

	// Layout names the accepted form, when the match was parsed.
	Layout string `json:"layout,omitempty"`
}

// Group holds the figures of one interval.
type Group struct {
	Key    string   `json:"key"`
	Count  int      `json:"count"`
	Deltas []int64  `json:"deltas,omitempty"`
	Splits []uint64 `json:"splits,omitempty"`
	Sum    uint64   `json:"sum,omitempty"`
}

// Summary gives pipeline stage sizes.
type Summary struct {
	LinesRead int `json:"lines_read"`
	Located   int `json:"located"`
	Kept      int `json:"kept"`
}

// Metadata provides context about the run.
type Metadata struct {
	Sources     []string      `json:"sources,omitempty"`
	Filter      *Filter       `json:"filter,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Filter records the range filter that was applied.
type Filter struct {
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
	Invert bool       `json:"invert,omitempty"`
}

// NewMatchReport creates a locate report from matches.
func NewMatchReport(matches []parser.Match) *Report {
	records := make([]MatchRecord, len(matches))
	for i, m := range matches {
		records[i] = MatchRecord{Text: m.Text, Source: m.Source, Line: m.Line, Column: m.Column}
	}
	return &Report{
		Kind:    KindLocate,
		Matches: records,
		Summary: Summary{Located: len(matches), Kept: len(matches)},
	}
}

// NewIntervalReport creates a count, deltas, splits or sum report.
func NewIntervalReport(kind Kind, interval analyzer.Interval, unit Unit, results []analyzer.IntervalResult) *Report {
	groups := make([]Group, len(results))
	for i, r := range results {
		groups[i] = Group{
			Key:    r.Key,
			Count:  r.Count,
			Deltas: r.Deltas,
			Splits: r.Splits,
			Sum:    r.Sum,
		}
	}
	return &Report{
		Kind:     kind,
		Interval: interval,
		Unit:     unit,
		Groups:   groups,
	}
}

// NewLinesReport creates a report that echoes text lines.
func NewLinesReport(lines []string) *Report {
	return &Report{Kind: KindLines, Lines: lines}
}
