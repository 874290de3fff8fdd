package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
)

// TextFormatter writes plain line-oriented text suitable for scripts.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text. Nothing is written if rendering fails.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	lines, err := f.render(report)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	_, err = io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func (f *TextFormatter) render(report *Report) ([]string, error) {
	switch report.Kind {
	case KindLocate, KindParse:
		return f.renderMatches(report), nil
	case KindLines:
		return report.Lines, nil
	case KindCount:
		return renderGroups(report, func(g Group) ([]string, error) {
			return []string{strconv.Itoa(g.Count)}, nil
		})
	case KindDeltas:
		return renderGroups(report, func(g Group) ([]string, error) {
			return formatAll(g.Deltas, func(d int64) (string, error) { return FormatSeconds(d, report.Unit) })
		})
	case KindSplits:
		return renderGroups(report, func(g Group) ([]string, error) {
			return formatAll(g.Splits, func(s uint64) (string, error) { return FormatUnsigned(s, report.Unit) })
		})
	case KindSum:
		return renderGroups(report, func(g Group) ([]string, error) {
			s, err := FormatUnsigned(g.Sum, report.Unit)
			return []string{s}, err
		})
	default:
		return nil, fmt.Errorf("unknown report kind %q", report.Kind)
	}
}

func (f *TextFormatter) renderMatches(report *Report) []string {
	lines := make([]string, 0, len(report.Matches))
	for _, m := range report.Matches {
		text := m.Text
		if report.Kind == KindParse {
			text = m.Value
		}
		if f.opts.NoLocations {
			lines = append(lines, text)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s\t%d\t%d", text, m.Line, m.Column))
	}
	return lines
}

// renderGroups prints one value per line for the "all" interval and one
// "key: v1, v2" line per interval otherwise. Intervals with no values are
// skipped.
func renderGroups(report *Report, values func(Group) ([]string, error)) ([]string, error) {
	var lines []string
	for _, g := range report.Groups {
		vals, err := values(g)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			continue
		}
		if report.Interval == analyzer.IntervalAll || report.Interval == "" {
			lines = append(lines, vals...)
			continue
		}
		lines = append(lines, g.Key+": "+strings.Join(vals, ", "))
	}
	return lines, nil
}

func formatAll[T any](values []T, fn func(T) (string, error)) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, err := fn(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
