package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// jsonGroup adds the unit-formatted values next to the raw seconds.
type jsonGroup struct {
	Group
	FormattedDeltas []string `json:"formatted_deltas,omitempty"`
	FormattedSplits []string `json:"formatted_splits,omitempty"`
	FormattedSum    string   `json:"formatted_sum,omitempty"`
}

type jsonReport struct {
	*Report
	Groups []jsonGroup `json:"groups,omitempty"`
}

// Format renders the report as indented JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	out := jsonReport{Report: report}
	if f.opts.NoLocations {
		stripped := *report
		stripped.Matches = make([]MatchRecord, len(report.Matches))
		for i, m := range report.Matches {
			stripped.Matches[i] = MatchRecord{Text: m.Text, Value: m.Value, Layout: m.Layout}
		}
		out.Report = &stripped
	}

	for _, g := range report.Groups {
		jg, err := formatGroup(report, g)
		if err != nil {
			return err
		}
		out.Groups = append(out.Groups, jg)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func formatGroup(report *Report, g Group) (jsonGroup, error) {
	jg := jsonGroup{Group: g}
	if report.Unit == "" {
		return jg, nil
	}

	var err error
	switch report.Kind {
	case KindDeltas:
		jg.FormattedDeltas, err = formatAll(g.Deltas, func(d int64) (string, error) { return FormatSeconds(d, report.Unit) })
	case KindSplits, KindSum:
		jg.FormattedSplits, err = formatAll(g.Splits, func(s uint64) (string, error) { return FormatUnsigned(s, report.Unit) })
		if err == nil {
			jg.FormattedSum, err = FormatUnsigned(g.Sum, report.Unit)
		}
	}
	return jg, err
}
