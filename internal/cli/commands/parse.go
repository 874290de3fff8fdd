package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/output"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// ParseOptions holds command-line options for the parse and convert commands.
type ParseOptions struct {
	Layout      string
	UTC         bool
	NoLocations bool
}

// NewParseCommand creates the parse command.
func NewParseCommand(g *Globals) *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print timestamps found in the input in a normalized form",
		Long: `Parse every timestamp found in the input and print it in a single layout
(RFC 3339 by default), followed by its line number and byte offset.

Layouts use Go reference time notation, e.g. "2006-01-02 15:04:05 -0700".
All timestamps must parse; otherwise nothing is printed and the unparseable
values are reported.

Example:
  datetimescan parse -i worklog.txt
  datetimescan parse --utc --layout '2006-01-02 15:04:05' -i worklog.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Layout, "layout", time.RFC3339, "Output layout in Go reference time notation")
	cmd.Flags().BoolVar(&opts.UTC, "utc", false, "Convert timestamps to UTC before formatting")
	cmd.Flags().BoolVar(&opts.NoLocations, "no-locations", false, "Print only the timestamps")

	return cmd
}

func runParse(cmd *cobra.Command, g *Globals, opts *ParseOptions) error {
	s, err := g.readInputs(cmd, true)
	if err != nil {
		return err
	}

	sel, err := g.newAnalyzer().Prepare(commandContext(cmd), s.times)
	if err != nil {
		return err
	}

	p := parser.NewParser()
	records := make([]output.MatchRecord, 0, len(sel.Kept))
	for i, m := range s.matches {
		if !sel.Mask[i] {
			continue
		}
		rec := output.MatchRecord{
			Text:   m.Text,
			Source: m.Source,
			Line:   m.Line,
			Column: m.Column,
			Value:  opts.format(s.times[i]),
		}
		if _, l, err := p.ParseLayout(m.Text); err == nil {
			rec.Layout = l.Name
		}
		records = append(records, rec)
	}

	report := &output.Report{Kind: output.KindParse, Matches: records}
	return g.write(cmd, report, s, len(records), output.FormatOptions{NoLocations: opts.NoLocations})
}

func (o *ParseOptions) format(t time.Time) string {
	if o.UTC {
		t = t.UTC()
	}
	return t.Format(o.Layout)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(g *Globals) *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the input with every timestamp rewritten",
		Long: `Echo the input with each kept timestamp replaced by its normalized form.
Timestamps excluded by the filter are left as they are.

Example:
  datetimescan convert --utc -i worklog.txt
  datetimescan convert --layout '02 Jan 2006 15:04 MST' < worklog.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Layout, "layout", time.RFC3339, "Output layout in Go reference time notation")
	cmd.Flags().BoolVar(&opts.UTC, "utc", false, "Convert timestamps to UTC before formatting")

	return cmd
}

func runConvert(cmd *cobra.Command, g *Globals, opts *ParseOptions) error {
	s, err := g.readInputs(cmd, true)
	if err != nil {
		return err
	}

	sel, err := g.newAnalyzer().Prepare(commandContext(cmd), s.times)
	if err != nil {
		return err
	}

	byLine := s.matchesByLine()
	lines := make([]string, len(s.lines))
	for i, line := range s.lines {
		lines[i] = s.rewriteLine(line.Content, byLine[lineKey{line.Source, line.LineNum}], func(idx int) (string, bool) {
			if !sel.Mask[idx] {
				return "", false
			}
			return opts.format(s.times[idx]), true
		})
	}

	report := output.NewLinesReport(lines)
	return g.write(cmd, report, s, len(sel.Kept), output.FormatOptions{})
}

type lineKey struct {
	source string
	line   int
}

// matchesByLine indexes match positions (into s.matches) by source line, in
// column order.
func (s *scan) matchesByLine() map[lineKey][]int {
	out := make(map[lineKey][]int)
	for i, m := range s.matches {
		k := lineKey{m.Source, m.Line}
		out[k] = append(out[k], i)
	}
	return out
}

// rewriteLine returns content with each match at idxs replaced by what
// replace returns for it. Matches replace reports false for are kept.
func (s *scan) rewriteLine(content string, idxs []int, replace func(int) (string, bool)) string {
	if len(idxs) == 0 {
		return content
	}

	var b strings.Builder
	pos := 0
	for _, idx := range idxs {
		m := s.matches[idx]
		text, ok := replace(idx)
		if !ok {
			continue
		}
		b.WriteString(content[pos:m.Column])
		b.WriteString(text)
		pos = m.Column + len(m.Text)
	}
	b.WriteString(content[pos:])
	return b.String()
}
