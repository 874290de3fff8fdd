package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/output"
)

// NewFilterCommand creates the filter command.
func NewFilterCommand(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Print the input without lines holding excluded timestamps",
		Long: `Echo the input, dropping every line that contains a timestamp the filter
excludes. Lines without timestamps are always printed.

Example:
  datetimescan filter --filter-start 2023-05-05T19:35:00+10:00 -i worklog.txt
  datetimescan filter --filter-end 2023-01-01T00:00:00Z --filter-invert < app.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, g)
		},
	}
}

func runFilter(cmd *cobra.Command, g *Globals) error {
	s, err := g.readInputs(cmd, true)
	if err != nil {
		return err
	}

	sel, err := g.newAnalyzer().Prepare(commandContext(cmd), s.times)
	if err != nil {
		return err
	}

	excluded := make(map[lineKey]bool)
	for i, m := range s.matches {
		if !sel.Mask[i] {
			excluded[lineKey{m.Source, m.Line}] = true
		}
	}

	lines := make([]string, 0, len(s.lines))
	for _, line := range s.lines {
		if excluded[lineKey{line.Source, line.LineNum}] {
			continue
		}
		lines = append(lines, line.Content)
	}

	g.Logger.LogAttrs(commandContext(cmd), slog.LevelDebug, "filtered lines",
		slog.Int("read", len(s.lines)),
		slog.Int("printed", len(lines)),
	)

	report := output.NewLinesReport(lines)
	return g.write(cmd, report, s, len(sel.Kept), output.FormatOptions{})
}
