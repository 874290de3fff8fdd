package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/output"
)

// LocateOptions holds command-line options for the locate command.
type LocateOptions struct {
	NoLocations bool
}

// NewLocateCommand creates the locate command.
func NewLocateCommand(g *Globals) *cobra.Command {
	opts := &LocateOptions{}

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print timestamps found in the input and where they are",
		Long: `Print every timestamp-like substring found in the input, one per line,
followed by its line number and the byte offset where it starts, separated by tabs.

Matches are printed as found and are not parsed unless a filter, a policy
(--no-future, --no-unsorted) or --merge requires it.

Example:
  datetimescan locate -i worklog.txt
  datetimescan locate --no-locations < worklog.txt
  datetimescan locate --filter-start 2023-05-05T00:00:00+10:00 -i 'logs/*.log'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, g, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoLocations, "no-locations", false, "Print only the matched text")

	return cmd
}

func runLocate(cmd *cobra.Command, g *Globals, opts *LocateOptions) error {
	s, err := g.readInputs(cmd, g.needsParse())
	if err != nil {
		return err
	}

	matches := s.matches
	if s.times != nil {
		sel, err := g.newAnalyzer().Prepare(commandContext(cmd), s.times)
		if err != nil {
			return err
		}
		matches = keptMatches(s.matches, sel.Mask)
	}

	report := output.NewMatchReport(matches)
	return g.write(cmd, report, s, len(matches), output.FormatOptions{NoLocations: opts.NoLocations})
}
