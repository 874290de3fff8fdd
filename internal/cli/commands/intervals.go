package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/config"
	"github.com/ccollicutt/datetimescan/pkg/output"
)

const (
	perUsage     = "Group by interval (d|m|y|all)"
	unitUsage    = "Duration unit (s|m|h|hms)"
	timeoutUsage = "Longest gap in seconds that still counts as continuous activity"
)

// The grouping flags below are not bound to variables. Resolve reads the ones
// the user set back from the flag set, so unset flags fall through to the
// config file and environment.

// NewCountCommand creates the count command.
func NewCountCommand(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count timestamps per interval",
		Long: `Count the kept timestamps. With --per all (the default) a single number is
printed; otherwise one "KEY: N" line per day, month or year, in key order.

Example:
  datetimescan count -i worklog.txt
  datetimescan count --per d -i 'logs/*.log'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.intervalResults(cmd, output.KindCount)
		},
	}

	cmd.Flags().String("per", config.DefaultPer, perUsage)

	return cmd
}

// NewDeltasCommand creates the deltas command.
func NewDeltasCommand(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deltas",
		Short: "Print the time between consecutive timestamps",
		Long: `Print the difference between each pair of consecutive kept timestamps, one
per line. Negative differences (out-of-order input) are replaced by 0 unless
--allow-negative is given.

Example:
  datetimescan deltas -i worklog.txt
  datetimescan deltas --unit hms --per d -i worklog.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.intervalResults(cmd, output.KindDeltas)
		},
	}

	cmd.Flags().String("per", config.DefaultPer, perUsage)
	cmd.Flags().String("unit", config.DefaultUnit, unitUsage)
	cmd.Flags().Bool("allow-negative", false, "Keep negative differences")

	return cmd
}

// NewSplitsCommand creates the splits command.
func NewSplitsCommand(g *Globals) *cobra.Command {
	return newSplitsCommand(g, output.KindSplits, "splits",
		"Print the lengths of continuous activity",
		`Treat consecutive timestamps no more than --timeout seconds apart as one
stretch of continuous activity and print the length of each stretch. Gaps
longer than the timeout end a stretch; stretches of length 0 are not printed.

With --per all (the default) one length is printed per line; otherwise one
"KEY: a, b, c" line per interval.

Example:
  datetimescan splits -i worklog.txt
  datetimescan splits --per d --timeout 600 --unit hms -i worklog.txt`)
}

// NewSumCommand creates the sum command.
func NewSumCommand(g *Globals) *cobra.Command {
	return newSplitsCommand(g, output.KindSum, "sum",
		"Print the total length of continuous activity",
		`Add up the lengths printed by the splits command. With --per all (the default)
a single total is printed; otherwise one "KEY: N" line per interval.

Example:
  datetimescan sum --unit h -i worklog.txt
  datetimescan sum --per m --unit hms -i 'logs/*.log'`)
}

func newSplitsCommand(g *Globals, kind output.Kind, use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.intervalResults(cmd, kind)
		},
	}

	cmd.Flags().String("per", config.DefaultPer, perUsage)
	cmd.Flags().Uint64("timeout", config.DefaultTimeout, timeoutUsage)
	cmd.Flags().String("unit", config.DefaultUnit, unitUsage)

	return cmd
}
