// Package cli provides the command-line interface for datetimescan.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccollicutt/datetimescan/internal/cli/commands"
	"github.com/ccollicutt/datetimescan/pkg/analyzer"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitPolicy = 1 // future or out-of-order timestamps rejected
	ExitError  = 2 // malformed input, configuration or runtime error
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// SilenceErrors prevents Cobra from printing this itself.
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	var policyErr *analyzer.PolicyError
	if errors.As(err, &policyErr) {
		return ExitPolicy
	}
	return ExitError
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "datetimescan",
		Short: "Find timestamps in text and measure time between them",
		Long: `datetimescan extracts timestamps from arbitrary text and reports on them.

It can:
  - Locate, parse, convert and filter timestamps in the input
  - Count timestamps per day, month or year
  - Print the time between consecutive timestamps
  - Split activity into continuous stretches and add them up

Input is read from files or globs given with -i, or from stdin.

Exit codes:
  0 - Success
  1 - Future or out-of-order timestamps rejected (--no-future, --no-unsorted)
  2 - Malformed input, configuration or runtime error`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[commands.AnnotationNoConfig] != "" {
				return nil
			}
			if err := g.Resolve(cmd); err != nil {
				return err
			}
			g.Logger = newLogger(cmd.ErrOrStderr(), g.Config.Level())
			return nil
		},
	}

	g.BindFlags(rootCmd.PersistentFlags())
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(commands.NewLocateCommand(g))
	rootCmd.AddCommand(commands.NewParseCommand(g))
	rootCmd.AddCommand(commands.NewConvertCommand(g))
	rootCmd.AddCommand(commands.NewFilterCommand(g))
	rootCmd.AddCommand(commands.NewCountCommand(g))
	rootCmd.AddCommand(commands.NewDeltasCommand(g))
	rootCmd.AddCommand(commands.NewSplitsCommand(g))
	rootCmd.AddCommand(commands.NewSumCommand(g))
	rootCmd.AddCommand(commands.NewDetectCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// normalizeFlagName accepts underscore spellings such as --filter_start.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
