package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/config"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a datetimescan configuration file without scanning anything.

Checks:
  - YAML or TOML syntax (chosen by file extension)
  - Output format, interval, duration unit and log level values
  - Filter bounds parse
  - Input file existence (warning only)`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{AnnotationNoConfig: "true"},
		RunE:        runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	p := &printer{w: cmd.OutOrStdout()}

	p.printf("Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	p.printf("\nConfiguration valid!\n")
	p.printf("  Format:   %s\n", cfg.Format)
	p.printf("  Interval: %s\n", cfg.Interval())
	p.printf("  Timeout:  %ds\n", cfg.Timeout)
	p.printf("  Unit:     %s\n", cfg.DurationUnit())
	if start := cfg.Filter.StartTime(); start != nil {
		p.printf("  Filter start: %s\n", start.Format("2006-01-02T15:04:05-07:00"))
	}
	if end := cfg.Filter.EndTime(); end != nil {
		p.printf("  Filter end:   %s\n", end.Format("2006-01-02T15:04:05-07:00"))
	}
	if cfg.Filter.Invert {
		p.printf("  Filter inverted\n")
	}

	if len(cfg.Input) == 0 {
		p.printf("\nInputs: stdin\n")
		return p.err
	}

	files, err := parser.ResolveInputs(cfg.Input)
	if err != nil {
		p.printf("\nWarning: Error expanding input patterns: %v\n", err)
		return p.err
	}

	p.printf("\nInputs matched: %d\n", len(files))
	for _, f := range files {
		p.printf("  - %s\n", f)
	}
	for _, f := range missingInputs(files) {
		p.printf("Warning: input not found: %s\n", f)
	}
	return p.err
}

func missingInputs(files []string) []string {
	var missing []string
	for _, f := range files {
		if f == parser.Stdin {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
		}
	}
	return missing
}
