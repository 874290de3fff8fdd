package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/datetimescan/pkg/config"
	"github.com/ccollicutt/datetimescan/pkg/detector"
	"github.com/ccollicutt/datetimescan/pkg/output"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand(g *Globals) *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Detect which timestamp forms the input uses",
		Long: `Locate timestamps in the input and report which accepted form each one
parses with, along with a confidence score and any values that do not parse.

Reads the given file, or the --input sources when no file is given.
Optionally generates a starter config file with --write-config; the syntax
(YAML or TOML) follows the file extension.

Accepted forms:
  - RFC 3339 (2023-05-08T19:29:50+10:00, 2023-05-08T09:29:50Z)
  - ISO 8601 with a basic offset or zone (2023-05-08T19:29:50+1000, ...AEST)
  - ISO 8601 without offset, T or space separated (local offset applied)

Example:
  datetimescan detect worklog.txt
  datetimescan detect -n 500 --all -i 'logs/*.log'
  datetimescan detect --write-config datetimescan.yaml worklog.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, g, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of located timestamps to examine")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected forms, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, g *Globals, opts *DetectOptions) error {
	ctx := commandContext(cmd)
	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	var (
		result  *detector.DetectionResult
		sources []string
	)
	switch {
	case len(args) == 1 && args[0] == parser.Stdin:
		r, err := d.DetectFromSource(ctx, parser.NewReaderSource(cmd.InOrStdin(), parser.Stdin))
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		result, sources = r, args
	case len(args) == 1:
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", args[0])
		}
		r, err := d.DetectFromFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		result, sources = r, args
	default:
		s, err := g.readInputs(cmd, false)
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		result, sources = d.DetectFromMatches(s.matches), s.sources
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(cmd.OutOrStdout(), result, sources, opts.WriteConfig); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	var err error
	switch g.Config.Format {
	case "json":
		err = outputDetectJSON(&buf, result, sources, opts)
	default:
		err = outputDetectText(&buf, result, sources, opts)
	}
	if err != nil {
		return err
	}

	sink, err := output.OpenSink(g.Config.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()
	_, err = buf.WriteTo(sink)
	return err
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, sources []string, opts *DetectOptions) error {
	p := &printer{w: w}
	p.println("=== Timestamp Format Detection ===")
	p.println()
	for _, s := range sources {
		p.printf("Input: %s\n", s)
	}
	p.printf("Timestamps examined: %d\n", result.Located)
	p.printf("Timestamps parsed: %d\n", result.Parsed)
	p.println()

	if !result.HasMatch() {
		p.println("No timestamp format detected.")
		p.println()
		p.println("Tip: timestamps must look like 2023-05-08T19:29:50 or 2023-05-08 19:29:50,")
		p.println("optionally followed by an offset (+10:00, +1000) or a zone (UTC, AEST, AEDT).")
		return p.err
	}

	best := result.BestMatch()
	p.printf("Detected Format: %s\n", best.Layout.Name)
	p.printf("Confidence: %.1f%% (%d/%d timestamps matched)\n",
		best.Confidence*100, best.MatchCount, result.Located)
	p.println()
	p.printf("Sample match (line %d, column %d):\n  %s\n", best.Sample.Line, best.Sample.Column, best.Sample.Text)
	p.printf("Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05 -07:00"))
	p.println()

	if result.LocalOffsetNote != "" {
		p.printf("Note: %s\n", result.LocalOffsetNote)
		p.println()
	}

	if len(result.Unparseable) > 0 {
		p.printf("Unparseable timestamps: %d\n", len(result.Unparseable))
		for _, m := range result.Unparseable {
			p.printf("  %s\t%d\t%d\n", m.Text, m.Line, m.Column)
		}
		p.println()
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		p.println("--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			p.printf("%d. %s (%.1f%% confidence)\n", i+2, m.Layout.Name, m.Confidence*100)
			p.printf("   layout: %q\n", m.Layout.Layout)
		}
		p.println()
	}

	return p.err
}

// printer remembers the first write error so output code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name        string  `json:"name"`
	Layout      string  `json:"layout"`
	LocalOffset bool    `json:"local_offset,omitempty"`
	Confidence  float64 `json:"confidence"`
	MatchCount  int     `json:"match_count"`
	Sample      string  `json:"sample"`
	SampleLine  int     `json:"sample_line"`
}

// JSONLocation is an unparseable timestamp in JSON output.
type JSONLocation struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	Sources         []string       `json:"sources"`
	Matches         []JSONMatch    `json:"matches"`
	Located         int            `json:"located"`
	Parsed          int            `json:"parsed"`
	Unparseable     []JSONLocation `json:"unparseable,omitempty"`
	LocalOffsetNote string         `json:"local_offset_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, sources []string, opts *DetectOptions) error {
	out := JSONOutput{
		Sources:         sources,
		Located:         result.Located,
		Parsed:          result.Parsed,
		LocalOffsetNote: result.LocalOffsetNote,
		Matches:         make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:        m.Layout.Name,
			Layout:      m.Layout.Layout,
			LocalOffset: m.Layout.LocalOffset,
			Confidence:  m.Confidence,
			MatchCount:  m.MatchCount,
			Sample:      m.Sample.Text,
			SampleLine:  m.Sample.Line,
		})
	}
	for _, m := range result.Unparseable {
		out.Unparseable = append(out.Unparseable, JSONLocation{Text: m.Text, Source: m.Source, Line: m.Line, Column: m.Column})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file for the scanned inputs.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, sources []string, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	data, err := generateStarterConfig(sources, result.BestMatch(), config.DetectFormat(configPath))
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, err = fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return err
}

// generateStarterConfig renders a default configuration reading sources.
func generateStarterConfig(sources []string, match *detector.FormatMatch, format config.Format) ([]byte, error) {
	cfg := config.DefaultConfig()
	for _, s := range sources {
		if s != parser.Stdin {
			if abs, err := filepath.Abs(s); err == nil {
				s = abs
			}
		}
		cfg.Input = append(cfg.Input, s)
	}

	body, err := config.Encode(cfg, format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# datetimescan configuration\n")
	fmt.Fprintf(&buf, "# Generated by: datetimescan detect\n")
	fmt.Fprintf(&buf, "# Detected format: %s (%.0f%% confidence)\n", match.Layout.Name, match.Confidence*100)
	if match.Layout.LocalOffset {
		fmt.Fprintf(&buf, "# Values carry no offset; the local offset is applied when scanning.\n")
	}
	buf.WriteString("\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
