package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
	"github.com/ccollicutt/datetimescan/pkg/config"
	"github.com/ccollicutt/datetimescan/pkg/output"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

// AnnotationNoConfig marks commands that run without resolving the
// configuration.
const AnnotationNoConfig = "datetimescan/no-config"

// Globals holds the persistent flags shared by every subcommand together
// with the configuration resolved from them.
type Globals struct {
	Inputs       []string
	Output       string
	Format       string
	ConfigPath   string
	FilterStart  string
	FilterEnd    string
	FilterInvert bool
	NoFuture     bool
	NoUnsorted   bool
	Merge        bool
	LogLevel     string
	Verbose      bool

	// Set by Resolve.
	Config *config.Config
	Logger *slog.Logger
}

// BindFlags registers the persistent flags on fs.
func (g *Globals) BindFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&g.Inputs, "input", "i", nil, "Input file or glob, \"-\" for stdin (repeatable; default stdin)")
	fs.StringVarP(&g.Output, "output", "o", "", "Write results to file instead of stdout")
	fs.StringVar(&g.Format, "format", config.DefaultFormat, "Output format (text|json)")
	fs.StringVar(&g.ConfigPath, "config", "", "Configuration file (.yaml or .toml)")
	fs.StringVar(&g.FilterStart, "filter-start", "", "Keep timestamps at or after this instant")
	fs.StringVar(&g.FilterEnd, "filter-end", "", "Keep timestamps at or before this instant")
	fs.BoolVar(&g.FilterInvert, "filter-invert", false, "Keep timestamps outside the filter range instead")
	fs.BoolVar(&g.NoFuture, "no-future", false, "Fail when a kept timestamp is in the future")
	fs.BoolVar(&g.NoUnsorted, "no-unsorted", false, "Fail when kept timestamps are out of order")
	fs.BoolVar(&g.Merge, "merge", false, "Order timestamps from several inputs chronologically")
	fs.StringVar(&g.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "Shorthand for --log-level debug")
}

// Resolve builds the effective configuration: defaults, then the config file,
// then the environment, then flags the user set explicitly. The result is
// validated once all layers are applied.
func (g *Globals) Resolve(cmd *cobra.Command) error {
	cfg, err := config.Read(commandContext(cmd), g.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := applyFlags(cmd.Flags(), g, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	g.Config = cfg
	if g.Logger == nil {
		g.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

func applyFlags(fs *pflag.FlagSet, g *Globals, cfg *config.Config) error {
	if fs.Changed("input") {
		cfg.Input = g.Inputs
	}
	if fs.Changed("output") {
		cfg.Output = g.Output
	}
	if fs.Changed("format") {
		cfg.Format = g.Format
	}
	if fs.Changed("filter-start") {
		cfg.Filter.Start = g.FilterStart
	}
	if fs.Changed("filter-end") {
		cfg.Filter.End = g.FilterEnd
	}
	if fs.Changed("filter-invert") {
		cfg.Filter.Invert = g.FilterInvert
	}
	if fs.Changed("no-future") {
		cfg.NoFuture = g.NoFuture
	}
	if fs.Changed("no-unsorted") {
		cfg.NoUnsorted = g.NoUnsorted
	}
	if fs.Changed("merge") {
		cfg.Merge = g.Merge
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = g.LogLevel
	}
	if g.Verbose {
		cfg.LogLevel = "debug"
	}

	// Subcommand flags.
	var err error
	if fs.Changed("per") {
		if cfg.Per, err = fs.GetString("per"); err != nil {
			return err
		}
	}
	if fs.Changed("timeout") {
		timeout, err := fs.GetUint64("timeout")
		if err != nil {
			return err
		}
		cfg.SetTimeout(timeout)
	}
	if fs.Changed("unit") {
		if cfg.Unit, err = fs.GetString("unit"); err != nil {
			return err
		}
	}
	if fs.Changed("allow-negative") {
		if cfg.AllowNegative, err = fs.GetBool("allow-negative"); err != nil {
			return err
		}
	}
	return nil
}

// newAnalyzer creates an analyzer from the resolved configuration.
func (g *Globals) newAnalyzer() *analyzer.Analyzer {
	cfg := g.Config
	return analyzer.NewAnalyzer(
		analyzer.WithRange(cfg.Filter.StartTime(), cfg.Filter.EndTime()),
		analyzer.WithInvert(cfg.Filter.Invert),
		analyzer.WithNoFuture(cfg.NoFuture),
		analyzer.WithNoUnsorted(cfg.NoUnsorted),
		analyzer.WithInterval(cfg.Interval()),
		analyzer.WithTimeout(cfg.Timeout),
		analyzer.WithAllowNegative(cfg.AllowNegative),
		analyzer.WithLogger(g.Logger),
	)
}

// needsParse reports whether the configuration forces located matches to be
// parsed even when the command itself only locates.
func (g *Globals) needsParse() bool {
	cfg := g.Config
	return cfg.Filter.Start != "" || cfg.Filter.End != "" || cfg.Filter.Invert ||
		cfg.NoFuture || cfg.NoUnsorted || cfg.Merge
}

// scan is the located and parsed content of every input.
type scan struct {
	sources []string
	lines   []parser.Line
	matches []parser.Match
	times   []time.Time // parallel to matches; nil when not parsed
	started time.Time
}

// readInputs reads and locates every input. When parse is set the matches are
// parsed as a batch and, with --merge, ordered chronologically across inputs.
func (g *Globals) readInputs(cmd *cobra.Command, parse bool) (*scan, error) {
	ctx := commandContext(cmd)
	s := &scan{started: time.Now()}

	files, err := parser.ResolveInputs(g.Config.Input)
	if err != nil {
		return nil, fmt.Errorf("resolving inputs: %w", err)
	}
	s.sources = files

	src := parser.NewFileSource(files).WithStdin(cmd.InOrStdin())
	defer func() { _ = src.Close() }()

	if s.lines, err = parser.ReadAll(ctx, src); err != nil {
		return nil, err
	}
	s.matches = parser.LocateLines(s.lines)

	g.Logger.LogAttrs(ctx, slog.LevelDebug, "located timestamps",
		slog.Int("sources", len(files)),
		slog.Int("lines", len(s.lines)),
		slog.Int("located", len(s.matches)),
	)

	if !parse {
		return s, nil
	}

	if s.times, err = parser.ParseMatches(s.matches); err != nil {
		return nil, err
	}

	if g.Config.Merge && len(files) > 1 {
		if err := s.merge(ctx); err != nil {
			return nil, err
		}
		g.Logger.LogAttrs(ctx, slog.LevelDebug, "merged inputs", slog.Int("sources", len(files)))
	}
	return s, nil
}

// merge reorders matches and times chronologically across sources. Each
// source keeps its own order.
func (s *scan) merge(ctx context.Context) error {
	index := make(map[string]int, len(s.sources))
	for i, src := range s.sources {
		index[src] = i
	}

	groups := make([][]parser.Stamp, len(s.sources))
	for i, m := range s.matches {
		n := index[m.Source]
		groups[n] = append(groups[n], parser.Stamp{Match: m, Time: s.times[i]})
	}

	merged, err := parser.MergeStamps(ctx, groups...)
	if err != nil {
		return fmt.Errorf("merging inputs: %w", err)
	}

	for i, st := range merged {
		s.matches[i] = st.Match
		s.times[i] = st.Time
	}
	return nil
}

// intervalResults runs the analyzer stages shared by count, deltas, splits
// and sum.
func (g *Globals) intervalResults(cmd *cobra.Command, kind output.Kind) error {
	ctx := commandContext(cmd)
	s, err := g.readInputs(cmd, true)
	if err != nil {
		return err
	}

	a := g.newAnalyzer()
	sel, err := a.Prepare(ctx, s.times)
	if err != nil {
		return err
	}

	var results []analyzer.IntervalResult
	switch kind {
	case output.KindCount:
		results, err = a.Count(ctx, sel.Kept)
	case output.KindDeltas:
		results, err = a.Deltas(ctx, sel.Kept)
	default:
		results, err = a.Splits(ctx, sel.Kept)
	}
	if err != nil {
		return err
	}

	report := output.NewIntervalReport(kind, a.Interval(), g.Config.DurationUnit(), results)
	if kind == output.KindCount {
		report.Unit = ""
	}
	return g.write(cmd, report, s, len(sel.Kept), output.FormatOptions{})
}

// write fills in the report summary and sends it to the configured sink.
func (g *Globals) write(cmd *cobra.Command, report *output.Report, s *scan, kept int, opts output.FormatOptions) error {
	cfg := g.Config
	report.Summary = output.Summary{
		LinesRead: len(s.lines),
		Located:   len(s.matches),
		Kept:      kept,
	}
	report.Metadata = output.Metadata{
		Sources:     s.sources,
		GeneratedAt: time.Now(),
		Duration:    time.Since(s.started),
	}
	if start, end := cfg.Filter.StartTime(), cfg.Filter.EndTime(); start != nil || end != nil || cfg.Filter.Invert {
		report.Metadata.Filter = &output.Filter{Start: start, End: end, Invert: cfg.Filter.Invert}
	}

	f, err := output.NewFormatter(cfg.Format, opts)
	if err != nil {
		return err
	}
	return output.Write(commandContext(cmd), f, report, cfg.Output, cmd.OutOrStdout())
}

// keptMatches returns the matches selected by mask.
func keptMatches(matches []parser.Match, mask []bool) []parser.Match {
	kept := make([]parser.Match, 0, len(matches))
	for i, m := range matches {
		if mask[i] {
			kept = append(kept, m)
		}
	}
	return kept
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
