package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func runArgs(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_ExitCodes(t *testing.T) {
	worklog := testdata("worklog.txt")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
	}{
		{"count", "", []string{"count", "-i", worklog}, ExitOK},
		{"stdin", "2023-05-05T19:34:42+10:00\n", []string{"count"}, ExitOK},
		{"future rejected", "", []string{"count", "--no-future", "-i", worklog}, ExitPolicy},
		{"unsorted rejected", "", []string{"splits", "--no-unsorted", "-i", worklog}, ExitPolicy},
		{"missing input", "", []string{"count", "-i", "/nonexistent/work.log"}, ExitError},
		{"bad interval", "", []string{"count", "--per", "w", "-i", worklog}, ExitError},
		{"unparseable", "2023-13-05T19:34:42+10:00\n", []string{"count"}, ExitError},
		{"unknown command", "", []string{"frobnicate"}, ExitError},
		{"version", "", []string{"version"}, ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runArgs(tt.stdin, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if code != ExitOK && !strings.HasPrefix(stderr, "Error: ") {
				t.Errorf("stderr = %q, want an Error: prefix", stderr)
			}
		})
	}
}

func TestRun_ResultsOnStdout(t *testing.T) {
	code, stdout, stderr := runArgs("", "sum", "--unit", "hms", "-i", testdata("textWithIsoDatetimes-1.txt"))
	if code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "1m53s\n" {
		t.Errorf("stdout = %q, want %q", stdout, "1m53s\n")
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want nothing at the default log level", stderr)
	}
}

func TestRun_UnderscoreFlags(t *testing.T) {
	worklog := testdata("worklog.txt")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"filter_end", []string{"count", "--filter_end", "2024-01-01T00:00:00Z", "-i", worklog}, "8\n"},
		{"allow_negative", []string{"deltas", "--allow_negative", "--filter_end", "2024-01-01T00:00:00Z", "-i", worklog}, "36\n170\n189\n5\n407\n-62\n189\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runArgs("", tt.args...)
			if code != ExitOK {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}

	code, _, _ := runArgs("", "count", "--no_future", "-i", worklog)
	if code != ExitPolicy {
		t.Errorf("--no_future exit code = %d, want %d", code, ExitPolicy)
	}
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	code, stdout, stderr := runArgs("", "count", "-v", "-i", testdata("textWithIsoDatetimes-1.txt"))
	if code != ExitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "5\n" {
		t.Errorf("stdout = %q, want %q", stdout, "5\n")
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("stderr = %q, want debug records", stderr)
	}
}

func TestExitCode(t *testing.T) {
	policy := &analyzer.PolicyError{Policy: analyzer.PolicyNoFuture}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"policy", policy, ExitPolicy},
		{"wrapped policy", fmt.Errorf("count: %w", policy), ExitPolicy},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	want := []string{"locate", "parse", "convert", "filter", "count", "deltas", "splits", "sum", "detect", "validate", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
