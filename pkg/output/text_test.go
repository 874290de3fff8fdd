package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/datetimescan/pkg/analyzer"
	"github.com/ccollicutt/datetimescan/pkg/parser"
)

func renderText(t *testing.T, opts FormatOptions, report *Report) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewTextFormatter(opts).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestTextFormatter_Name(t *testing.T) {
	if got := NewTextFormatter(FormatOptions{}).Name(); got != "text" {
		t.Errorf("Name() = %q, want text", got)
	}
}

func TestTextFormatter_Locate(t *testing.T) {
	report := NewMatchReport([]parser.Match{
		{Text: "2023-05-05T19:34:42+1000", Line: 1, Column: 0},
		{Text: "2023-05-05T19:35:44+1000", Line: 3, Column: 10},
	})

	want := "2023-05-05T19:34:42+1000\t1\t0\n2023-05-05T19:35:44+1000\t3\t10\n"
	if got := renderText(t, FormatOptions{}, report); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	want = "2023-05-05T19:34:42+1000\n2023-05-05T19:35:44+1000\n"
	if got := renderText(t, FormatOptions{NoLocations: true}, report); got != want {
		t.Errorf("Format(NoLocations) = %q, want %q", got, want)
	}
}

func TestTextFormatter_Parse(t *testing.T) {
	report := &Report{
		Kind: KindParse,
		Matches: []MatchRecord{
			{Text: "2023-05-05T19:34:42AEST", Value: "2023-05-05T19:34:42+10:00", Line: 2, Column: 4},
		},
	}

	if got := renderText(t, FormatOptions{}, report); got != "2023-05-05T19:34:42+10:00\t2\t4\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestTextFormatter_Groups(t *testing.T) {
	results := []analyzer.IntervalResult{
		{Key: "2023-04-19", Count: 8, Deltas: []int64{36, -62}, Splits: []uint64{400, 189}, Sum: 589},
		{Key: "2999-04-19", Count: 1, Deltas: []int64{}},
	}

	tests := []struct {
		name     string
		kind     Kind
		interval analyzer.Interval
		unit     Unit
		results  []analyzer.IntervalResult
		want     string
	}{
		{"count per day", KindCount, analyzer.IntervalDay, "", results, "2023-04-19: 8\n2999-04-19: 1\n"},
		{"count all", KindCount, analyzer.IntervalAll, "", []analyzer.IntervalResult{{Key: "all", Count: 5}}, "5\n"},
		{"deltas all", KindDeltas, analyzer.IntervalAll, UnitSeconds, results[:1], "36\n-62\n"},
		{"deltas per day skips empty", KindDeltas, analyzer.IntervalDay, UnitHMS, results, "2023-04-19: 36s, -1m02s\n"},
		{"splits all", KindSplits, analyzer.IntervalAll, UnitSeconds, results[:1], "400\n189\n"},
		{"splits per day", KindSplits, analyzer.IntervalDay, UnitMinutes, results[:1], "2023-04-19: 6.67, 3.15\n"},
		{"sum all", KindSum, analyzer.IntervalAll, UnitHMS, results[:1], "9m49s\n"},
		{"sum per day", KindSum, analyzer.IntervalDay, UnitSeconds, results[:1], "2023-04-19: 589\n"},
		{"empty", KindSplits, analyzer.IntervalAll, UnitSeconds, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewIntervalReport(tt.kind, tt.interval, tt.unit, tt.results)
			if got := renderText(t, FormatOptions{}, report); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextFormatter_InvalidUnit(t *testing.T) {
	report := NewIntervalReport(KindSum, analyzer.IntervalAll, Unit("d"),
		[]analyzer.IntervalResult{{Key: "all", Splits: []uint64{1}, Sum: 1}})

	var buf bytes.Buffer
	err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf)
	if err == nil {
		t.Fatal("Format() expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("partial output written: %q", buf.String())
	}
}

func TestTextFormatter_Lines(t *testing.T) {
	report := NewLinesReport([]string{"first", "", "third"})
	if got := renderText(t, FormatOptions{}, report); got != "first\n\nthird\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestWrite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	report := NewLinesReport([]string{"hello"})

	if err := Write(context.Background(), NewTextFormatter(FormatOptions{}), report, path, os.Stdout); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestWrite_FailedRenderLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("previous\n"), 0644); err != nil {
		t.Fatal(err)
	}
	report := NewIntervalReport(KindSum, analyzer.IntervalAll, Unit("x"),
		[]analyzer.IntervalResult{{Key: "all", Splits: []uint64{1}, Sum: 1}})

	err := Write(context.Background(), NewTextFormatter(FormatOptions{}), report, path, os.Stdout)
	if err == nil || !strings.Contains(err.Error(), "unit=(x)") {
		t.Fatalf("Write() error = %v, want unit error", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous\n" {
		t.Errorf("file was modified: %q", data)
	}
}

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(context.Background(), NewTextFormatter(FormatOptions{}), NewLinesReport([]string{"x"}), "-", &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "x\n" {
		t.Errorf("stdout = %q", buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json"} {
		f, err := NewFormatter(name, FormatOptions{})
		if err != nil || f.Name() != name {
			t.Errorf("NewFormatter(%q) = %v, %v", name, f, err)
		}
	}
	if _, err := NewFormatter("xml", FormatOptions{}); err == nil {
		t.Error("NewFormatter(xml) expected error")
	}
}
