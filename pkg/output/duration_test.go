package output

import (
	"math"
	"strings"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		unit    Unit
		want    string
	}{
		{3600, UnitSeconds, "3600"},
		{-42, UnitSeconds, "-42"},
		{0, UnitSeconds, "0"},

		{3600, UnitHours, "1.00"},
		{113, UnitHours, "0.03"},
		{1638, UnitHours, "0.46"},
		{7, UnitHours, "0.00"},
		{18, UnitHours, "0.01"},
		{-3600, UnitHours, "-1.00"},

		{113, UnitMinutes, "1.88"},
		{206, UnitMinutes, "3.43"},
		{1638, UnitMinutes, "27.30"},
		{87, UnitMinutes, "1.45"},
		{7, UnitMinutes, "0.12"},
		{-90, UnitMinutes, "-1.50"},

		{0, UnitHMS, "0s"},
		{7, UnitHMS, "7s"},
		{60, UnitHMS, "1m"},
		{113, UnitHMS, "1m53s"},
		{605, UnitHMS, "10m05s"},
		{3600, UnitHMS, "1h"},
		{3601, UnitHMS, "1h01s"},
		{3661, UnitHMS, "1h01m01s"},
		{-3661, UnitHMS, "-1h01m01s"},
		{90061, UnitHMS, "25h01m01s"},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit)+"/"+tt.want, func(t *testing.T) {
			got, err := FormatSeconds(tt.seconds, tt.unit)
			if err != nil {
				t.Fatalf("FormatSeconds(%d, %s) error = %v", tt.seconds, tt.unit, err)
			}
			if got != tt.want {
				t.Errorf("FormatSeconds(%d, %s) = %q, want %q", tt.seconds, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds_Extremes(t *testing.T) {
	got, err := FormatSeconds(math.MinInt64, UnitSeconds)
	if err != nil {
		t.Fatalf("FormatSeconds() error = %v", err)
	}
	if got != "-9223372036854775808" {
		t.Errorf("FormatSeconds(MinInt64) = %q", got)
	}

	got, err = FormatUnsigned(math.MaxUint64, UnitMinutes)
	if err != nil {
		t.Fatalf("FormatUnsigned() error = %v", err)
	}
	if !strings.HasPrefix(got, "307445734561825860.") {
		t.Errorf("FormatUnsigned(MaxUint64, m) = %q", got)
	}
}

func TestFormatUnsigned(t *testing.T) {
	got, err := FormatUnsigned(113, UnitHMS)
	if err != nil {
		t.Fatalf("FormatUnsigned() error = %v", err)
	}
	if got != "1m53s" {
		t.Errorf("FormatUnsigned(113, hms) = %q, want 1m53s", got)
	}
}

func TestFormatSeconds_InvalidUnit(t *testing.T) {
	_, err := FormatSeconds(10, Unit("d"))
	if err == nil {
		t.Fatal("FormatSeconds() expected error for unit d")
	}
	want := "unit=(d) must equal 'hms' / 'h' / 'm' / 's'"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range []string{"s", "m", "h", "hms"} {
		if got, err := ParseUnit(u); err != nil || string(got) != u {
			t.Errorf("ParseUnit(%q) = %q, %v", u, got, err)
		}
	}
	for _, u := range []string{"", "S", "min", "hm"} {
		if _, err := ParseUnit(u); err == nil {
			t.Errorf("ParseUnit(%q) expected error", u)
		}
	}
}
