package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.log", "a.log", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	a := filepath.Join(dir, "a.log")
	b := filepath.Join(dir, "b.log")
	c := filepath.Join(dir, "c.txt")
	missing := filepath.Join(dir, "missing.log")

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"empty means stdin", nil, []string{Stdin}},
		{"stdin kept", []string{Stdin}, []string{Stdin}},
		{"glob sorted", []string{filepath.Join(dir, "*.log")}, []string{a, b}},
		{"argument order kept", []string{c, filepath.Join(dir, "*.log")}, []string{c, a, b}},
		{"duplicates removed", []string{a, filepath.Join(dir, "*.log"), a}, []string{a, b}},
		{"no match kept literally", []string{missing}, []string{missing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInputs(tt.patterns)
			if err != nil {
				t.Fatalf("ResolveInputs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveInputs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveInputs_InvalidPattern(t *testing.T) {
	if _, err := ResolveInputs([]string{"[invalid"}); err == nil {
		t.Error("ResolveInputs() expected error for malformed glob")
	}
}
