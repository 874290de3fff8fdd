// Package parser locates timestamp-like text in input lines and parses it
// into fixed-offset instants.
package parser

// Line is one line of input text.
type Line struct {
	// Content is the line text without its terminator.
	Content string

	// Source is the file path this line came from ("-" for stdin).
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Match is a timestamp-like substring found in the input.
type Match struct {
	// Text is the exact matched substring.
	Text string

	// Line is the 1-based line number the match was found on.
	Line int

	// Column is the 0-based byte offset of the match within its line.
	Column int

	// Source is the input the line came from.
	Source string
}
