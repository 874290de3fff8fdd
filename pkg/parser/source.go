package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

const maxLineSize = 1024 * 1024

// LineSource provides an iterator over input lines.
// Implementations are for sequential use only.
type LineSource interface {
	// Next returns the next line. Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// DecodeError reports a line that is not valid UTF-8.
type DecodeError struct {
	Source  string
	LineNum int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s line %d: input is not valid UTF-8", e.Source, e.LineNum)
}

// FileSource reads lines from a list of files in order. The name "-" reads
// standard input.
type FileSource struct {
	files []string
	stdin io.Reader

	current   io.Closer
	scanner   *bufio.Scanner
	source    string
	lineNum   int
	fileIndex int
}

// NewFileSource creates a LineSource over the given paths.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
}

// WithStdin replaces the reader used for "-".
func (s *FileSource) WithStdin(r io.Reader) *FileSource {
	s.stdin = r
	return s
}

// Next returns the next line across all files.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.scanner == nil {
			if err := s.openNext(); err != nil {
				return nil, err
			}
		}

		if s.scanner.Scan() {
			s.lineNum++
			return newLine(s.scanner.Bytes(), s.source, s.lineNum)
		}
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.source, err)
		}
		if err := s.closeCurrent(); err != nil {
			return nil, err
		}
	}
}

// Close releases the open file, if any.
func (s *FileSource) Close() error {
	return s.closeCurrent()
}

func (s *FileSource) openNext() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	var r io.Reader
	if path == Stdin {
		r = s.stdin
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return fmt.Errorf("opening input %s: %w", path, err)
		}
		s.current = f
		r = f
	}

	s.scanner = newScanner(r)
	s.source = path
	s.lineNum = 0
	return nil
}

func (s *FileSource) closeCurrent() error {
	s.scanner = nil
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}

// ReaderSource reads lines from a single reader.
type ReaderSource struct {
	scanner *bufio.Scanner
	name    string
	lineNum int
}

// NewReaderSource creates a LineSource over r, reporting lines as coming from name.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{scanner: newScanner(r), name: name}
}

// Next returns the next line of the reader.
func (s *ReaderSource) Next(ctx context.Context) (*Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return nil, io.EOF
	}
	s.lineNum++
	return newLine(s.scanner.Bytes(), s.name, s.lineNum)
}

// Close is a no-op; the caller owns the reader.
func (s *ReaderSource) Close() error {
	return nil
}

// ReadAll drains src. It stops at the first error.
func ReadAll(ctx context.Context, src LineSource) ([]Line, error) {
	var lines []Line
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

func newLine(raw []byte, source string, lineNum int) (*Line, error) {
	if !utf8.Valid(raw) {
		return nil, &DecodeError{Source: source, LineNum: lineNum}
	}
	return &Line{Content: string(raw), Source: source, LineNum: lineNum}, nil
}
