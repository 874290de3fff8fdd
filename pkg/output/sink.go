package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenSink returns the destination for rendered output: the named file, or
// stdout when path is empty or "-". Call it only once the report is complete
// so a failed run never truncates an existing file.
func OpenSink(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

// Write renders report with f and then copies it to the sink at path. The
// sink is not opened when rendering fails.
func Write(ctx context.Context, f Formatter, report *Report, path string, stdout io.Writer) (err error) {
	var buf bytes.Buffer
	if err := f.Format(ctx, report, &buf); err != nil {
		return fmt.Errorf("rendering %s output: %w", f.Name(), err)
	}

	sink, err := OpenSink(path, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if _, err := buf.WriteTo(sink); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
