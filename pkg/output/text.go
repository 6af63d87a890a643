package output

import (
	"fmt"
	"io"
)

// TextWriter prints raw lines, one per row, the way dmesg would.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a text writer targeting w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Name returns the format name.
func (t *TextWriter) Name() string {
	return "text"
}

// Write prints the raw line.
func (t *TextWriter) Write(e Entry) error {
	if _, err := fmt.Fprintln(t.w, e.Line); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
