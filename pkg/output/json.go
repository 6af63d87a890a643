package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter emits one JSON object per line (NDJSON), suitable for piping
// into log shippers.
type JSONWriter struct {
	enc *json.Encoder
}

// NewJSONWriter creates a JSON writer targeting w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{enc: json.NewEncoder(w)}
}

// Name returns the format name.
func (j *JSONWriter) Name() string {
	return "json"
}

// Write encodes the entry as a single JSON object.
func (j *JSONWriter) Write(e Entry) error {
	if err := j.enc.Encode(e); err != nil {
		return fmt.Errorf("encoding line: %w", err)
	}
	return nil
}
