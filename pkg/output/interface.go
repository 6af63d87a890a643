package output

// Writer renders delivered log lines in a specific format.
// Writers are driven by a single consumer and need not be safe for
// concurrent use.
type Writer interface {
	// Write renders one log line.
	Write(e Entry) error

	// Name returns the format name (text, json).
	Name() string
}
