// Package output renders kernel log lines for the CLI.
package output

import "time"

// Entry is one delivered kernel log line.
type Entry struct {
	// Line is the raw line content.
	Line string `json:"line"`

	// ReceivedAt is when the line was pulled from the iterator.
	ReceivedAt time.Time `json:"received_at"`
}
