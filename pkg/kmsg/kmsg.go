// Package kmsg reads the kernel log ring buffer.
//
// On Linux the buffer is read with klogctl(2); every read returns the full
// buffer content as of the call, optionally clearing it atomically.
package kmsg

import (
	"context"
	"errors"
)

// Source produces point-in-time snapshots of the kernel log buffer.
// Every call is a fresh read: no caching, no retry. Implementations must
// surface platform failures (permission, I/O) verbatim.
type Source interface {
	// ReadSnapshot returns the full buffer content as newline-delimited
	// text. When clear is true, the buffer is cleared atomically as part
	// of the read.
	ReadSnapshot(ctx context.Context, clear bool) (string, error)
}

// ErrUnsupported is returned on platforms without access to a kernel log
// ring buffer.
var ErrUnsupported = errors.New("kernel log buffer is not accessible on this platform")
