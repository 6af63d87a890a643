//go:build linux

package kmsg

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// KernelSource reads the kernel ring buffer with klogctl(2).
// The zero value is ready to use.
type KernelSource struct{}

// NewKernelSource creates a Source backed by the running kernel's ring buffer.
func NewKernelSource() *KernelSource {
	return &KernelSource{}
}

// ReadSnapshot reads the entire ring buffer. With clear set, the buffer is
// emptied as part of the same klogctl call (SYSLOG_ACTION_READ_CLEAR), so
// no line can slip in between the read and the clear.
func (s *KernelSource) ReadSnapshot(ctx context.Context, clear bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	size, err := s.BufferSize()
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}

	action := unix.SYSLOG_ACTION_READ_ALL
	if clear {
		action = unix.SYSLOG_ACTION_READ_CLEAR
	}

	buf := make([]byte, size)
	n, err := unix.Klogctl(action, buf)
	if err != nil {
		return "", wrapKlogctl("reading kernel log buffer", err)
	}

	return string(buf[:n]), nil
}

// BufferSize returns the total size of the kernel ring buffer in bytes.
func (s *KernelSource) BufferSize() (int, error) {
	size, err := unix.Klogctl(unix.SYSLOG_ACTION_SIZE_BUFFER, nil)
	if err != nil {
		return 0, wrapKlogctl("querying kernel log buffer size", err)
	}
	return size, nil
}

// Unread returns the number of bytes not yet consumed by a destructive
// read (syslog(2) SYSLOG_ACTION_READ).
func (s *KernelSource) Unread() (int, error) {
	n, err := unix.Klogctl(unix.SYSLOG_ACTION_SIZE_UNREAD, nil)
	if err != nil {
		return 0, wrapKlogctl("querying unread kernel log bytes", err)
	}
	return n, nil
}

// Clear empties the ring buffer without reading it.
func (s *KernelSource) Clear() error {
	if _, err := unix.Klogctl(unix.SYSLOG_ACTION_CLEAR, nil); err != nil {
		return wrapKlogctl("clearing kernel log buffer", err)
	}
	return nil
}

func wrapKlogctl(op string, err error) error {
	if errors.Is(err, unix.EPERM) {
		return fmt.Errorf("%s: %w (unprivileged access may be disabled; check sysctl kernel.dmesg_restrict)", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
