//go:build !linux

package kmsg

import "context"

// KernelSource is a placeholder on platforms without klogctl(2).
// Every operation returns ErrUnsupported.
type KernelSource struct{}

// NewKernelSource creates a Source backed by the running kernel's ring buffer.
func NewKernelSource() *KernelSource {
	return &KernelSource{}
}

// ReadSnapshot always fails with ErrUnsupported.
func (s *KernelSource) ReadSnapshot(ctx context.Context, clear bool) (string, error) {
	return "", ErrUnsupported
}

// BufferSize always fails with ErrUnsupported.
func (s *KernelSource) BufferSize() (int, error) {
	return 0, ErrUnsupported
}

// Unread always fails with ErrUnsupported.
func (s *KernelSource) Unread() (int, error) {
	return 0, ErrUnsupported
}

// Clear always fails with ErrUnsupported.
func (s *KernelSource) Clear() error {
	return ErrUnsupported
}
