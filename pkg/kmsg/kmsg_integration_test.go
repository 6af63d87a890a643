//go:build linux

package kmsg

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

// These tests hit the real kernel interface and are skipped where
// kernel.dmesg_restrict (or a container seccomp profile) denies access.

func TestIntegration_BufferSize(t *testing.T) {
	src := NewKernelSource()

	size, err := src.BufferSize()
	if err != nil {
		if errors.Is(err, unix.EPERM) {
			t.Skip("kernel log access restricted in this environment")
		}
		t.Fatalf("BufferSize() error = %v", err)
	}

	if size <= 0 {
		t.Errorf("BufferSize() = %d, want > 0", size)
	}
}

func TestIntegration_ReadSnapshot(t *testing.T) {
	src := NewKernelSource()

	snapshot, err := src.ReadSnapshot(context.Background(), false)
	if err != nil {
		if errors.Is(err, unix.EPERM) {
			t.Skip("kernel log access restricted in this environment")
		}
		t.Fatalf("ReadSnapshot() error = %v", err)
	}

	// Repeat reads without clear must be non-destructive: the second
	// snapshot starts with the first (modulo new lines and wrap).
	again, err := src.ReadSnapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("second ReadSnapshot() error = %v", err)
	}
	if len(again) < len(snapshot)/2 {
		t.Errorf("second snapshot suspiciously small: %d bytes vs %d", len(again), len(snapshot))
	}
}
