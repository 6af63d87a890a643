package tail

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// scriptedSource returns a fixed sequence of snapshots, repeating the last
// one once the script is exhausted. It records every call.
type scriptedSource struct {
	snapshots []string
	calls     int
	callTimes []time.Time
	clears    []bool
}

func (s *scriptedSource) ReadSnapshot(ctx context.Context, clear bool) (string, error) {
	i := s.calls
	s.calls++
	s.callTimes = append(s.callTimes, time.Now())
	s.clears = append(s.clears, clear)
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	return s.snapshots[i], nil
}

// failingSource fails a given number of times, then delegates.
type failingSource struct {
	failures int
	err      error
	then     *scriptedSource
}

func (s *failingSource) ReadSnapshot(ctx context.Context, clear bool) (string, error) {
	if s.failures > 0 {
		s.failures--
		return "", s.err
	}
	return s.then.ReadSnapshot(ctx, clear)
}

func pullN(t *testing.T, it *LineIterator, n int) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var lines []string
	for i := 0; i < n; i++ {
		line, err := it.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v after %d lines", err, len(lines))
		}
		lines = append(lines, line)
	}
	return lines
}

func TestLineIterator_GrowingBuffer(t *testing.T) {
	// Two snapshots where the second appends to the first: every appended
	// line arrives exactly once, in order.
	src := &scriptedSource{snapshots: []string{
		"a\nb\nc",
		"a\nb\nc\nd\ne",
	}}

	it, err := NewLineIterator(src, false, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	lines := pullN(t, it, 5)
	want := []string{"a", "b", "c", "d", "e"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d] = %q, want %q", i, lines[i], w)
		}
	}

	seen := map[string]int{}
	for _, l := range lines {
		seen[l]++
	}
	for l, n := range seen {
		if n > 1 {
			t.Errorf("line %q delivered %d times", l, n)
		}
	}
}

func TestLineIterator_SleepsWhenNothingNew(t *testing.T) {
	// Snapshot 2 adds nothing, so the pull must sleep before snapshot 3
	// produces the next line.
	src := &scriptedSource{snapshots: []string{
		"a",
		"a",
		"a\nb",
	}}

	it, err := NewLineIterator(src, false, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	if got := pullN(t, it, 1); got[0] != "a" {
		t.Fatalf("first line = %q, want %q", got[0], "a")
	}

	start := time.Now()
	if got := pullN(t, it, 1); got[0] != "b" {
		t.Fatalf("second line = %q, want %q", got[0], "b")
	}
	if elapsed := time.Since(start); elapsed < sleepMargin {
		t.Errorf("pull returned after %s, expected a sleep of at least %s", elapsed, sleepMargin)
	}
}

func TestLineIterator_RateLimitsPolling(t *testing.T) {
	const interval = 150 * time.Millisecond

	src := &scriptedSource{snapshots: []string{"a"}}
	it, err := NewLineIterator(src, false, interval)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	// First pull delivers "a"; the stream then stays quiet while Next
	// keeps polling under the hood.
	if got := pullN(t, it, 1); got[0] != "a" {
		t.Fatalf("first line = %q, want %q", got[0], "a")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()
	if _, err := it.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next() error = %v, want deadline exceeded", err)
	}

	for i := 1; i < len(src.callTimes); i++ {
		gap := src.callTimes[i].Sub(src.callTimes[i-1])
		if gap < interval {
			t.Errorf("snapshot reads %d and %d only %s apart, want at least %s", i-1, i, gap, interval)
		}
	}
}

func TestLineIterator_SnapshotErrorIsReturnedThenRetried(t *testing.T) {
	readErr := errors.New("klogctl: operation not permitted")
	src := &failingSource{
		failures: 1,
		err:      readErr,
		then:     &scriptedSource{snapshots: []string{"a"}},
	}

	it, err := NewLineIterator(src, false, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	ctx := context.Background()

	if _, err := it.Next(ctx); !errors.Is(err, readErr) {
		t.Fatalf("Next() error = %v, want wrapped %v", err, readErr)
	}

	// The failure does not poison the iterator: the next pull retries.
	line, err := it.Next(ctx)
	if err != nil {
		t.Fatalf("Next() after failure error = %v", err)
	}
	if line != "a" {
		t.Errorf("line = %q, want %q", line, "a")
	}
}

func TestLineIterator_BufferClearedRedelivers(t *testing.T) {
	// After the anchor disappears, the entire next snapshot is treated as
	// new. An empty snapshot in between adds nothing and leaves the
	// anchor alone.
	src := &scriptedSource{snapshots: []string{
		"a\nb",
		"",
		"x",
	}}

	it, err := NewLineIterator(src, false, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	lines := pullN(t, it, 3)
	want := []string{"a", "b", "x"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d] = %q, want %q", i, lines[i], w)
		}
	}
}

func TestLineIterator_PassesClearFlag(t *testing.T) {
	src := &scriptedSource{snapshots: []string{"a"}}

	it, err := NewLineIterator(src, true, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	pullN(t, it, 1)
	if len(src.clears) == 0 || !src.clears[0] {
		t.Error("ReadSnapshot not invoked with clear=true")
	}
}

func TestLineIterator_ContextCancellation(t *testing.T) {
	src := &scriptedSource{snapshots: []string{""}}

	it, err := NewLineIterator(src, false, 0)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if _, err := it.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next() error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancellation took %s, expected prompt return", elapsed)
	}

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	if _, err := it.Next(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() with cancelled context error = %v, want %v", err, context.Canceled)
	}
}

func TestNewLineIterator_IntervalOverflow(t *testing.T) {
	src := &scriptedSource{snapshots: []string{""}}

	if _, err := NewLineIterator(src, false, time.Duration(math.MaxInt64)); !errors.Is(err, ErrIntervalOverflow) {
		t.Errorf("NewLineIterator(MaxInt64) error = %v, want %v", err, ErrIntervalOverflow)
	}

	if _, err := NewLineIterator(src, false, -time.Second); !errors.Is(err, ErrIntervalOverflow) {
		t.Errorf("NewLineIterator(-1s) error = %v, want %v", err, ErrIntervalOverflow)
	}
}

func TestLineIterator_Pending(t *testing.T) {
	src := &scriptedSource{snapshots: []string{"a\nb\nc"}}

	it, err := NewLineIterator(src, false, time.Minute)
	if err != nil {
		t.Fatalf("NewLineIterator() error = %v", err)
	}

	pullN(t, it, 1)
	if got := it.Pending(); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}
}
