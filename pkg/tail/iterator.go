// Package tail streams new kernel log lines as they appear.
//
// The kernel offers no subscribe primitive for its ring buffer, only
// point-in-time snapshot reads. LineIterator turns those snapshots into a
// continuous stream: it polls the buffer no more often than a configured
// interval, computes the lines that are new since the previous snapshot,
// and hands them out one at a time.
package tail

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ccollicutt/kernlog/pkg/kmsg"
)

// SuggestedPollInterval is a reasonable spacing between kernel reads for
// callers with no stronger requirement.
const SuggestedPollInterval = 10 * time.Second

// sleepMargin is added to the poll interval to produce the sleep used when
// no lines are ready, so the elapsed-time check is guaranteed to pass on
// the next cycle.
const sleepMargin = 200 * time.Millisecond

// ErrIntervalOverflow is returned by NewLineIterator when the poll interval
// cannot be combined with the sleep margin.
var ErrIntervalOverflow = errors.New("poll interval overflows the duration representation")

// LineIterator delivers each kernel log line exactly once per session, as
// long as the previously delivered tail line remains findable in each
// subsequent snapshot.
//
// A LineIterator is owned by a single consumer. Concurrent calls to Next
// produce undefined ordering and can lose lines.
type LineIterator struct {
	src   kmsg.Source
	clear bool

	// pending holds extracted lines not yet handed to the caller, in
	// buffer order.
	pending []string

	pollInterval  time.Duration
	sleepInterval time.Duration
	lastPoll      time.Time

	// lastLine is the anchor: the final line appended to pending by the
	// most recent snapshot that produced new lines.
	lastLine   string
	haveAnchor bool
}

// NewLineIterator creates an iterator over new kernel log lines read from
// src. With clear set, every snapshot read also empties the buffer.
//
// pollInterval is the minimum spacing between snapshot reads; use
// SuggestedPollInterval absent a stronger requirement. Construction fails
// with ErrIntervalOverflow when the interval is negative or cannot be
// combined with the internal sleep margin.
func NewLineIterator(src kmsg.Source, clear bool, pollInterval time.Duration) (*LineIterator, error) {
	if pollInterval < 0 {
		return nil, fmt.Errorf("%w: negative interval %s", ErrIntervalOverflow, pollInterval)
	}
	if pollInterval > math.MaxInt64-sleepMargin {
		return nil, fmt.Errorf("%w: %s + %s", ErrIntervalOverflow, pollInterval, sleepMargin)
	}
	sleepInterval := pollInterval + sleepMargin

	return &LineIterator{
		src:           src,
		clear:         clear,
		pending:       make([]string, 0, 1000),
		pollInterval:  pollInterval,
		sleepInterval: sleepInterval,
		// Start with the last poll in the past so the first pull reads
		// immediately.
		lastPoll: time.Now().Add(-sleepInterval),
	}, nil
}

// Next blocks until a new kernel log line is available and returns it.
//
// Next drives the polling loop on the calling goroutine: at most one
// snapshot read per poll interval, and a sleep slightly longer than the
// interval whenever nothing new has arrived. It is intended to be blocked
// on continuously so no messages are missed.
//
// A snapshot read failure is returned as an error but does not end the
// stream; a later call retries once the next poll is due. Cancelling ctx
// returns ctx.Err(), which is the clean-shutdown path.
func (it *LineIterator) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		// Poll at most once per interval, no matter how often Next is
		// called. This keeps pressure off the kernel interface.
		if time.Since(it.lastPoll) >= it.pollInterval {
			if err := it.poll(ctx); err != nil {
				return "", err
			}
		}

		if len(it.pending) == 0 {
			if err := sleep(ctx, it.sleepInterval); err != nil {
				return "", err
			}
			continue
		}

		line := it.pending[0]
		it.pending = it.pending[1:]
		return line, nil
	}
}

// Pending reports how many extracted lines are waiting to be pulled.
func (it *LineIterator) Pending() int {
	return len(it.pending)
}

// poll takes one snapshot and appends the lines that are new since the
// previous snapshot to the pending queue. The poll stamp is refreshed on
// failure too, so errors stay rate-limited.
func (it *LineIterator) poll(ctx context.Context) error {
	it.lastPoll = time.Now()

	snapshot, err := it.src.ReadSnapshot(ctx, it.clear)
	if err != nil {
		return fmt.Errorf("reading kernel log snapshot: %w", err)
	}

	newLines := delta(snapshot, it.lastLine, it.haveAnchor)
	if len(newLines) == 0 {
		return nil
	}

	it.pending = append(it.pending, newLines...)
	it.lastLine = newLines[len(newLines)-1]
	it.haveAnchor = true
	return nil
}

// sleep blocks for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
