package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ccollicutt/kernlog/pkg/config"
	"github.com/ccollicutt/kernlog/pkg/webhook"
)

// hookState buffers lines for a single webhook endpoint.
type hookState struct {
	cfg       config.WebhookConfig
	buf       []string
	lastFlush time.Time
}

// lineShipper fans delivered lines out to the configured webhooks in
// batches. Flush conditions are checked when a line is added; the follow
// loop blocks between lines, so a partial batch can sit slightly longer
// than its flush interval while the log is quiet. Close flushes the rest.
type lineShipper struct {
	client *webhook.Client
	hooks  []*hookState
	host   string
}

func newLineShipper(hooks []config.WebhookConfig) *lineShipper {
	host, _ := os.Hostname()

	s := &lineShipper{
		client: webhook.NewClient(),
		host:   host,
	}
	now := time.Now()
	for _, h := range hooks {
		s.hooks = append(s.hooks, &hookState{cfg: h, lastFlush: now})
	}
	return s
}

// Add buffers a line for every webhook and flushes the ones that are due.
func (s *lineShipper) Add(ctx context.Context, line string) {
	for _, h := range s.hooks {
		h.buf = append(h.buf, line)
		if len(h.buf) >= h.cfg.BatchSize || time.Since(h.lastFlush) >= h.cfg.FlushInterval {
			s.flush(ctx, h)
		}
	}
}

// Close flushes any remaining buffered lines.
func (s *lineShipper) Close(ctx context.Context) {
	for _, h := range s.hooks {
		if len(h.buf) > 0 {
			s.flush(ctx, h)
		}
	}
}

// flush ships one batch. Errors are logged to stderr but don't stop the
// stream.
func (s *lineShipper) flush(ctx context.Context, h *hookState) {
	batch := &webhook.Batch{
		Host:   s.host,
		Lines:  h.buf,
		SentAt: time.Now(),
	}

	resp := s.client.Send(ctx, batch, webhook.SendOptions{
		URL:     h.cfg.URL,
		Token:   h.cfg.Token,
		Timeout: h.cfg.Timeout,
	})

	name := h.cfg.Name
	if name == "" {
		name = h.cfg.URL
	}

	if resp.Success() {
		fmt.Fprintf(os.Stderr, "Webhook %s: sent %d line(s) (%d, %s)\n",
			name, len(h.buf), resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
	}

	h.buf = nil
	h.lastFlush = time.Now()
}
