package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/kernlog/pkg/config"
	"github.com/ccollicutt/kernlog/pkg/kmsg"
	"github.com/ccollicutt/kernlog/pkg/match"
	"github.com/ccollicutt/kernlog/pkg/output"
	"github.com/ccollicutt/kernlog/pkg/tail"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// FollowOptions holds command-line options for the follow command.
type FollowOptions struct {
	Config   string
	Interval time.Duration
	Clear    bool
	Output   string
	Include  []string
	Exclude  []string

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewFollowCommand creates the follow command.
func NewFollowCommand() *cobra.Command {
	opts := &FollowOptions{}

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Stream new kernel log lines as they appear",
		Long: `Follow the kernel log ring buffer and print each new line exactly once.

The buffer is polled at most once per interval; between polls the command
sleeps on the calling thread. Lines already printed are never repeated
within a session, as long as the previously printed tail line is still
present in the buffer. If the buffer wraps or is cleared past that line,
the whole buffer is treated as new.

Exit codes:
  0 - Interrupted by the user (clean shutdown)
  1 - Streaming failed (e.g. the kernel log became unreadable)
  2 - Configuration or usage error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to YAML config file")
	cmd.Flags().DurationVarP(&opts.Interval, "interval", "i", 0, "Minimum spacing between kernel reads (default 10s)")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Clear the ring buffer after each read")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().StringSliceVar(&opts.Include, "include", nil, "Only print lines matching this regex (can be repeated)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Drop lines matching this regex (can be repeated)")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Ship batches of lines to this endpoint")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runFollow(cmd *cobra.Command, opts *FollowOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	writer, err := createWriter(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	filter := match.NewFilter(cfg.Filters.CompiledInclude(), cfg.Filters.CompiledExclude())

	src := kmsg.NewKernelSource()
	it, err := tail.NewLineIterator(src, cfg.Clear, cfg.PollInterval)
	if err != nil {
		return fmt.Errorf("creating line iterator: %w", err)
	}

	var shipper *lineShipper
	if len(cfg.Webhooks) > 0 {
		shipper = newLineShipper(cfg.Webhooks)
		// Flush whatever is buffered on the way out, even after Ctrl-C.
		defer shipper.Close(context.WithoutCancel(ctx))
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "Following kernel log (interval %s, output %s). Ctrl-C to stop.\n",
			cfg.PollInterval, writer.Name())
	}

	for {
		line, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil // clean shutdown
			}
			// Rare, environment-level failure (permission, I/O). Report
			// and stop rather than retry forever.
			fmt.Fprintf(os.Stderr, "Error polling kernel log: %v\n", err)
			ExitCode = 1
			return nil
		}

		if !filter.Match(line) {
			continue
		}

		if err := writer.Write(output.Entry{Line: line, ReceivedAt: time.Now()}); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if shipper != nil {
			shipper.Add(ctx, line)
		}
	}
}

// resolveConfig loads the optional config file and layers flag overrides on
// top, then validates the result.
func resolveConfig(cmd *cobra.Command, opts *FollowOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("interval") {
		cfg.PollInterval = opts.Interval
	}
	if cmd.Flags().Changed("clear") {
		cfg.Clear = opts.Clear
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	cfg.Filters.Include = append(cfg.Filters.Include, opts.Include...)
	cfg.Filters.Exclude = append(cfg.Filters.Exclude, opts.Exclude...)

	if opts.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			Name:  "cli",
			URL:   opts.WebhookURL,
			Token: opts.WebhookToken,
		})
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func createWriter(format string, w io.Writer) (output.Writer, error) {
	switch format {
	case "text":
		return output.NewTextWriter(w), nil
	case "json":
		return output.NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}
