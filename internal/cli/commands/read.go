package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/kernlog/pkg/kmsg"
	"github.com/ccollicutt/kernlog/pkg/output"
)

// ReadOptions holds command-line options for the read command.
type ReadOptions struct {
	Clear  bool
	Output string
}

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	opts := &ReadOptions{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the current kernel log buffer",
		Long: `Print the full contents of the kernel log ring buffer once and exit.

With --clear, the buffer is emptied atomically as part of the read, so no
line can arrive between reading and clearing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Clear the ring buffer after reading")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runRead(cmd *cobra.Command, opts *ReadOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	writer, err := createWriter(opts.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	src := kmsg.NewKernelSource()
	snapshot, err := src.ReadSnapshot(ctx, opts.Clear)
	if err != nil {
		return fmt.Errorf("reading kernel log: %w", err)
	}

	snapshot = strings.TrimSuffix(snapshot, "\n")
	if snapshot == "" {
		return nil
	}

	now := time.Now()
	for _, line := range strings.Split(snapshot, "\n") {
		if err := writer.Write(output.Entry{Line: line, ReceivedAt: now}); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return nil
}
