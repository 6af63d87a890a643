package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/kernlog/pkg/kmsg"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show kernel log buffer statistics",
		Long:  "Show the size of the kernel log ring buffer and how many bytes are waiting to be read.",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	src := kmsg.NewKernelSource()

	size, err := src.BufferSize()
	if err != nil {
		return fmt.Errorf("querying buffer size: %w", err)
	}

	unread, err := src.Unread()
	if err != nil {
		return fmt.Errorf("querying unread bytes: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ring buffer size: %s (%d bytes)\n", humanize.IBytes(uint64(size)), size)
	fmt.Fprintf(out, "Unread:           %s (%d bytes)\n", humanize.IBytes(uint64(unread)), unread)

	return nil
}
