package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/kernlog/pkg/kmsg"
)

// NewClearCommand creates the clear command.
func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the kernel log ring buffer",
		Long:  "Empty the kernel log ring buffer without reading it. Usually requires privileges.",
		Args:  cobra.NoArgs,
		RunE:  runClear,
	}
}

func runClear(cmd *cobra.Command, args []string) error {
	src := kmsg.NewKernelSource()
	if err := src.Clear(); err != nil {
		return fmt.Errorf("clearing kernel log: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Kernel log buffer cleared")
	return nil
}
