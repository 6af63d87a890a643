package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/kernlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a KernLog configuration file without touching the kernel log.

Checks:
  - YAML syntax
  - Output format
  - Filter regex validity
  - Webhook URL and timing requirements`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Poll interval: %s\n", cfg.PollInterval)
	fmt.Fprintf(out, "  Clear on read: %t\n", cfg.Clear)
	fmt.Fprintf(out, "  Output:        %s\n", cfg.Output)
	fmt.Fprintf(out, "  Filters:       %d include, %d exclude\n",
		len(cfg.Filters.Include), len(cfg.Filters.Exclude))
	fmt.Fprintf(out, "  Webhooks:      %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(out, "    %d. %s (batch %d, flush %s)\n", i+1, name, wh.BatchSize, wh.FlushInterval)
	}

	return nil
}
