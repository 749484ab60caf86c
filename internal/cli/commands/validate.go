package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pdbdiff/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a pdbdiff configuration file without querying the registry.

Checks:
  - YAML syntax
  - Registry URL and timeout
  - Output format and color mode
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Registry:   %s\n", cfg.Registry.URL)
	if cfg.Registry.Timeout > 0 {
		fmt.Fprintf(w, "  Timeout:    %s\n", cfg.Registry.Timeout)
	} else {
		fmt.Fprintf(w, "  Timeout:    none\n")
	}
	fmt.Fprintf(w, "  User agent: %s\n", cfg.Registry.UserAgent)
	fmt.Fprintf(w, "  Output:     %s\n", cfg.Output)
	fmt.Fprintf(w, "  Color:      %s\n", cfg.Color)
	fmt.Fprintf(w, "  Webhooks:   %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		fmt.Fprintf(w, "    %d. [%s] %s\n", i+1, wh.Trigger, wh.DisplayName())
	}

	return nil
}
