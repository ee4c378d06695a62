package main

import (
	"fmt"
	"os"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/tui"
	"github.com/spf13/cobra"
)

// rootOptions carries the global flags to every subcommand.
type rootOptions struct {
	configPath string
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "kamreen",
		Short: "Kamreen - service alarm and tank stopwatches",
		Long: `Kamreen tracks a periodic maintenance alarm and five tank stopwatches.
Run it without a subcommand for the interactive dashboard, or use the
subcommands to inspect and change the saved state from scripts.`,
		Version:       tui.VersionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default <data dir>/config.yaml)")

	cmd.AddCommand(
		newStatusCmd(opts),
		newActivateCmd(opts),
		newResetCmd(opts),
		newToggleCmd(opts),
		newClearCmd(opts),
		newReportCmd(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
