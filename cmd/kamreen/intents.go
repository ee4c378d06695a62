package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newActivateCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Start the service interval",
		Long:  `Start the maintenance interval from zero. The reservoir must be full.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				if a.engine.Snapshot().GlobalRunning {
					fmt.Fprintln(out, "Service is already running.")
					return nil
				}
				ok, err := confirm(cmd, config.ActivatePrompt, yes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Activation cancelled.")
					return nil
				}
				if err := a.engine.ActivateGlobal(); err != nil {
					return describeIntentError(err)
				}
				color.New(color.FgGreen, color.Bold).Fprintln(out, "Service activated.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reservoir is full without prompting")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Stop the service and empty every tank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				ok, err := confirm(cmd, "Stop the service and empty every tank?", yes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
				if err := a.engine.ResetAll(); err != nil {
					return describeIntentError(err)
				}
				color.New(color.FgYellow, color.Bold).Fprintln(out, "All timers reset.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Reset without prompting")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle TANK",
		Short:   "Start or pause a tank",
		Example: `  kamreen toggle 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTank(args[0])
			if err != nil {
				return err
			}
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				if err := a.engine.ToggleCounter(id); err != nil {
					return describeIntentError(err)
				}
				c, _ := a.engine.Snapshot().Counter(id)
				fmt.Fprintf(out, "Tank %d %s at %s\n", id, c.Phase(), util.FormatClock(c.ElapsedSeconds))
				return nil
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "clear TANK",
		Short:   "Empty one tank",
		Example: `  kamreen clear 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTank(args[0])
			if err != nil {
				return err
			}
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				if err := a.engine.ClearCounter(id); err != nil {
					return describeIntentError(err)
				}
				fmt.Fprintf(out, "Tank %d cleared\n", id)
				return nil
			})
		},
	}
}

func parseTank(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid tank number: %q", arg)
	}
	return id, nil
}
