package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type statusView struct {
	Phase             string        `json:"phase" yaml:"phase"`
	GlobalElapsed     int           `json:"globalElapsedSeconds" yaml:"globalElapsedSeconds"`
	AlarmInterval     int           `json:"alarmIntervalSeconds" yaml:"alarmIntervalSeconds"`
	RemainingSeconds  int           `json:"remainingSeconds" yaml:"remainingSeconds"`
	FilterStartEvents int           `json:"filterStartEvents" yaml:"filterStartEvents"`
	FilterThreshold   int           `json:"filterThreshold" yaml:"filterThreshold"`
	Tanks             []counterView `json:"tanks" yaml:"tanks"`
}

type counterView struct {
	ID             int        `json:"id" yaml:"id"`
	Phase          string     `json:"phase" yaml:"phase"`
	ElapsedSeconds int        `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	FilterClicks   int        `json:"filterClicks" yaml:"filterClicks"`
	LastPausedAt   *time.Time `json:"lastPausedAt,omitempty" yaml:"lastPausedAt,omitempty"`
}

func newStatusView(snap models.Snapshot) statusView {
	v := statusView{
		Phase:             string(snap.Phase),
		GlobalElapsed:     snap.GlobalElapsed,
		AlarmInterval:     snap.AlarmInterval,
		RemainingSeconds:  int(snap.Remaining() / time.Second),
		FilterStartEvents: snap.FilterStartEvents,
		FilterThreshold:   snap.FilterThreshold,
		Tanks:             make([]counterView, 0, len(snap.Counters)),
	}
	for _, c := range snap.Counters {
		var paused *time.Time
		if c.LastPausedAt != nil {
			ts := c.LastPausedAt.UTC()
			paused = &ts
		}
		v.Tanks = append(v.Tanks, counterView{
			ID:             c.ID,
			Phase:          string(c.Phase()),
			ElapsedSeconds: c.ElapsedSeconds,
			FilterClicks:   c.FilterClicks,
			LastPausedAt:   paused,
		})
	}
	return v
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved service and tank state",
		Example: `  kamreen status
  kamreen status --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				return writeStatus(out, a.engine.Snapshot(), format)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func writeStatus(w io.Writer, snap models.Snapshot, format string) error {
	view := newStatusView(snap)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	}
	printStatusText(w, snap)
	return nil
}

func printStatusText(w io.Writer, snap models.Snapshot) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	cyan.Fprint(w, "Service:  ")
	switch snap.Phase {
	case models.GlobalAlarmFiring:
		red.Fprintln(w, "ALARM")
	case models.GlobalRunning:
		green.Fprint(w, "RUNNING")
		fmt.Fprintf(w, "  %s elapsed, next check in %s\n",
			util.FormatClock(snap.GlobalElapsed), util.FormatDuration(snap.Remaining()))
	default:
		dim.Fprintln(w, "STOPPED")
	}
	cyan.Fprint(w, "Filter:   ")
	fmt.Fprintf(w, "%d/%d qualifying starts\n\n", snap.FilterStartEvents, snap.FilterThreshold)

	fmt.Fprintf(w, "%-6s %-8s %-9s %-7s %s\n", "TANK", "STATE", "ELAPSED", "STARTS", "LAST PAUSE")
	for _, c := range snap.Counters {
		state := fmt.Sprintf("%-8s", c.Phase())
		switch c.Phase() {
		case models.CounterRunning:
			state = green.Sprint(state)
		case models.CounterPaused:
			state = yellow.Sprint(state)
		default:
			state = dim.Sprint(state)
		}
		paused := "-"
		if c.LastPausedAt != nil {
			paused = c.LastPausedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-6d %s %-9s %-7d %s\n", c.ID, state, util.FormatClock(c.ElapsedSeconds), c.FilterClicks, paused)
	}
}
