package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akyairhashvil/kamreen/internal/logging"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/akyairhashvil/kamreen/internal/report"
	"github.com/akyairhashvil/kamreen/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("the dashboard needs an interactive terminal; try 'kamreen status'")

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The dashboard owns stdout, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(cfg.Logging, logFile)
	logger.Info().
		Str("version", tui.VersionLabel()).
		Str("storage", cfg.Storage.Type).
		Msg("starting kamreen")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, appOptions{Logger: logger, Bell: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := a.metrics.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	model := tui.NewModel(a.engine, tui.Options{
		Report: func(snap models.Snapshot, at time.Time) (string, error) {
			path := report.DefaultPath(cfg.ReportsDir, at)
			return path, report.WriteFile(path, snap, at)
		},
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	forward, stopForward := tui.ForwardSnapshots(p)
	defer stopForward()
	a.engine.Subscribe(forward)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	logger.Info().Msg("kamreen stopped")
	return nil
}
