package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akyairhashvil/kamreen/internal/engine"
	"github.com/akyairhashvil/kamreen/internal/logging"
	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errConfirmationRequired = errors.New("confirmation required: pass --yes when not running in a terminal")

// runHeadless wires an engine for a one-shot command. Alerts raised by the
// command are printed and acknowledged before the state is flushed.
func runHeadless(cmd *cobra.Command, opts *rootOptions, fn func(a *app, out io.Writer) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// Quiet logger for one-shot commands
	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}

	a, err := newApp(cmd.Context(), cfg, appOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	a.dispatcher.OnPrompt(func(p models.Prompt) {
		printPrompt(out, p)
	})

	runErr := fn(a, out)
	for _, kind := range a.engine.Snapshot().Pending {
		a.engine.Acknowledge(kind)
	}
	return runErr
}

func printPrompt(w io.Writer, p models.Prompt) {
	alarm := color.New(color.FgRed, color.Bold)
	fmt.Fprintln(w)
	alarm.Fprintf(w, "!! %s\n", p.Title)
	fmt.Fprintf(w, "   %s\n", p.Message)
}

// confirm asks a yes/no question. Without a terminal on stdin the caller
// must have passed --yes.
func confirm(cmd *cobra.Command, question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return false, errConfirmationRequired
	}
	return askYesNo(in, cmd.OutOrStdout(), question)
}

func askYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// describeIntentError turns engine rejections into user-facing messages.
func describeIntentError(err error) error {
	var intentErr *engine.IntentError
	if !errors.As(err, &intentErr) {
		return err
	}
	switch {
	case errors.Is(err, engine.ErrServiceStopped):
		return fmt.Errorf("tank %d: service is stopped; run 'kamreen activate' first", intentErr.CounterID)
	case errors.Is(err, engine.ErrUnknownCounter):
		return fmt.Errorf("unknown tank %d", intentErr.CounterID)
	}
	return err
}
