package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	monitordto "focustrack/internal/modules/monitor/dto"
	timerdto "focustrack/internal/modules/timer/dto"
	apperrors "focustrack/internal/platform/errors"
)

const saveWait = 3 * time.Second

func newRunCmd(flags *globalFlags) *cobra.Command {
	var category string
	var minutes int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one session in the terminal without the UI",
		Long: "Run one focus session headless. Ctrl-C stops and saves the session.\n" +
			"Enter or p pauses and resumes, q stops early.\n" +
			"SIGUSR1 reports that you switched away, SIGUSR2 that you are back.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			events, unsubscribe := app.TimerCLI.Subscribe(16)
			defer unsubscribe()
			notices, stopNotices := app.Notices.Subscribe(8)
			defer stopNotices()

			go func() {
				if err := app.SignalSource().Run(ctx); err != nil {
					app.Logger.Info("focus signals unavailable", "error", err)
				}
			}()
			if src := app.IdleSource(); src != nil {
				go func() {
					if err := src.Run(ctx); err != nil {
						app.Logger.Info("idle detection stopped", "error", err)
					}
				}()
			}

			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupts)

			if err := app.TimerCLI.Begin(category, minutes); err != nil {
				return err
			}

			loop := runLoop{
				out:        cmd.OutOrStdout(),
				timer:      app.TimerCLI,
				events:     events,
				notices:    notices,
				interrupts: interrupts,
				input:      readLines(cmd.InOrStdin()),
			}
			return loop.run(ctx)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "session category (default: the current one)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "session length in minutes, 1-60 (default: from settings)")
	return cmd
}

// sessionControl is the part of the timer the run loop drives.
type sessionControl interface {
	Snapshot() timerdto.SnapshotOutput
	Resume() error
	Pause() error
	Stop() (*timerdto.SummaryOutput, error)
	Reset() error
}

type runLoop struct {
	out        io.Writer
	timer      sessionControl
	events     <-chan timerdto.EventOutput
	notices    <-chan monitordto.NoticeOutput
	interrupts <-chan os.Signal
	input      <-chan string
}

func (r runLoop) run(ctx context.Context) error {
	line := newStatusLine(r.out)
	line.draw(r.timer.Snapshot())

	input := r.input
	for {
		select {
		case <-ctx.Done():
			line.end()
			return ctx.Err()

		case <-r.interrupts:
			line.end()
			return r.stop()

		case text, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			// The terminal echoed the newline, so the status line starts fresh.
			line.drawn = false
			switch strings.ToLower(strings.TrimSpace(text)) {
			case "", "p":
				// Errors come back as advisory events and are printed there.
				_ = r.toggle()
			case "q":
				return r.stop()
			}
			line.draw(r.timer.Snapshot())

		case n := <-r.notices:
			line.end()
			_, _ = fmt.Fprintln(r.out, n.Message)
			line.draw(r.timer.Snapshot())

		case ev, ok := <-r.events:
			if !ok {
				line.end()
				return nil
			}
			switch ev.Kind {
			case timerdto.EventChanged:
				line.draw(ev.Snapshot)
			case timerdto.EventAdvisory:
				line.end()
				_, _ = fmt.Fprintln(r.out, ev.Err)
				line.draw(ev.Snapshot)
			case timerdto.EventFinished:
				line.end()
				if ev.Summary != nil {
					printSummary(r.out, *ev.Summary)
				}
				return waitForSave(r.out, r.events)
			}
		}
	}
}

// toggle pauses a running session and resumes any other.
func (r runLoop) toggle() error {
	if r.timer.Snapshot().Running() {
		return r.timer.Pause()
	}
	return r.timer.Resume()
}

// stop ends the session early. A rejected or too-short stop is reported here
// and the loop exits before the matching advisory event is read.
func (r runLoop) stop() error {
	summary, err := r.timer.Stop()
	switch {
	case errors.Is(err, apperrors.ErrStopRejected):
		_ = r.timer.Reset()
		_, _ = fmt.Fprintln(r.out, "stopped before any time elapsed; nothing saved")
		return nil
	case errors.Is(err, apperrors.ErrSessionTooShort):
		_, _ = fmt.Fprintln(r.out, "sessions shorter than a minute are not saved")
		return nil
	case err != nil:
		return err
	}
	printSummary(r.out, *summary)
	return waitForSave(r.out, r.events)
}

// readLines delivers each line of in until EOF, then closes the channel.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// waitForSave reports the outcome of the save started by a finished session.
func waitForSave(out io.Writer, events <-chan timerdto.EventOutput) error {
	deadline := time.After(saveWait)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case timerdto.EventSaved:
				_, _ = fmt.Fprintf(out, "saved session %s\n", ev.RecordID)
				return nil
			case timerdto.EventPersistFailed:
				return fmt.Errorf("session was not saved: %w", ev.Err)
			}
		case <-deadline:
			return nil
		}
	}
}

func printSummary(out io.Writer, s timerdto.SummaryOutput) {
	head := "Session stopped"
	if s.Completed {
		head = "Session complete"
	}
	_, _ = fmt.Fprintf(out, "%s: %s, %d min, %d distractions\n", head, s.Category, s.Minutes, s.Distractions)
	if s.PerfectFocus {
		_, _ = fmt.Fprintln(out, "★ perfect focus")
	}
}
