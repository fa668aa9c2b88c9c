package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	timerdto "focustrack/internal/modules/timer/dto"
)

// statusLine redraws the countdown in place on a terminal. On anything else
// it prints a line only when the state changes.
type statusLine struct {
	out   io.Writer
	tty   bool
	drawn bool
	last  string
}

func newStatusLine(out io.Writer) *statusLine {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &statusLine{out: out, tty: tty}
}

func (l *statusLine) draw(s timerdto.SnapshotOutput) {
	state := s.State
	if s.Distracted() {
		state = "paused (switched away)"
	}
	if !l.tty {
		if state != l.last {
			_, _ = fmt.Fprintf(l.out, "%s: %s, %d min\n", state, s.Category, s.ConfiguredMinutes)
			l.last = state
		}
		return
	}
	_, _ = fmt.Fprintf(l.out, "\r\x1b[2K%s  %02d:%02d  %s  %d distractions",
		s.Category, s.RemainingMinutes, s.RemainingSeconds, state, s.Distractions)
	l.drawn = true
}

// end moves past the redrawn line so ordinary output starts on a fresh one.
func (l *statusLine) end() {
	if l.tty && l.drawn {
		_, _ = fmt.Fprintln(l.out)
		l.drawn = false
	}
}
