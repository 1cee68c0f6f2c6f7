package hexui

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/jcorbin/hexwrench/internal/hexutil"
)

// ANSI escape sequences used by the terminal surface: alternate screen
// buffer, clear, cursor positioning, erase line, 256-color
// foreground/background, and attribute reset.
const (
	escEnterAltScreen = "\x1b[?1049h"
	escLeaveAltScreen = "\x1b[?1049l"
	escClearScreen    = "\x1b[2J"
	escCursorHome     = "\x1b[H"
	escEraseLine      = "\x1b[2K"
	escReset          = "\x1b[0m"
)

func escCursorPos(row, col int) string { return fmt.Sprintf("\x1b[%d;%dH", row, col) }
func escFG256(n int) string            { return fmt.Sprintf("\x1b[38;5;%dm", n) }
func escBG256(n int) string            { return fmt.Sprintf("\x1b[48;5;%dm", n) }

// Terminal owns raw-mode entry/exit, the alternate screen buffer, and
// resize notification for a single controlling terminal. The core edit
// buffer never sees any of this; Terminal exists entirely at the
// application's outer edge.
type Terminal struct {
	in       *os.File
	outFile  *os.File
	out      *hexutil.ErrWriter
	oldState *term.State

	resized int32 // set by the SIGWINCH goroutine, polled by ResizeRequested
	sigCh   chan os.Signal
}

// Open puts in into raw mode (echo and canonical processing off), switches
// out to the alternate screen buffer, and starts watching for SIGWINCH.
func Open(in, out *os.File) (*Terminal, error) {
	oldState, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("hexui: enter raw mode: %w", err)
	}

	t := &Terminal{in: in, outFile: out, out: &hexutil.ErrWriter{Writer: out}, oldState: oldState}
	fmt.Fprint(t.out, escEnterAltScreen)

	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, unix.SIGWINCH)
	go func() {
		for range t.sigCh {
			atomic.StoreInt32(&t.resized, 1)
		}
	}()

	return t, nil
}

// ResizeRequested reports whether a SIGWINCH has arrived since the last
// call, clearing the flag. The signal handler itself never touches
// anything but this flag; the main loop decides what to do about it.
func (t *Terminal) ResizeRequested() bool {
	return atomic.SwapInt32(&t.resized, 0) == 1
}

// Size returns the current terminal dimensions as (rows, cols).
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(t.outFile.Fd()))
	return rows, cols, err
}

// In returns the raw input stream to read keystrokes from.
func (t *Terminal) In() *os.File { return t.in }

// Out returns the terminal's output stream, wrapped in a sticky-error
// writer: once any frame write fails, every later write through Out is
// skipped rather than retried, and the first error is latched for Err.
func (t *Terminal) Out() io.Writer { return t.out }

// Err reports the first write error, if any, that Out's writer has seen
// across every frame written since Open.
func (t *Terminal) Err() error { return t.out.Err }

// Close restores canonical terminal mode and leaves the alternate screen
// buffer, undoing everything Open did.
func (t *Terminal) Close() error {
	signal.Stop(t.sigCh)
	close(t.sigCh)
	fmt.Fprint(t.out, escLeaveAltScreen)
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("hexui: restore terminal mode: %w", err)
	}
	return nil
}
