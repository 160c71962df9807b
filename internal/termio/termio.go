// Package termio is the terminal capability surface the bar draws
// through: plain text writes plus the handful of cursor and line
// primitives the redraw protocols need. All escape-sequence encoding
// lives here; callers never see a raw byte of ANSI.
package termio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal is consumed by the renderer. Columns and rows are queried
// per frame, never cached, so a resized terminal is picked up on the
// next redraw. Coordinates are zero-based, top-left origin.
type Terminal interface {
	Write(s string)
	Interactive() bool
	Columns() int
	Rows() int
	CursorToColumn(col int)
	CursorTo(col, row int)
	ClearLine()
	MoveCursor(dx, dy int)
	HideCursor()
	ShowCursor()
	SaveCursor()
	RestoreCursor()
}

const (
	escHide    = "\033[?25l"
	escShow    = "\033[?25h"
	escSave    = "\033[s"
	escRestore = "\033[u"
	escClear   = "\033[K"
)

// Fallback size when the terminal cannot report one.
const (
	defaultColumns = 80
	defaultRows    = 24
)

// ANSI drives a real terminal through ANSI escape sequences. Writes are
// fire-and-forget; write errors are a collaborator concern and are not
// surfaced here.
type ANSI struct {
	out         io.Writer
	fd          int
	interactive bool
}

// Open wraps a file, detecting interactivity from its descriptor.
func Open(f *os.File) *ANSI {
	fd := int(f.Fd())
	return &ANSI{out: f, fd: fd, interactive: term.IsTerminal(fd)}
}

// NewWriter wraps a plain writer as a non-interactive terminal. Escape
// primitives still emit if called, but Interactive reports false so the
// renderer will not call them.
func NewWriter(w io.Writer) *ANSI {
	return &ANSI{out: w, fd: -1, interactive: false}
}

func (a *ANSI) Write(s string) {
	io.WriteString(a.out, s)
}

func (a *ANSI) Interactive() bool {
	return a.interactive
}

func (a *ANSI) Columns() int {
	cols, _ := a.size()
	return cols
}

func (a *ANSI) Rows() int {
	_, rows := a.size()
	return rows
}

func (a *ANSI) size() (cols, rows int) {
	if a.fd >= 0 {
		if c, r, err := term.GetSize(a.fd); err == nil && c > 0 && r > 0 {
			return c, r
		}
	}
	return defaultColumns, defaultRows
}

func (a *ANSI) CursorToColumn(col int) {
	fmt.Fprintf(a.out, "\033[%dG", col+1)
}

func (a *ANSI) CursorTo(col, row int) {
	fmt.Fprintf(a.out, "\033[%d;%dH", row+1, col+1)
}

func (a *ANSI) ClearLine() {
	io.WriteString(a.out, escClear)
}

func (a *ANSI) MoveCursor(dx, dy int) {
	switch {
	case dx > 0:
		fmt.Fprintf(a.out, "\033[%dC", dx)
	case dx < 0:
		fmt.Fprintf(a.out, "\033[%dD", -dx)
	}
	switch {
	case dy > 0:
		fmt.Fprintf(a.out, "\033[%dB", dy)
	case dy < 0:
		fmt.Fprintf(a.out, "\033[%dA", -dy)
	}
}

func (a *ANSI) HideCursor() {
	io.WriteString(a.out, escHide)
}

func (a *ANSI) ShowCursor() {
	io.WriteString(a.out, escShow)
}

func (a *ANSI) SaveCursor() {
	io.WriteString(a.out, escSave)
}

func (a *ANSI) RestoreCursor() {
	io.WriteString(a.out, escRestore)
}
