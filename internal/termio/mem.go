package termio

import (
	"fmt"
	"sync"
)

// Mem is an in-memory Terminal that records every call in order, so
// tests can assert the exact write/cursor sequence a redraw produced.
type Mem struct {
	Ops         []string
	mu          sync.Mutex
	cols, rows  int
	interactive bool
}

// NewMem creates a recording terminal of a fixed reported size.
func NewMem(cols, rows int, interactive bool) *Mem {
	return &Mem{cols: cols, rows: rows, interactive: interactive}
}

// Snapshot returns a copy of the recorded ops, safe to call while a
// background refresh is still drawing.
func (m *Mem) Snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Ops...)
}

// Writes returns only the text written, concatenated.
func (m *Mem) Writes() string {
	var s string
	for _, op := range m.Ops {
		var text string
		if _, err := fmt.Sscanf(op, "write %q", &text); err == nil {
			s += text
		}
	}
	return s
}

func (m *Mem) record(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, fmt.Sprintf(format, args...))
}

func (m *Mem) Write(s string) { m.record("write %q", s) }

func (m *Mem) Interactive() bool { return m.interactive }

func (m *Mem) Columns() int { return m.cols }

func (m *Mem) Rows() int { return m.rows }

func (m *Mem) CursorToColumn(col int) { m.record("col %d", col) }

func (m *Mem) CursorTo(col, row int) { m.record("pos %d,%d", col, row) }

func (m *Mem) ClearLine() { m.record("clear") }

func (m *Mem) MoveCursor(dx, dy int) { m.record("move %d,%d", dx, dy) }

func (m *Mem) HideCursor() { m.record("hide") }

func (m *Mem) ShowCursor() { m.record("show") }

func (m *Mem) SaveCursor() { m.record("save") }

func (m *Mem) RestoreCursor() { m.record("restore") }
