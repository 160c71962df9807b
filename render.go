package termbar

import (
	"tangled.org/atscan.net/termbar/internal/layout"
	"tangled.org/atscan.net/termbar/internal/rate"
)

// Terminal write discipline. The cursor position and visible content
// are the one shared mutable resource here, so each operation below is
// a single uninterrupted run of writes: draw and log never interleave
// halfway through each other's escape sequences.

// line composes the frame for the current state.
func (b *Bar) line() string {
	var est rate.Estimate
	if b.lastEstimate != nil {
		est = *b.lastEstimate
	}
	return layout.Render(b.width(), b.progress, b.total, est)
}

// draw renders the bar at its home position. Caller holds the lock.
func (b *Bar) draw() {
	if b.cfg.drawAtBottom {
		b.drawBottom()
		return
	}
	b.drawInline()
}

// drawInline repaints the current line in place. The clear comes after
// the write so a frame shorter than its predecessor leaves no tail.
func (b *Bar) drawInline() {
	t := b.cfg.term
	t.CursorToColumn(0)
	t.Write(b.line())
	t.ClearLine()
}

// drawBottom repaints the bar on the bottom terminal row and puts the
// cursor back where the host's output left it.
func (b *Bar) drawBottom() {
	t := b.cfg.term
	t.SaveCursor()
	t.CursorTo(0, t.Rows()-1)
	t.Write(b.line())
	t.ClearLine()
	t.RestoreCursor()
}

// logDraw emits a host message without corrupting the bar, under one of
// four orderings chosen by the drawAtBottom and avoidBlink flags.
// Caller holds the lock.
func (b *Bar) logDraw(msg string) {
	switch {
	case b.cfg.drawAtBottom && b.cfg.avoidBlink:
		b.logBottomAvoidBlink(msg)
	case b.cfg.drawAtBottom:
		b.logBottom(msg)
	case b.cfg.avoidBlink:
		b.logInlineAvoidBlink(msg)
	default:
		b.logInline(msg)
	}
}

// logInline overwrites the bar line with the message and redraws the
// bar on the next line. Between the clear and the redraw the terminal
// briefly shows no bar at all; that window is what avoidBlink shrinks.
func (b *Bar) logInline(msg string) {
	t := b.cfg.term
	t.CursorToColumn(0)
	t.ClearLine()
	t.Write(msg + "\n")
	b.drawInline()
}

// logInlineAvoidBlink reverses the naive order: the new bar is rendered
// one line below first, then the old bar line is turned into the
// message, then the cursor is repositioned past the bar.
func (b *Bar) logInlineAvoidBlink(msg string) {
	t := b.cfg.term
	t.Write("\n")
	b.drawInline()
	t.MoveCursor(0, -1)
	t.CursorToColumn(0)
	t.ClearLine()
	t.Write(msg)
	t.MoveCursor(0, 1)
}

// logBottom prints the message at the host cursor, then repaints the
// bottom-anchored bar in case the scroll disturbed it.
func (b *Bar) logBottom(msg string) {
	t := b.cfg.term
	t.CursorToColumn(0)
	t.ClearLine()
	t.Write(msg + "\n")
	b.drawBottom()
}

// logBottomAvoidBlink repaints the bar first so the bottom row never
// shows a stale frame while the message scrolls in.
func (b *Bar) logBottomAvoidBlink(msg string) {
	t := b.cfg.term
	b.drawBottom()
	t.CursorToColumn(0)
	t.ClearLine()
	t.Write(msg + "\n")
}

// finishDisplay settles the screen on Stop: either the bar line is
// erased or the cursor is advanced past it so later output starts on a
// fresh line. Caller holds the lock.
func (b *Bar) finishDisplay() {
	t := b.cfg.term
	if b.cfg.drawAtBottom {
		// clearAfterStop is forced on for bottom-anchored bars.
		t.SaveCursor()
		t.CursorTo(0, t.Rows()-1)
		t.ClearLine()
		t.RestoreCursor()
		return
	}
	if b.cfg.clearAfterStop {
		t.CursorToColumn(0)
		t.ClearLine()
		return
	}
	t.Write("\n")
}
