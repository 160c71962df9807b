package termbar_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"tangled.org/atscan.net/termbar"
	"tangled.org/atscan.net/termbar/internal/termio"
)

// barLine is the frame a width-20 bar renders at 3/10: too narrow for
// any optional section, so it is the bracketed fill alone.
func barLine() string {
	return "[" + strings.Repeat("█", 5) + strings.Repeat("░", 13) + "]"
}

func startedBar(t *testing.T, m *termio.Mem, opts ...termbar.Option) *termbar.Bar {
	t.Helper()
	opts = append(opts, termbar.WithWidth(20))
	bar := newTestBar(t, 10, m, opts...)
	if err := bar.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := bar.Tick(3); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	m.Ops = nil
	return bar
}

func wr(s string) string {
	return fmt.Sprintf("write %q", s)
}

// TestDrawDiscipline tests the terminal write ordering of redraws
func TestDrawDiscipline(t *testing.T) {
	t.Run("InlineDraw", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m)
		defer bar.Stop()

		bar.Tick(1)
		// Write first, clear after: a shrinking frame leaves no tail.
		want := []string{
			"col 0",
			wr("[" + strings.Repeat("█", 7) + strings.Repeat("░", 11) + "]"),
			"clear",
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("BottomDraw", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithDrawAtBottom(true))
		defer bar.Stop()

		bar.Tick(1)
		want := []string{
			"save",
			"pos 0,23",
			wr("[" + strings.Repeat("█", 7) + strings.Repeat("░", 11) + "]"),
			"clear",
			"restore",
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})
}

// TestLogDiscipline tests the four log orderings
func TestLogDiscipline(t *testing.T) {
	t.Run("Inline", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m)
		defer bar.Stop()

		bar.Logf("hello")
		// Naive order: the message replaces the bar line, then the bar
		// is redrawn below it.
		want := []string{
			"col 0", "clear", wr("hello\n"),
			"col 0", wr(barLine()), "clear",
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("InlineAvoidBlink", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithAvoidBlink(true))
		defer bar.Stop()

		bar.Logf("hello")
		// Reversed order: the new bar appears below before the old bar
		// line is turned into the message.
		want := []string{
			wr("\n"),
			"col 0", wr(barLine()), "clear",
			"move 0,-1", "col 0", "clear", wr("hello"),
			"move 0,1",
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("Bottom", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithDrawAtBottom(true))
		defer bar.Stop()

		bar.Logf("hello")
		want := []string{
			"col 0", "clear", wr("hello\n"),
			"save", "pos 0,23", wr(barLine()), "clear", "restore",
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("BottomAvoidBlink", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithDrawAtBottom(true), termbar.WithAvoidBlink(true))
		defer bar.Stop()

		bar.Logf("hello")
		// Bar first, message after: the bottom row never shows a stale
		// frame while the message scrolls in.
		want := []string{
			"save", "pos 0,23", wr(barLine()), "clear", "restore",
			"col 0", "clear", wr("hello\n"),
		}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})
}

// TestStopDisplay tests how Stop settles the screen
func TestStopDisplay(t *testing.T) {
	t.Run("LeavesBarByDefault", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m)

		if err := bar.Stop(); err != nil {
			t.Fatalf("stop failed: %v", err)
		}
		want := []string{wr("\n"), "show"}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("ClearAfterStop", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithClearAfterStop(true))

		if err := bar.Stop(); err != nil {
			t.Fatalf("stop failed: %v", err)
		}
		want := []string{"col 0", "clear", "show"}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})

	t.Run("BottomClearsItsRow", func(t *testing.T) {
		m := termio.NewMem(40, 24, true)
		bar := startedBar(t, m, termbar.WithDrawAtBottom(true))

		if err := bar.Stop(); err != nil {
			t.Fatalf("stop failed: %v", err)
		}
		want := []string{"save", "pos 0,23", "clear", "restore", "show"}
		if !reflect.DeepEqual(m.Ops, want) {
			t.Errorf("ops = %v, want %v", m.Ops, want)
		}
	})
}
