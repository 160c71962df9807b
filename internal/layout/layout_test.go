package layout_test

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"tangled.org/atscan.net/termbar/internal/layout"
	"tangled.org/atscan.net/termbar/internal/rate"
)

// TestRender tests the width-constrained line composer
func TestRender(t *testing.T) {
	est := rate.Estimate{Speed: 12.5, ETA: 42}

	t.Run("ExactWidthAtEveryWidth", func(t *testing.T) {
		for width := 1; width <= 130; width++ {
			line := layout.Render(width, 333, 1000, est)
			if got := utf8.RuneCountInString(line); got != width {
				t.Errorf("width %d: rendered %d cells", width, got)
			}
		}
	})

	t.Run("DegenerateBelowMinimum", func(t *testing.T) {
		line := layout.Render(10, 5, 10, est)
		if line != strings.Repeat("█", 10) {
			t.Errorf("expected 10 processed glyphs, got %q", line)
		}
	})

	t.Run("BareBarAtMinimum", func(t *testing.T) {
		line := layout.Render(16, 5, 10, est)
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			t.Fatalf("expected a bracketed bar, got %q", line)
		}
		if strings.Contains(line, "/") || strings.Contains(line, "%") {
			t.Errorf("no optional section fits at width 16, got %q", line)
		}
	})

	t.Run("CountAndETAAtWidth40", func(t *testing.T) {
		line := layout.Render(40, 333, 1000, est)
		if !strings.Contains(line, "333/1000") {
			t.Fatalf("missing progress/total section: %q", line)
		}

		// 40 cols leave 24 after the minimum bar: 7 go to the ETA, 12
		// to the count, the last 5 widen the bar to 21 cells (19 fill).
		if got := strings.Count(line, "█"); got != 6 {
			t.Errorf("processed cells = %d, want floor(19*0.333) = 6", got)
		}
		if got := strings.Count(line, "░"); got != 13 {
			t.Errorf("unprocessed cells = %d, want 13", got)
		}
		if !strings.Contains(line, " | 42s") {
			t.Errorf("count section should promote the ETA separator: %q", line)
		}
	})

	t.Run("AllSectionsAtWidth80", func(t *testing.T) {
		line := layout.Render(80, 333, 1000, est)
		for _, want := range []string{"333/1000", "(33%)", " | eta 42s", "12.50 bps"} {
			if !strings.Contains(line, want) {
				t.Errorf("missing %q in %q", want, line)
			}
		}
	})

	t.Run("SectionOrder", func(t *testing.T) {
		line := layout.Render(80, 333, 1000, est)
		idxBar := strings.Index(line, "]")
		idxCount := strings.Index(line, "333/1000")
		idxPct := strings.Index(line, "(33%)")
		idxETA := strings.Index(line, "eta ")
		idxSpeed := strings.Index(line, "bps")
		if !(idxBar < idxCount && idxCount < idxPct && idxPct < idxETA && idxETA < idxSpeed) {
			t.Errorf("sections out of order in %q", line)
		}
	})

	t.Run("CompletionFrame", func(t *testing.T) {
		line := layout.Render(80, 1000, 1000, rate.Estimate{Speed: 0, ETA: 0})
		if !strings.Contains(line, "(100%)") {
			t.Errorf("missing full percentage: %q", line)
		}
		if !strings.Contains(line, "eta done") {
			t.Errorf("completion should report done: %q", line)
		}
		if strings.Contains(line, "░") {
			t.Errorf("completed bar must have no unprocessed cells: %q", line)
		}
	})

	t.Run("UnboundedETA", func(t *testing.T) {
		line := layout.Render(40, 1, 1000, rate.Estimate{Speed: 0, ETA: math.Inf(1)})
		if !strings.Contains(line, "--") {
			t.Errorf("unbounded ETA should render --: %q", line)
		}
	})

	t.Run("WidthHoldsAtSpeedRoundingBoundary", func(t *testing.T) {
		// A speed just under 1000 rounds to the widest bps string; the
		// speed column must still fit its 10-column grant.
		line := layout.Render(80, 333, 1000, rate.Estimate{Speed: 999.999, ETA: 42})
		if got := utf8.RuneCountInString(line); got != 80 {
			t.Fatalf("rendered %d cells at width 80: %q", got, line)
		}
		if !strings.Contains(line, "999.99 bps") {
			t.Errorf("expected pinned bps value in %q", line)
		}
	})

	t.Run("NoStaleLayoutAcrossWidths", func(t *testing.T) {
		wide := layout.Render(80, 500, 1000, est)
		narrow := layout.Render(20, 500, 1000, est)
		if utf8.RuneCountInString(narrow) != 20 {
			t.Fatalf("narrow render ignored its width: %q", narrow)
		}
		if strings.Contains(narrow, "bps") {
			t.Errorf("speed cannot fit at width 20: %q", narrow)
		}
		if !strings.Contains(wide, "bps") {
			t.Errorf("speed should fit at width 80: %q", wide)
		}
	})
}
