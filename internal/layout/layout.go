// Package layout composes the single display line of a progress bar
// under a hard character-width budget, and provides the fixed-width
// humanizers the line is built from.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"tangled.org/atscan.net/termbar/internal/rate"
)

const (
	// MinWidth is the narrowest width that still gets a structured bar.
	// Below it the bar degenerates to a solid run of processed glyphs.
	MinWidth = 16

	processedGlyph   = "█"
	unprocessedGlyph = "░"
)

// Section widths. Each optional section is charged for its separator as
// well as its text, so granting a section never overruns the budget.
const (
	etaWidth     = 7  // " " + duration padded to 6
	speedWidth   = 13 // " | " + speed padded to 10
	percentWidth = 6  // "(NN%)" padded to 6
	etaLabel     = 4  // widens the ETA column to " | eta <dur>" padded to 10
)

// Render produces the display line for one frame. The result never
// exceeds width characters (as terminal cells), and something is always
// returned, even at pathological widths. Layout is recomputed from
// scratch each call: the terminal may be a different size next frame.
func Render(width, progress, total int, est rate.Estimate) string {
	if width < MinWidth {
		return strings.Repeat(processedGlyph, width)
	}

	// Reserve the minimum bar, then grant optional sections in priority
	// order from what is left, stopping at the first one that no longer
	// fits. Whatever remains ungranted widens the bar fill.
	remaining := width - MinWidth
	countWidth := 2*digits(total) + 4

	var showETA, showCount, showSpeed, showPercent, labelETA bool
	for {
		if remaining < etaWidth {
			break
		}
		showETA, remaining = true, remaining-etaWidth
		if remaining < countWidth {
			break
		}
		showCount, remaining = true, remaining-countWidth
		if remaining < speedWidth {
			break
		}
		showSpeed, remaining = true, remaining-speedWidth
		if remaining < percentWidth {
			break
		}
		showPercent, remaining = true, remaining-percentWidth
		if remaining < etaLabel {
			break
		}
		labelETA, remaining = true, remaining-etaLabel
		break
	}

	var b strings.Builder
	b.WriteString(bar(MinWidth+remaining, progress, total))
	if showCount {
		b.WriteString(fmt.Sprintf("%*s", 2*digits(total)+2, strconv.Itoa(progress)+"/"+strconv.Itoa(total)))
	}
	if showPercent {
		pct := int(ratio(progress, total) * 100)
		b.WriteString(fmt.Sprintf("%-6s", "("+strconv.Itoa(pct)+"%)"))
	}
	if showETA {
		b.WriteString(etaColumn(est.ETA, showCount, labelETA))
	}
	if showSpeed {
		b.WriteString(fmt.Sprintf(" | %-10s", Speed(est.Speed)))
	}
	return b.String()
}

// etaColumn renders the ETA in one of its three shapes. The bare shape
// spends exactly its 7-column grant; the promoted shape additionally
// spends the 2 separator columns charged to the count section, and the
// labeled shape the 4 charged to the label upgrade.
func etaColumn(eta float64, promoted, labeled bool) string {
	switch {
	case labeled:
		return fmt.Sprintf(" | %-10s", "eta "+Duration(eta))
	case promoted:
		return fmt.Sprintf(" | %-6s", Duration(eta))
	default:
		return fmt.Sprintf(" %-6s", Duration(eta))
	}
}

// bar renders the bracketed fill spanning exactly width cells.
func bar(width, progress, total int) string {
	fill := width - 2
	done := int(float64(fill) * ratio(progress, total))
	if done > fill {
		done = fill
	}
	return "[" + strings.Repeat(processedGlyph, done) + strings.Repeat(unprocessedGlyph, fill-done) + "]"
}

// ratio is the completion fraction as a float division. The zero-total
// guard mirrors the duration zero case: total >= 1 is a caller
// invariant, but a zero must degrade to an empty bar, not a NaN fill.
func ratio(progress, total int) float64 {
	if total < 1 {
		return 0
	}
	return float64(progress) / float64(total)
}

func digits(n int) int {
	return len(strconv.Itoa(n))
}
