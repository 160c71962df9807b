package layout

import (
	"fmt"
	"math"
)

// Duration formats a duration in seconds as a human string of at most
// 6 characters. Zero reports "done" and +Inf reports "--"; everything
// else is rounded to the nearest second and rendered in the coarsest
// unit pair that fits the budget, clamped at "99999d".
func Duration(seconds float64) string {
	if seconds == 0 {
		return "done"
	}
	if math.IsInf(seconds, 1) {
		return "--"
	}

	s := int64(math.Round(seconds))
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm%2ds", s/60, s%60)
	case s < 360000: // 100h
		return fmt.Sprintf("%dh%2dm", s/3600, s/60%60)
	case s < 8640000: // 100d
		return fmt.Sprintf("%dd%2dh", s/86400, s/3600%24)
	case s < 8640000000: // 100000d
		return fmt.Sprintf("%dd", s/86400)
	default:
		return "99999d"
	}
}

// Speed formats a rate in units per second as a human string of at most
// 10 characters. Exact zero is the distinct "0 bps"; small nonzero rates
// keep two decimals so they stay visibly different from true zero.
// Scaled values truncate (never round) so the budget cannot be blown by
// a carry, clamped at "99999 gbps".
func Speed(unitsPerSecond float64) string {
	v := unitsPerSecond
	switch {
	case v == 0:
		return "0 bps"
	case v < 1000:
		s := fmt.Sprintf("%.2f bps", v)
		if len(s) > 10 {
			// Values in [999.995, 1000) round up to "1000.00 bps",
			// one past the budget; pin them to the widest bps value.
			s = "999.99 bps"
		}
		return s
	case v < 1e6:
		return fmt.Sprintf("%.1f kbps", floor1(v/1e3))
	case v < 1e9:
		return fmt.Sprintf("%.1f mbps", floor1(v/1e6))
	case v < 1e12:
		return fmt.Sprintf("%.1f gbps", floor1(v/1e9))
	case v < 1e14:
		return fmt.Sprintf("%d gbps", int64(v/1e9))
	default:
		return "99999 gbps"
	}
}

// floor1 truncates to one decimal place.
func floor1(v float64) float64 {
	return math.Floor(v*10) / 10
}
