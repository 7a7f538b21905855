package text

import (
	"fmt"
	"math"
	"time"
)

// RelativeTime formats a time as relative: "3m ago", "1h ago", or
// "Jan 02 15:04" if more than a day old.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "<1m ago"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 02 15:04")
	}
}

// FormatStep formats training step counts: 12400 -> "12.4k", 1200000 -> "1.2M"
func FormatStep(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatValue formats a scalar metric value compactly. Very small and very
// large magnitudes switch to scientific notation.
func FormatValue(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 0):
		return "Inf"
	case math.Abs(v) >= 1e6 || math.Abs(v) < 1e-4:
		return fmt.Sprintf("%.3e", v)
	default:
		return fmt.Sprintf("%.4g", v)
	}
}

// FormatInterval renders a poll interval for display: 0 -> "off",
// 30s -> "30s", 300s -> "5m".
func FormatInterval(d time.Duration) string {
	switch {
	case d <= 0:
		return "off"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}
