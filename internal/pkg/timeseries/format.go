package timeseries

import "fmt"

// FormatAmount renders an amount with K/M/B abbreviation for display.
// Values under a thousand keep two decimals.
func FormatAmount(amount float64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", amount/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", amount/1_000)
	}
	return fmt.Sprintf("%.2f", amount)
}
