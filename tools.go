package impactor

import (
	"fmt"
	"math"
)

// FormatMagnitude renders a quantity with K/M/B/T scale suffixes for display
// at the boundary, e.g. 1.5e12 → "1.50T".
func FormatMagnitude(v float64) string {
	abs := math.Abs(v)
	switch {
	case !isFinite(v):
		return fmt.Sprintf("%v", v)
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
