package render

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNumber renders an axis or tooltip value. Very small and very
// large magnitudes use two-digit scientific notation; everything else is
// rounded to six decimals with trailing zeros dropped.
func FormatNumber(n float64) string {
	abs := math.Abs(n)
	if abs != 0 && (abs < 1e-3 || abs >= 1e5) {
		return fmt.Sprintf("%.2e", n)
	}
	r := math.Round(n*1e6) / 1e6
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
