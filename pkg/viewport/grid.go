package viewport

import "math"

// gridSlack keeps the last grid line when accumulated float error lands
// it a hair past the max bound.
const gridSlack = 1e-9

// NiceStep picks a grid spacing of the form {1,2,5,10}×10^k that divides
// span into roughly ten parts.
func NiceStep(span float64) float64 {
	raw := span / 10
	pow10 := math.Pow(10, math.Floor(math.Log10(raw)))
	base := raw / pow10
	var nice float64
	switch {
	case base < 1.5:
		nice = 1
	case base < 3.5:
		nice = 2
	case base < 7.5:
		nice = 5
	default:
		nice = 10
	}
	return nice * pow10
}

// GridLines returns the multiples of step inside [lo, hi], in increasing
// order. A non-positive or non-finite step yields nil.
func GridLines(lo, hi, step float64) []float64 {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	start := math.Ceil(lo/step) * step
	n := int(math.Floor((hi+gridSlack-start)/step)) + 1
	if n <= 0 {
		return nil
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+float64(i)*step)
	}
	return out
}
