package domain

import "strconv"

// round rounds v to the given number of decimal places based on the exact
// decimal expansion of v, ties to even (2.675 -> 2.67, 0.25 -> 0.2).
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func round1(v float64) float64 { return round(v, 1) }

func round2(v float64) float64 { return round(v, 2) }

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
