package projection

import "math"

// normDec reads a rate stored as a decimal. Values above 1 are taken as percentages.
func normDec(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// normPct reads a rate stored as a percentage. Values strictly inside (0,1)
// are taken as decimals. Exactly 0 and 1 pass through unchanged.
func normPct(v float64) float64 {
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func blend(season, l10 float64) float64 {
	return 0.70*season + 0.30*l10
}
