package utils

import "math"

func RoundWithOneDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10) / 10
}

// Clamp limita f ao intervalo [lo, hi]
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}
