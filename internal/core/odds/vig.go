package odds

// RemoveVig2 converts a two-way pair of implied probabilities to fair
// probabilities by stripping the bookmaker's overround.
func RemoveVig2(a, b float64) (float64, float64) {
	total := a + b
	if total <= 0 {
		return 0.5, 0.5
	}
	return a / total, b / total
}

// FairPairAmerican de-vigs a two-way American moneyline pair.
func FairPairAmerican(mlA, mlB float64) (float64, float64) {
	return RemoveVig2(AmericanImplied(mlA), AmericanImplied(mlB))
}
