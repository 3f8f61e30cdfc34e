package odds

// AmericanImplied converts American odds to the bookmaker's implied
// probability (vig included).
//
//	-110 -> 110/210 ≈ 0.5238
//	+150 -> 100/250 = 0.40
//
// Zero is not a real price and falls on the positive branch (1.0).
func AmericanImplied(american float64) float64 {
	if american < 0 {
		return -american / (-american + 100)
	}
	return 100 / (american + 100)
}

// AmericanToDecimal converts American odds to decimal odds.
//
//	+150 -> 2.50
//	-150 -> 1.67
func AmericanToDecimal(american float64) float64 {
	if american < 0 {
		return 100/-american + 1
	}
	return american/100 + 1
}
