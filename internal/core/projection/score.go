package projection

import "math"

type scoreProjection struct {
	ptsA, ptsB  float64
	marginBase  float64
	ftMargin    float64
	clutch      float64
	marginFinal float64
	totalAdj    float64
	totalProj   float64
}

// clutchWeight scales the free-throw point margin; close games lean on the line.
func clutchWeight(marginBase float64) float64 {
	abs := math.Abs(marginBase)
	switch {
	case abs <= 4:
		return 0.30
	case abs <= 7.5:
		return 0.15
	default:
		return 0
	}
}

// totalAdjustment nudges the total up for close games and down for blowouts.
func totalAdjustment(marginFinal float64) float64 {
	abs := math.Abs(marginFinal)
	var adj float64
	if abs <= 4 {
		adj += 3.0
	} else if abs <= 7.5 {
		adj += 1.5
	}
	if abs >= 10 {
		adj -= 2.0
	}
	return adj
}

// freeThrowPoints estimates one side's points from the line.
func freeThrowPoints(pFinal, expTov, expFtr, ftAccuracy float64) float64 {
	fga := pFinal * (1 - (expTov / 100))
	fta := fga * expFtr
	return fta * (normPct(ftAccuracy) / 100)
}

func composeScore(a, b TeamStats, pFinal, pppA, pppB float64, rates matchupRates) scoreProjection {
	s := scoreProjection{
		ptsA: pFinal * pppA,
		ptsB: pFinal * pppB,
	}
	s.marginBase = s.ptsA - s.ptsB

	ftA := freeThrowPoints(pFinal, rates.tovA, rates.ftrA, a.FTAccuracyPct)
	ftB := freeThrowPoints(pFinal, rates.tovB, rates.ftrB, b.FTAccuracyPct)
	s.ftMargin = ftA - ftB

	s.clutch = clutchWeight(s.marginBase)
	s.marginFinal = s.marginBase + s.ftMargin*s.clutch

	s.totalAdj = totalAdjustment(s.marginFinal)
	s.totalProj = s.ptsA + s.ptsB + s.totalAdj
	return s
}
