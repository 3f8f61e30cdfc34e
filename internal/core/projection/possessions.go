package projection

const (
	possessionFloor = 85.0
	possessionCeil  = 120.0
)

// matchupRates are the per-side expectations shared by the later stages.
// tov values are percentages, ftr values decimals.
type matchupRates struct {
	tovA, tovB float64
	ftrA, ftrB float64
}

func expectedRates(a, b TeamStats) matchupRates {
	return matchupRates{
		tovA: (normPct(a.TovPctOff) + normPct(b.TovPctDefForced)) / 2,
		tovB: (normPct(b.TovPctOff) + normPct(a.TovPctDefForced)) / 2,
		ftrA: (normDec(a.FtrOff) + normDec(b.FtrDefAllowed)) / 2,
		ftrB: (normDec(b.FtrOff) + normDec(a.FtrDefAllowed)) / 2,
	}
}

// tempoWeight is how much of the game's tempo the slower team controls.
func tempoWeight(diff float64) float64 {
	switch {
	case diff >= 3.0:
		return 0.60
	case diff >= 1.5:
		return 0.55
	default:
		return 0.50
	}
}

// estimatePossessions returns the clamped game possession count and its terms.
func estimatePossessions(a, b TeamStats, rates matchupRates, c LeagueConstants) (float64, PossessionBreakdown) {
	paceA := blend(a.PaceSeason, a.PaceL10)
	paceB := blend(b.PaceSeason, b.PaceL10)

	slow, fast := paceA, paceB
	if paceB < paceA {
		slow, fast = paceB, paceA
	}
	wSlow := tempoWeight(fast - slow)
	pControl := wSlow*slow + (1-wSlow)*fast

	// Empty possessions end quickly; free throws stop the clock.
	tovGame := (rates.tovA + rates.tovB) / 2
	dpTov := 0.60 * (tovGame - normPct(c.TovLgAvg))

	ftrGame := (rates.ftrA + rates.ftrB) / 2
	dpFT := -1.0 * ((ftrGame - normDec(c.FtrAvg)) / 0.050)

	pFinal := clamp(pControl+dpTov+dpFT, possessionFloor, possessionCeil)

	return pFinal, PossessionBreakdown{
		PControl: pControl,
		DPTov:    dpTov,
		DPFT:     dpFT,
		TovGame:  tovGame,
		FtrGame:  ftrGame,
	}
}
