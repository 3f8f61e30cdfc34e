package projection

const (
	pppFloor = 0.75
	pppCeil  = 1.55

	paintCap          = 0.035
	paintCapNoRimProt = 0.045
	threePtCap        = 0.025

	// Assist rate is judged against a fixed 60% rather than a league constant.
	astBaseline = 60.0
)

// rawPPP averages the offense's blended ORtg with the defense's blended DRtg.
func rawPPP(off, def TeamStats) float64 {
	ortg := blend(off.OrtgSeason, off.OrtgL10)
	drtg := blend(def.DrtgSeason, def.DrtgL10)
	return ((ortg + drtg) / 2) / 100
}

// adjust computes every situational PPP term for off attacking def.
// expTov is a percentage, expFtr a decimal.
func adjust(off, def TeamStats, expTov, expFtr float64, c LeagueConstants) Adjustments {
	var m Adjustments

	m.Tov = -0.011 * (expTov - normPct(c.TovLgAvg))
	m.FT = +0.020 * ((expFtr - normDec(c.FtrAvg)) / 0.050)

	orebExp := (normPct(off.OrebPctOff) + normPct(def.OrebPctDefAllowed)) / 2
	m.OREB = +0.012 * ((orebExp - normPct(c.OrebAvg)) / 3.0)

	m.Paint = paintTerm(off, def)
	m.ThreePt = threePtTerm(off, def)

	astExp := (normPct(off.AstPctOff) + normPct(def.OppAstPctAllowed)) / 2
	m.Ast = 0.010 * ((astExp - astBaseline) / 3.0)

	m.Transition = transitionTerm(off, def)
	m.Extra = extraTerm(off, def, c)

	return m
}

func paintTerm(off, def TeamStats) float64 {
	dFGA := off.PaintFGA - def.OppPaintFGAAllowed
	dFGPct := (normPct(off.PaintFGPct) - normPct(def.OppPaintFGPctAllowed)) / 100
	dPITP := off.PITP - def.OppPITPAllowed

	vol := 0.010 * (dFGA / 4)
	eff := 0.012 * (dFGPct / 0.05)
	pts := 0.010 * (dPITP / 6)

	limit := paintCap
	if def.MissingRimProtector {
		limit = paintCapNoRimProt
	}
	return clamp(vol+eff+pts, -limit, limit)
}

func threePtTerm(off, def TeamStats) float64 {
	vol := 0.012 * ((off.ThreePA - def.OppThreePAAllowed) / 6)

	var corner float64
	switch off.CornerThreeMismatch {
	case CornerMedium:
		corner = 0.007
	case CornerStrong:
		corner = 0.012
	}
	return clamp(vol+corner, -threePtCap, threePtCap)
}

// transitionTerm: a transition-reliant offense stalls against a sound
// transition defense; a bleeding defense gives it back. Both can apply.
func transitionTerm(off, def TeamStats) float64 {
	var d float64
	if off.TransitionReliance && !def.TransitionDefenseBleed {
		d -= 0.015
	}
	if def.TransitionDefenseBleed {
		d += 0.015
	}
	return d
}

func extraTerm(off, def TeamStats, c LeagueConstants) float64 {
	var d float64
	if def.OppThreePAAllowed > normPct(c.ThreePAAvg)+2 {
		d += 0.005
	}
	if off.FatigueLevel == FatigueTiredOffense {
		d -= 0.006
	}
	if def.FatigueLevel == FatigueTiredDefense {
		d += 0.008
	}
	return d
}

// teamPPP is the clamped efficiency after adjustments.
func teamPPP(raw float64, mods Adjustments) float64 {
	return clamp(raw+mods.Total(), pppFloor, pppCeil)
}
