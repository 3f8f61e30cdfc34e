package projection

// DefaultLeagueConstants are the stock league baselines.
func DefaultLeagueConstants() LeagueConstants {
	return LeagueConstants{
		TovLgAvg:   14.5,
		FtrAvg:     0.240,
		OrebAvg:    0.305,
		ThreePAAvg: 35.0,
	}
}

// DefaultTeam returns a league-average team: every centered term is zero
// against DefaultLeagueConstants.
func DefaultTeam(name string) TeamStats {
	return TeamStats{
		Name:                 name,
		PaceSeason:           100,
		PaceL10:              100,
		OrtgSeason:           115,
		OrtgL10:              115,
		DrtgSeason:           115,
		DrtgL10:              115,
		TovPctOff:            14.5,
		TovPctDefForced:      14.5,
		OrebPctOff:           30.5,
		OrebPctDefAllowed:    30.5,
		FtrOff:               0.24,
		FtrDefAllowed:        0.24,
		EfgPctOff:            54,
		EfgPctDefAllowed:     54,
		PaintFGA:             45,
		PaintFGPct:           65,
		PITP:                 50,
		OppPaintFGAAllowed:   45,
		OppPaintFGPctAllowed: 65,
		OppPITPAllowed:       50,
		ThreePA:              35,
		OppThreePAAllowed:    35,
		CornerThreeMismatch:  CornerNone,
		AstPctOff:            60,
		OppAstPctAllowed:     60,
		RestModifier:         RestNone,
		FatigueLevel:         FatigueNone,
		FTAccuracyPct:        78,
	}
}

// DefaultMarket is a pick'em at 230.
func DefaultMarket() MarketData {
	return MarketData{
		Total:  230,
		Spread: 0,
		MLA:    -110,
		MLB:    -110,
		TTA:    115,
		TTB:    115,
	}
}
