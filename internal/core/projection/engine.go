// Package projection turns two teams' season and recent-form statistics into
// a deterministic game projection and compares it against market lines.
//
// The engine runs four forward-only stages: possessions, per-team efficiency,
// score composition and market comparison. It holds no state and is safe for
// concurrent use. Inputs are never validated; out-of-range or non-finite
// values flow through the arithmetic into the result.
package projection

import "github.com/charleschow/hoops-analyst/internal/core/odds"

// Project computes the full projection for team A against team B.
func Project(a, b TeamStats, m MarketData, c LeagueConstants) Results {
	rates := expectedRates(a, b)
	pFinal, poss := estimatePossessions(a, b, rates, c)

	modsA := adjust(a, b, rates.tovA, rates.ftrA, c)
	modsB := adjust(b, a, rates.tovB, rates.ftrB, c)
	pppA := teamPPP(rawPPP(a, b), modsA)
	pppB := teamPPP(rawPPP(b, a), modsB)

	score := composeScore(a, b, pFinal, pppA, pppB, rates)
	edges := compareMarket(score, m)
	fairA, _ := odds.FairPairAmerican(m.MLA, m.MLB)

	return Results{
		PFinal:      pFinal,
		PPPA:        pppA,
		PPPB:        pppB,
		PtsA:        score.ptsA,
		PtsB:        score.ptsB,
		TotalProj:   score.totalProj,
		MarginFinal: score.marginFinal,

		EdgeTotal:    edges.total,
		EdgeSpread:   edges.spread,
		EdgeTTA:      edges.ttA,
		EdgeTTB:      edges.ttB,
		WinProbA:     edges.winProbA,
		ImpliedProbA: edges.impliedA,
		MLEdge:       edges.ml,
		MLLean:       mlLean(edges.ml, a, b),
		TotalSide:    totalSide(edges.total),
		SpreadSide:   spreadSide(edges.spread, a, b),

		Breakdown: Breakdown{
			Possessions: poss,
			PPPAMods:    modsA,
			PPPBMods:    modsB,
			MarketComp: MarketComparison{
				SpreadProj: -score.marginFinal,
				TotalProj:  score.totalProj,
				FairProbA:  fairA,
			},
		},
		Triggers: triggersFor(edges),
	}
}
