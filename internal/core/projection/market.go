package projection

import (
	"math"

	"github.com/charleschow/hoops-analyst/internal/core/odds"
)

// Actionable edge thresholds. All comparisons are inclusive.
const (
	TotalEdgeThreshold     = 3.0
	SpreadEdgeThreshold    = 2.0
	TeamTotalEdgeThreshold = 2.5
	MLEdgeThreshold        = 0.04

	// Win-probability swing per point of projected margin. Linear, uncalibrated.
	winProbPerPoint = 0.031

	NoLean = "No Lean"
)

type marketEdges struct {
	total, spread float64
	ttA, ttB      float64
	winProbA      float64
	impliedA      float64
	ml            float64
}

func compareMarket(s scoreProjection, m MarketData) marketEdges {
	e := marketEdges{
		total:  s.totalProj - m.Total,
		spread: -(s.marginFinal + m.Spread),
		ttA:    s.ptsA - m.TTA,
		ttB:    s.ptsB - m.TTB,
	}
	e.winProbA = 0.5 + (s.marginFinal * winProbPerPoint)
	e.impliedA = odds.AmericanImplied(m.MLA)
	e.ml = e.winProbA - e.impliedA
	return e
}

func triggersFor(e marketEdges) Triggers {
	return Triggers{
		Total:  math.Abs(e.total) >= TotalEdgeThreshold,
		Spread: math.Abs(e.spread) >= SpreadEdgeThreshold,
		TTA:    math.Abs(e.ttA) >= TeamTotalEdgeThreshold,
		TTB:    math.Abs(e.ttB) >= TeamTotalEdgeThreshold,
		ML:     math.Abs(e.ml) >= MLEdgeThreshold,
	}
}

// mlLean names the side the moneyline edge favors, strictly past the threshold.
func mlLean(mlEdge float64, a, b TeamStats) string {
	switch {
	case mlEdge > MLEdgeThreshold:
		return a.Name
	case mlEdge < -MLEdgeThreshold:
		return b.Name
	default:
		return NoLean
	}
}

func totalSide(edgeTotal float64) string {
	if edgeTotal > 0 {
		return "OVER"
	}
	return "UNDER"
}

func spreadSide(edgeSpread float64, a, b TeamStats) string {
	if edgeSpread > 0 {
		return a.Name
	}
	return b.Name
}
