package projection

import (
	"fmt"
	"math"
)

// CornerMismatch is how badly the offense's corner-three profile exploits the defense.
type CornerMismatch string

const (
	CornerNone   CornerMismatch = "none"
	CornerMedium CornerMismatch = "medium"
	CornerStrong CornerMismatch = "strong"
)

func (c *CornerMismatch) UnmarshalText(b []byte) error {
	switch v := CornerMismatch(b); v {
	case CornerNone, CornerMedium, CornerStrong:
		*c = v
		return nil
	case "":
		*c = CornerNone
		return nil
	default:
		return fmt.Errorf("unknown corner_three_mismatch %q", string(b))
	}
}

// Fatigue marks which side of the ball a tired team is expected to sag on.
type Fatigue string

const (
	FatigueNone         Fatigue = "none"
	FatigueTiredOffense Fatigue = "tired_offense"
	FatigueTiredDefense Fatigue = "tired_defense"
)

func (f *Fatigue) UnmarshalText(b []byte) error {
	switch v := Fatigue(b); v {
	case FatigueNone, FatigueTiredOffense, FatigueTiredDefense:
		*f = v
		return nil
	case "":
		*f = FatigueNone
		return nil
	default:
		return fmt.Errorf("unknown fatigue_level %q", string(b))
	}
}

// Rest is the schedule-density flag. Carried for interface compatibility;
// the model does not consult it.
type Rest string

const (
	RestNone        Rest = "none"
	RestBackToBack  Rest = "b2b"
	RestThreeInFour Rest = "3-in-4"
)

func (r *Rest) UnmarshalText(b []byte) error {
	switch v := Rest(b); v {
	case RestNone, RestBackToBack, RestThreeInFour:
		*r = v
		return nil
	case "":
		*r = RestNone
		return nil
	default:
		return fmt.Errorf("unknown rest_modifier %q", string(b))
	}
}

// TeamStats is one team's inputs for one matchup. Rate fields may be given
// either as a 0–1 fraction or a 0–100 percentage.
type TeamStats struct {
	Name string `json:"name" yaml:"name"`

	PaceSeason float64 `json:"pace_season" yaml:"pace_season"`
	PaceL10    float64 `json:"pace_l10" yaml:"pace_l10"`
	OrtgSeason float64 `json:"ortg_season" yaml:"ortg_season"`
	OrtgL10    float64 `json:"ortg_l10" yaml:"ortg_l10"`
	DrtgSeason float64 `json:"drtg_season" yaml:"drtg_season"`
	DrtgL10    float64 `json:"drtg_l10" yaml:"drtg_l10"`

	TovPctOff         float64 `json:"tov_pct_off" yaml:"tov_pct_off"`
	TovPctDefForced   float64 `json:"tov_pct_def_forced" yaml:"tov_pct_def_forced"`
	OrebPctOff        float64 `json:"oreb_pct_off" yaml:"oreb_pct_off"`
	OrebPctDefAllowed float64 `json:"oreb_pct_def_allowed" yaml:"oreb_pct_def_allowed"`
	FtrOff            float64 `json:"ftr_off" yaml:"ftr_off"`
	FtrDefAllowed     float64 `json:"ftr_def_allowed" yaml:"ftr_def_allowed"`
	EfgPctOff         float64 `json:"efg_pct_off" yaml:"efg_pct_off"`
	EfgPctDefAllowed  float64 `json:"efg_pct_def_allowed" yaml:"efg_pct_def_allowed"`

	PaintFGA             float64 `json:"paint_fga" yaml:"paint_fga"`
	PaintFGPct           float64 `json:"paint_fg_pct" yaml:"paint_fg_pct"`
	PITP                 float64 `json:"pitp" yaml:"pitp"`
	OppPaintFGAAllowed   float64 `json:"opp_paint_fga_allowed" yaml:"opp_paint_fga_allowed"`
	OppPaintFGPctAllowed float64 `json:"opp_paint_fg_pct_allowed" yaml:"opp_paint_fg_pct_allowed"`
	OppPITPAllowed       float64 `json:"opp_pitp_allowed" yaml:"opp_pitp_allowed"`

	ThreePA             float64        `json:"three_pa" yaml:"three_pa"`
	OppThreePAAllowed   float64        `json:"opp_three_pa_allowed" yaml:"opp_three_pa_allowed"`
	CornerThreeMismatch CornerMismatch `json:"corner_three_mismatch" yaml:"corner_three_mismatch"`
	AstPctOff           float64        `json:"ast_pct_off" yaml:"ast_pct_off"`
	OppAstPctAllowed    float64        `json:"opp_ast_pct_allowed" yaml:"opp_ast_pct_allowed"`

	TransitionReliance     bool `json:"transition_reliance" yaml:"transition_reliance"`
	TransitionDefenseBleed bool `json:"transition_defense_bleed" yaml:"transition_defense_bleed"`

	RestModifier          Rest    `json:"rest_modifier" yaml:"rest_modifier"`
	MissingRimProtector   bool    `json:"missing_rim_protector" yaml:"missing_rim_protector"`
	MissingPrimaryCreator bool    `json:"missing_primary_creator" yaml:"missing_primary_creator"`
	FatigueLevel          Fatigue `json:"fatigue_level" yaml:"fatigue_level"`
	FTAccuracyPct         float64 `json:"ft_accuracy_pct" yaml:"ft_accuracy_pct"`
}

// MarketData is one game's sportsbook lines. Spread is from team A's
// perspective; moneylines are American odds.
type MarketData struct {
	Total  float64 `json:"total" yaml:"total"`
	Spread float64 `json:"spread" yaml:"spread"`
	MLA    float64 `json:"ml_a" yaml:"ml_a"`
	MLB    float64 `json:"ml_b" yaml:"ml_b"`
	TTA    float64 `json:"tt_a" yaml:"tt_a"`
	TTB    float64 `json:"tt_b" yaml:"tt_b"`
}

// LeagueConstants are the baselines every adjustment is centered on.
type LeagueConstants struct {
	TovLgAvg   float64 `json:"tov_lg_avg" yaml:"tov_lg_avg"`
	FtrAvg     float64 `json:"ftr_avg" yaml:"ftr_avg"`
	OrebAvg    float64 `json:"oreb_avg" yaml:"oreb_avg"`
	ThreePAAvg float64 `json:"three_pa_avg" yaml:"three_pa_avg"`
}

// Adjustments holds the signed PPP adjustment terms for one offense.
type Adjustments struct {
	Tov        float64 `json:"tov"`
	FT         float64 `json:"ft"`
	OREB       float64 `json:"oreb"`
	Paint      float64 `json:"paint"`
	ThreePt    float64 `json:"three_pt"`
	Ast        float64 `json:"ast"`
	Transition float64 `json:"transition"`
	Extra      float64 `json:"extra"`
}

// Total sums the terms in declaration order.
func (a Adjustments) Total() float64 {
	sum := 0.0
	for _, e := range a.Entries() {
		sum += e.Value
	}
	return sum
}

// Entry is one named adjustment term.
type Entry struct {
	Name  string
	Value float64
}

// Entries returns the terms in display order.
func (a Adjustments) Entries() []Entry {
	return []Entry{
		{"tov", a.Tov},
		{"ft", a.FT},
		{"oreb", a.OREB},
		{"paint", a.Paint},
		{"three_pt", a.ThreePt},
		{"ast", a.Ast},
		{"transition", a.Transition},
		{"extra", a.Extra},
	}
}

type PossessionBreakdown struct {
	PControl float64 `json:"p_control"`
	DPTov    float64 `json:"dp_tov"`
	DPFT     float64 `json:"dp_ft"`
	TovGame  float64 `json:"tov_game"`
	FtrGame  float64 `json:"ftr_game"`
}

type MarketComparison struct {
	SpreadProj float64 `json:"spread_proj"`
	TotalProj  float64 `json:"total_proj"`
	// FairProbA is team A's vig-free moneyline probability. Informational only.
	FairProbA float64 `json:"fair_prob_a"`
}

type Breakdown struct {
	Possessions PossessionBreakdown `json:"possessions"`
	PPPAMods    Adjustments         `json:"ppp_a_mods"`
	PPPBMods    Adjustments         `json:"ppp_b_mods"`
	MarketComp  MarketComparison    `json:"market_comp"`
}

// Triggers flags the edges that crossed their actionable threshold.
type Triggers struct {
	Total  bool `json:"total"`
	Spread bool `json:"spread"`
	TTA    bool `json:"tt_a"`
	TTB    bool `json:"tt_b"`
	ML     bool `json:"ml"`
}

// Any reports whether at least one trigger fired.
func (t Triggers) Any() bool {
	return t.Total || t.Spread || t.TTA || t.TTB || t.ML
}

// Signature is a compact, stable encoding of which triggers fired, e.g. "total+ml".
func (t Triggers) Signature() string {
	sig := ""
	add := func(on bool, name string) {
		if !on {
			return
		}
		if sig != "" {
			sig += "+"
		}
		sig += name
	}
	add(t.Total, "total")
	add(t.Spread, "spread")
	add(t.TTA, "tt_a")
	add(t.TTB, "tt_b")
	add(t.ML, "ml")
	return sig
}

// Results is the engine's complete output for one matchup.
type Results struct {
	PFinal      float64 `json:"p_final"`
	PPPA        float64 `json:"ppp_a"`
	PPPB        float64 `json:"ppp_b"`
	PtsA        float64 `json:"pts_a"`
	PtsB        float64 `json:"pts_b"`
	TotalProj   float64 `json:"total_proj"`
	MarginFinal float64 `json:"margin_final"`

	EdgeTotal    float64 `json:"edge_total"`
	EdgeSpread   float64 `json:"edge_spread"`
	EdgeTTA      float64 `json:"edge_tt_a"`
	EdgeTTB      float64 `json:"edge_tt_b"`
	WinProbA     float64 `json:"win_prob_a"`
	ImpliedProbA float64 `json:"implied_prob_a"`
	MLEdge       float64 `json:"ml_edge"`
	MLLean       string  `json:"ml_lean"`
	TotalSide    string  `json:"total_side"`
	SpreadSide   string  `json:"spread_side"`

	Breakdown Breakdown `json:"breakdown"`
	Triggers  Triggers  `json:"triggers"`
}

// Finite reports whether every numeric field of r is finite. Non-finite
// inputs surface here rather than as an error from Project.
func (r Results) Finite() bool {
	b := r.Breakdown
	vals := []float64{
		r.PFinal, r.PPPA, r.PPPB, r.PtsA, r.PtsB, r.TotalProj, r.MarginFinal,
		r.EdgeTotal, r.EdgeSpread, r.EdgeTTA, r.EdgeTTB,
		r.WinProbA, r.ImpliedProbA, r.MLEdge,
		b.Possessions.PControl, b.Possessions.DPTov, b.Possessions.DPFT,
		b.Possessions.TovGame, b.Possessions.FtrGame,
		b.MarketComp.SpreadProj, b.MarketComp.TotalProj, b.MarketComp.FairProbA,
	}
	for _, e := range b.PPPAMods.Entries() {
		vals = append(vals, e.Value)
	}
	for _, e := range b.PPPBMods.Entries() {
		vals = append(vals, e.Value)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
