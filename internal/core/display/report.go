package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charleschow/hoops-analyst/internal/core/odds"
	"github.com/charleschow/hoops-analyst/internal/core/projection"
)

const (
	dividerHeavy = "========================================================================"
	dividerLight = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"
)

// Render writes the full projection report: possession environment, each
// side's efficiency breakdown, the final score and the fired edges.
func Render(w io.Writer, a, b projection.TeamStats, m projection.MarketData, res projection.Results) error {
	var sb strings.Builder
	pb := res.Breakdown.Possessions

	fmt.Fprintf(&sb, "%s\n", dividerHeavy)
	fmt.Fprintf(&sb, "  %s @ %s\n", a.Name, b.Name)
	fmt.Fprintf(&sb, "%s\n", dividerHeavy)

	fmt.Fprintf(&sb, "  Possession environment\n")
	fmt.Fprintf(&sb, "    %-34s%.1f\n", "P_FINAL:", res.PFinal)
	fmt.Fprintf(&sb, "    %-34s%.2f\n", "P_CONTROL (tempo):", pb.PControl)
	fmt.Fprintf(&sb, "    %-34s%s\n", "TOV influence:", signed(pb.DPTov, 2))
	fmt.Fprintf(&sb, "    %-34s%s\n", "FT slowdown:", signed(pb.DPFT, 2))

	writeEfficiency(&sb, a.Name, res.PPPA, res.Breakdown.PPPAMods)
	writeEfficiency(&sb, b.Name, res.PPPB, res.Breakdown.PPPBMods)

	fmt.Fprintf(&sb, "%s\n", dividerLight)
	fmt.Fprintf(&sb, "  Final projection\n")
	fmt.Fprintf(&sb, "    %-34s%s %.1f  @  %s %.1f\n", "Score:", shortName(a.Name), res.PtsA, shortName(b.Name), res.PtsB)
	fmt.Fprintf(&sb, "    %-34s%.1f  (market %.1f)\n", "Model total:", res.TotalProj, m.Total)
	fmt.Fprintf(&sb, "    %-34s%s  (market %s)\n", "Model margin:", FavoriteLabel(a, b, res), signed(m.Spread, 1))
	fmt.Fprintf(&sb, "    %-34s%s %s (%.2f)  |  %s %s (%.2f)\n", "Moneylines:",
		shortName(a.Name), signed(m.MLA, 0), odds.AmericanToDecimal(m.MLA),
		shortName(b.Name), signed(m.MLB, 0), odds.AmericanToDecimal(m.MLB))
	fmt.Fprintf(&sb, "    %-34s%.1f%%  (implied %.1f%%, fair %.1f%%)\n", "Win prob "+shortName(a.Name)+":",
		res.WinProbA*100, res.ImpliedProbA*100, res.Breakdown.MarketComp.FairProbA*100)

	fmt.Fprintf(&sb, "%s\n", dividerLight)
	fmt.Fprintf(&sb, "  Edge analysis\n")
	lines := EdgeLines(a, b, res)
	if len(lines) == 0 {
		fmt.Fprintf(&sb, "    No verified market discrepancies detected.\n")
	}
	for _, l := range lines {
		fmt.Fprintf(&sb, "    %s\n", l)
	}
	fmt.Fprintf(&sb, "%s\n", dividerHeavy)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEfficiency(sb *strings.Builder, name string, ppp float64, mods projection.Adjustments) {
	fmt.Fprintf(sb, "%s\n", dividerLight)
	fmt.Fprintf(sb, "  %s efficiency: %.3f PPP\n", name, ppp)
	for _, e := range mods.Entries() {
		fmt.Fprintf(sb, "    %-34s%s\n", strings.ToUpper(e.Name)+" impact:", signed(e.Value, 4))
	}
}

// EdgeLines describes each fired trigger, in total, spread, team total,
// moneyline order. Empty when nothing fired.
func EdgeLines(a, b projection.TeamStats, res projection.Results) []string {
	var out []string
	t := res.Triggers
	if t.Total {
		out = append(out, fmt.Sprintf("TOTAL %s  EDGE %.1f", res.TotalSide, math.Abs(res.EdgeTotal)))
	}
	if t.Spread {
		out = append(out, fmt.Sprintf("SPREAD %s  EDGE %.1f", res.SpreadSide, math.Abs(res.EdgeSpread)))
	}
	if t.TTA {
		out = append(out, fmt.Sprintf("TEAM TOTAL %s %s  EDGE %.1f", a.Name, overUnder(res.EdgeTTA), math.Abs(res.EdgeTTA)))
	}
	if t.TTB {
		out = append(out, fmt.Sprintf("TEAM TOTAL %s %s  EDGE %.1f", b.Name, overUnder(res.EdgeTTB), math.Abs(res.EdgeTTB)))
	}
	if t.ML {
		out = append(out, fmt.Sprintf("ML %s  %.1f%%", res.MLLean, math.Abs(res.MLEdge)*100))
	}
	return out
}

// FavoriteLabel is the projected favorite and margin, e.g. "Boston -7.4".
// Team B is named when the margin is zero or negative.
func FavoriteLabel(a, b projection.TeamStats, res projection.Results) string {
	name := b.Name
	if res.MarginFinal > 0 {
		name = a.Name
	}
	return fmt.Sprintf("%s -%.1f", name, math.Abs(res.MarginFinal))
}

func overUnder(edge float64) string {
	if edge > 0 {
		return "OVER"
	}
	return "UNDER"
}

func signed(v float64, prec int) string {
	if v >= 0 {
		return fmt.Sprintf("+%.*f", prec, v)
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func shortName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	return parts[len(parts)-1]
}
