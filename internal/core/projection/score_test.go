package projection

import (
	"math"
	"testing"
)

func TestClutchWeight(t *testing.T) {
	tests := []struct {
		margin, want float64
	}{
		{0, 0.30},
		{-4, 0.30},
		{4.01, 0.15},
		{-7.5, 0.15},
		{7.51, 0},
		{-20, 0},
	}
	for _, tt := range tests {
		if got := clutchWeight(tt.margin); got != tt.want {
			t.Errorf("clutchWeight(%v) = %v, want %v", tt.margin, got, tt.want)
		}
	}
}

func TestTotalAdjustment(t *testing.T) {
	tests := []struct {
		margin, want float64
	}{
		{0, 3.0},
		{-4, 3.0},
		{5, 1.5},
		{-7.5, 1.5},
		{8, 0},
		{9.99, 0},
		{10, -2.0},
		{-25, -2.0},
	}
	for _, tt := range tests {
		if got := totalAdjustment(tt.margin); got != tt.want {
			t.Errorf("totalAdjustment(%v) = %v, want %v", tt.margin, got, tt.want)
		}
	}
}

func TestFreeThrowPoints(t *testing.T) {
	// 100 possessions, 14.5% turnovers -> 85.5 FGA, 0.24 FTr -> 20.52 FTA at 78%.
	got := freeThrowPoints(100, 14.5, 0.24, 78)
	want := 85.5 * 0.24 * 0.78
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("freeThrowPoints = %v, want %v", got, want)
	}
	if decimal := freeThrowPoints(100, 14.5, 0.24, 0.78); math.Abs(decimal-want) > 1e-9 {
		t.Errorf("decimal accuracy should normalize, got %v", decimal)
	}
}

func TestComposeScoreAppliesClutchFreeThrows(t *testing.T) {
	a, b := DefaultTeam("A"), DefaultTeam("B")
	a.FTAccuracyPct = 90
	b.FTAccuracyPct = 70
	rates := expectedRates(a, b)

	s := composeScore(a, b, 100, 1.15, 1.15, rates)
	if s.marginBase != 0 {
		t.Fatalf("margin_base = %v, want 0", s.marginBase)
	}
	wantFT := 85.5 * 0.24 * (0.90 - 0.70)
	if math.Abs(s.ftMargin-wantFT) > 1e-9 {
		t.Errorf("ft margin = %v, want %v", s.ftMargin, wantFT)
	}
	if math.Abs(s.marginFinal-wantFT*0.30) > 1e-9 {
		t.Errorf("margin_final = %v, want %v", s.marginFinal, wantFT*0.30)
	}
	if math.Abs(s.totalProj-233) > 1e-9 {
		t.Errorf("total_proj = %v, want 233", s.totalProj)
	}
}
