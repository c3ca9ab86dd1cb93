package breakeven

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCompute_DefinedBreakEven(t *testing.T) {
	// Supuestos base de la calculadora: P=65, CVu=22, CF=9500.
	result := Compute(65, 22, 9500)

	if !result.Defined() {
		t.Fatal("expected a defined break-even")
	}
	nearlyEqual(t, "ContributionMargin", result.ContributionMargin, 43)
	nearlyEqual(t, "BreakEvenUnits", result.BreakEvenUnits, 9500.0/43)
	nearlyEqual(t, "BreakEvenRevenue", result.BreakEvenRevenue, 9500.0/43*65)

	if err := result.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestCompute_NonPositiveContributionMarginIsUndefined(t *testing.T) {
	for _, tc := range []struct {
		name         string
		price, cvu   float64
		wantedMargin float64
	}{
		{"price below cost", 20, 22, -2},
		{"price equals cost", 22, 22, 0},
	} {
		result := Compute(tc.price, tc.cvu, 9500)

		if result.Defined() {
			t.Fatalf("%s: break-even must be undefined", tc.name)
		}
		nearlyEqual(t, tc.name+" ContributionMargin", result.ContributionMargin, tc.wantedMargin)
		if !math.IsNaN(result.BreakEvenUnits) || !math.IsNaN(result.BreakEvenRevenue) {
			t.Fatalf("%s: units and revenue must be NaN, got %v / %v", tc.name, result.BreakEvenUnits, result.BreakEvenRevenue)
		}
	}
}

func TestValidate_NegativeBreakEven(t *testing.T) {
	result := Compute(65, 22, -9500)

	if !result.Defined() {
		t.Fatal("negative fixed costs still produce a defined quantity")
	}
	if err := result.Validate(); !errors.Is(err, ErrNegativeBreakEven) {
		t.Fatalf("expected ErrNegativeBreakEven, got %v", err)
	}
}

func TestUnitsForTargetProfit(t *testing.T) {
	nearlyEqual(t, "q_req", UnitsForTargetProfit(65, 22, 9500, 4300), (9500.0+4300)/43)

	if !math.IsNaN(UnitsForTargetProfit(20, 22, 9500, 4300)) {
		t.Fatal("target-profit units must be NaN with non-positive margin")
	}
}

func TestSafetyMargin(t *testing.T) {
	qBE := Compute(65, 22, 9500).BreakEvenUnits

	nearlyEqual(t, "safety margin", SafetyMargin(400, qBE), (400-qBE)/400)

	if !math.IsNaN(SafetyMargin(0, qBE)) {
		t.Fatal("safety margin must be NaN with zero expected volume")
	}
	if !math.IsNaN(SafetyMargin(400, math.NaN())) {
		t.Fatal("safety margin must be NaN with undefined break-even")
	}
}
