package bridge

import (
	"math"
	"testing"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
)

// TestBalancePosition_EqualResistances verifies the null sits at the
// wire midpoint whenever the two gaps match.
func TestBalancePosition_EqualResistances(t *testing.T) {
	for _, r := range []float64{0.1, 1.0, 5.0, 9.99} {
		pos := BalancePosition(r, r, 0.02)
		if pos != WireHalfLengthCM {
			t.Errorf("BalancePosition(%g, %g) = %g, want %g", r, r, pos, WireHalfLengthCM)
		}
	}
}

// TestBalancePosition_SwapSymmetry verifies swapping the gaps mirrors
// the null about the midpoint.
func TestBalancePosition_SwapSymmetry(t *testing.T) {
	cases := []struct{ a, b, rho float64 }{
		{5.0, 5.08, 0.02},
		{1.0, 2.0, 0.05},
		{0.5, 0.0, 0.025},
		{9.0, 3.3, 0.1},
	}
	for _, c := range cases {
		sum := BalancePosition(c.a, c.b, c.rho) + BalancePosition(c.b, c.a, c.rho)
		if math.Abs(sum-2*WireHalfLengthCM) > 1e-9 {
			t.Errorf("positions for (%g,%g) and (%g,%g) sum to %g, want %g",
				c.a, c.b, c.b, c.a, sum, 2*WireHalfLengthCM)
		}
	}
}

func TestBalancePosition_KnownValue(t *testing.T) {
	// left=5, right=5.08, rho=0.02: null at 50 + 0.08/0.04 = 52 cm.
	pos := BalancePosition(5.0, 5.08, 0.02)
	if math.Abs(pos-52.0) > 1e-9 {
		t.Errorf("BalancePosition(5, 5.08, 0.02) = %g, want 52", pos)
	}
}

func TestCircuit_GapAssignment(t *testing.T) {
	cases := []struct {
		name        string
		mode        core.ExperimentMode
		swapped     bool
		left, right float64
	}{
		{"unknown normal", core.ModeFindUnknownResistance, false, 7.0, 5.0},
		{"unknown swapped", core.ModeFindUnknownResistance, true, 5.0, 7.0},
		{"resistivity normal", core.ModeFindResistivity, false, 5.0, 0.0},
		{"resistivity swapped", core.ModeFindResistivity, true, 0.0, 5.0},
	}
	for _, c := range cases {
		circuit := Circuit{
			KnownResistance:  5.0,
			TrueUnknown:      7.0,
			ResistivityPerCM: 0.02,
			Swapped:          c.swapped,
			Mode:             c.mode,
		}
		left, right := circuit.Gaps()
		if left != c.left || right != c.right {
			t.Errorf("%s: gaps = (%g, %g), want (%g, %g)", c.name, left, right, c.left, c.right)
		}
	}
}

func TestDeflection_SignTracksSide(t *testing.T) {
	balance := 52.0
	if d := Deflection(51.0, balance, DefaultSensitivity); d >= 0 {
		t.Errorf("jockey left of null should deflect negative, got %g", d)
	}
	if d := Deflection(53.0, balance, DefaultSensitivity); d <= 0 {
		t.Errorf("jockey right of null should deflect positive, got %g", d)
	}
	if d := Deflection(balance, balance, DefaultSensitivity); d != 0 {
		t.Errorf("jockey at null should read zero, got %g", d)
	}
}

func TestClampNeedle(t *testing.T) {
	if got := ClampNeedle(300); got != MaxNeedleDeflection {
		t.Errorf("ClampNeedle(300) = %g, want %g", got, MaxNeedleDeflection)
	}
	if got := ClampNeedle(-300); got != -MaxNeedleDeflection {
		t.Errorf("ClampNeedle(-300) = %g, want %g", got, -MaxNeedleDeflection)
	}
	if got := ClampNeedle(12.5); got != 12.5 {
		t.Errorf("ClampNeedle(12.5) = %g, want unchanged", got)
	}
}

// TestBalanced_UsesUnclampedValue verifies the predicate tests the raw
// signal: a clamped needle reading must not count as balanced.
func TestBalanced_UsesUnclampedValue(t *testing.T) {
	raw := Deflection(90, 10, DefaultSensitivity)
	if Balanced(raw, DefaultTolerance) {
		t.Error("far-off jockey reported as balanced")
	}
	if !Balanced(0.009, 0.01) {
		t.Error("deflection inside tolerance band not reported as balanced")
	}
	if Balanced(0.01, 0.01) {
		t.Error("tolerance band should be exclusive at the boundary")
	}
}
