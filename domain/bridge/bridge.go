// Package bridge implements the electrical model of a Carey Foster
// bridge: a uniform resistive wire bounded by two gap resistances and a
// pair of equal ratio arms. All functions are pure and recomputed from
// scratch on every input change.
package bridge

import (
	"math"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
)

const (
	// WireLengthCM is the total length of the bridge wire.
	WireLengthCM = 100.0
	// WireHalfLengthCM is the midpoint, where an equal-gap bridge balances.
	WireHalfLengthCM = WireLengthCM / 2

	// MaxNeedleDeflection clamps the displayed galvanometer needle.
	// The unclamped deflection is what the balance predicate tests.
	MaxNeedleDeflection = 45.0

	// DefaultSensitivity converts cm-off-balance into needle units.
	DefaultSensitivity = 3.0
	// DefaultTolerance is the |deflection| band treated as balanced.
	DefaultTolerance = 0.01
)

// Circuit holds the live inputs to the balance model. It is owned by
// the session controller and passed down by value.
type Circuit struct {
	KnownResistance     float64             `json:"knownResistance"`     // ohm, resistance-box setting
	TrueUnknown         float64             `json:"trueUnknown"`         // ohm, hidden ground truth
	RatioArmP           float64             `json:"ratioArmP"`           // ohm, fixed
	RatioArmQ           float64             `json:"ratioArmQ"`           // ohm, fixed
	ResistivityPerCM    float64             `json:"resistivityPerCM"`    // ohm/cm, ground truth, > 0
	JockeyPositionCM    float64             `json:"jockeyPositionCM"`    // cm along the wire
	Swapped             bool                `json:"swapped"`             // gap contents exchanged
	Mode                core.ExperimentMode `json:"mode"`
}

// Gaps resolves the left and right gap resistances for the current
// mode and swap flag. The unswapped placement follows the usual bench
// layout: the unknown sits in the left gap with the resistance box on
// the right, while in resistivity mode the box sits on the left against
// a near-zero reference strip. The swap flag exchanges the gaps.
func (c Circuit) Gaps() (left, right float64) {
	if c.Mode == core.ModeFindUnknownResistance {
		if c.Swapped {
			return c.KnownResistance, c.TrueUnknown
		}
		return c.TrueUnknown, c.KnownResistance
	}
	if c.Swapped {
		return 0, c.KnownResistance
	}
	return c.KnownResistance, 0
}

// BalancePosition computes the theoretical null point for the given gap
// resistances. With equal ratio arms the wire behaves as a resistor of
// 2*rho*half total, and the null sits at:
//
//	pos = half + (right - left) / (2 * rho)
//
// rho must be positive; it is a fixed internal constant, never
// user-reachable.
func BalancePosition(left, right, rhoPerCM float64) float64 {
	return WireHalfLengthCM + (right-left)/(2*rhoPerCM)
}

// BalancePosition computes the null point for the circuit's current
// gap assignment.
func (c Circuit) BalancePosition() float64 {
	left, right := c.Gaps()
	return BalancePosition(left, right, c.ResistivityPerCM)
}

// Deflection is the signed galvanometer signal for a jockey position.
// Sign tells which side of the null point the jockey sits on.
func Deflection(jockeyCM, balanceCM, sensitivity float64) float64 {
	return (jockeyCM - balanceCM) * sensitivity
}

// Deflection computes the unclamped galvanometer signal for the circuit.
func (c Circuit) Deflection(sensitivity float64) float64 {
	return Deflection(c.JockeyPositionCM, c.BalancePosition(), sensitivity)
}

// ClampNeedle limits a deflection to the displayable needle range.
func ClampNeedle(deflection float64) float64 {
	if deflection > MaxNeedleDeflection {
		return MaxNeedleDeflection
	}
	if deflection < -MaxNeedleDeflection {
		return -MaxNeedleDeflection
	}
	return deflection
}

// Balanced reports whether the unclamped deflection is inside the
// tolerance band. This predicate gates the recording action.
func Balanced(deflection, tolerance float64) bool {
	return math.Abs(deflection) < tolerance
}
