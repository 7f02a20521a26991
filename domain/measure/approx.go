package measure

import (
	"math"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/bridge"
)

// ApproximateUnknown is the single-reading approximation used when
// building the suggestion-service request. It treats the bridge as a
// plain Wheatstone divider at the observed balance length:
//
//	X ~= R * l / (L - l)
//
// Deliberately cruder than the two-reading swap estimate; the advisory
// text is expected to comment on the gap between the two.
func ApproximateUnknown(knownResistance, balanceLengthCM float64) float64 {
	remainder := bridge.WireLengthCM - balanceLengthCM
	if remainder <= 0 {
		return knownResistance
	}
	return knownResistance * balanceLengthCM / remainder
}

// SpecificResistance derives S = pi * r^2 * X / L in ohm-metre for the
// lab report, converting the supplied wire geometry from centimetres.
func SpecificResistance(unknownOhms, radiusCM, lengthCM float64) float64 {
	if lengthCM <= 0 {
		return 0
	}
	radiusM := radiusCM / 100
	lengthM := lengthCM / 100
	return math.Pi * radiusM * radiusM * unknownOhms / lengthM
}
