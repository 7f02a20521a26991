package measure

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Undetermined reasons surfaced to the user. These are sentinel states,
// not errors: recording more data always recovers.
const (
	ReasonNeedsPair    = "requires one normal and one swapped reading at the same R"
	ReasonEqualLengths = "balance points cannot be the same"
	ReasonNoReadings   = "no readings recorded yet"
)

// Result is the reducer output. When no usable pair exists it carries
// Determined=false and a descriptive reason instead of a value.
type Result struct {
	Determined   bool      `json:"determined"`
	Value        float64   `json:"value,omitempty"`
	PairCount    int       `json:"pairCount"`
	Estimates    []float64 `json:"estimates,omitempty"`
	DeviationPct *float64  `json:"deviationPct,omitempty"`
	Reason       string    `json:"reason,omitempty"`
}

// ReduceUnknown estimates the unknown resistance X from the reading log
// using the two-reading swap method:
//
//	X = R + rho * (l_swapped - l_normal)
//
// per usable pair, averaged across pairs. Unpaired readings are
// excluded, not an error.
func ReduceUnknown(readings []Reading, rhoPerCM float64) Result {
	if len(readings) == 0 {
		return undetermined(ReasonNoReadings)
	}
	var estimates []float64
	for _, r := range readings {
		if !r.Complete() {
			continue
		}
		x := r.KnownResistance + rhoPerCM*(*r.SwappedLengthCM-*r.NormalLengthCM)
		estimates = append(estimates, x)
	}
	if len(estimates) == 0 {
		return undetermined(ReasonNeedsPair)
	}
	return aggregate(estimates)
}

// ReduceResistivity estimates the wire's resistance per unit length:
//
//	rho = R / (l_swapped - l_normal)
//
// Pairs whose two balance lengths coincide are excluded; if that leaves
// nothing usable the result explains why.
func ReduceResistivity(readings []Reading) Result {
	if len(readings) == 0 {
		return undetermined(ReasonNoReadings)
	}
	var estimates []float64
	sawEqualPair := false
	sawIncomplete := false
	for _, r := range readings {
		if !r.Complete() {
			sawIncomplete = true
			continue
		}
		diff := *r.SwappedLengthCM - *r.NormalLengthCM
		if diff == 0 {
			sawEqualPair = true
			continue
		}
		estimates = append(estimates, r.KnownResistance/diff)
	}
	if len(estimates) == 0 {
		if sawEqualPair {
			return undetermined(ReasonEqualLengths)
		}
		if sawIncomplete {
			return undetermined(ReasonNeedsPair)
		}
		return undetermined(ReasonNoReadings)
	}
	return aggregate(estimates)
}

// WithDeviation returns a copy of the result annotated with percentage
// deviation from the true value. Only called once the user has revealed
// the ground truth.
func (r Result) WithDeviation(trueValue float64) Result {
	if !r.Determined || trueValue == 0 {
		return r
	}
	dev := (r.Value - trueValue) / trueValue * 100
	r.DeviationPct = &dev
	return r
}

func aggregate(estimates []float64) Result {
	mean, err := stats.Mean(estimates)
	if err != nil || math.IsNaN(mean) {
		return undetermined(ReasonNeedsPair)
	}
	return Result{
		Determined: true,
		Value:      mean,
		PairCount:  len(estimates),
		Estimates:  estimates,
	}
}

func undetermined(reason string) Result {
	return Result{Determined: false, Reason: reason}
}
