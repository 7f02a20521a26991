// Package measure holds the reading log model and the measurement
// reducer: the pure functions that turn recorded balance lengths back
// into an estimate of the unknown resistance or the wire's resistivity.
package measure

import (
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
)

// ReadingState tracks how far a reading has progressed.
type ReadingState string

const (
	ReadingEmpty    ReadingState = "empty"
	ReadingPartial  ReadingState = "partial"
	ReadingComplete ReadingState = "complete"
)

// Reading is the canonical measurement record: one record per known
// resistance with two optional length slots. Historical data sometimes
// arrives as two sibling records distinguished by a swap flag; Normalize
// folds that shape into this one at the boundary.
type Reading struct {
	ID              core.ReadingID      `json:"id"`
	Mode            core.ExperimentMode `json:"mode"`
	KnownResistance float64             `json:"knownResistance"` // ohm
	NormalLengthCM  *float64            `json:"balanceLength1,omitempty"`
	SwappedLengthCM *float64            `json:"balanceLength2,omitempty"`
	RecordedAt      core.Timestamp      `json:"recordedAt"`
}

// State returns where the reading sits in its lifecycle.
func (r Reading) State() ReadingState {
	switch {
	case r.NormalLengthCM != nil && r.SwappedLengthCM != nil:
		return ReadingComplete
	case r.NormalLengthCM != nil || r.SwappedLengthCM != nil:
		return ReadingPartial
	default:
		return ReadingEmpty
	}
}

// Complete reports whether both balance lengths are known.
func (r Reading) Complete() bool {
	return r.State() == ReadingComplete
}

// Observation is the alternative record shape: a single balance length
// plus the swap flag under which it was measured.
type Observation struct {
	KnownResistance float64 `json:"knownResistance"`
	BalanceLengthCM float64 `json:"balanceLength"`
	Swapped         bool    `json:"swapped"`
}

// Normalize merges sibling observations that share a known resistance
// into canonical readings. A later observation for an already-filled
// slot at the same R starts a fresh reading rather than overwriting.
func Normalize(mode core.ExperimentMode, obs []Observation) []Reading {
	var readings []Reading
	for _, o := range obs {
		merged := false
		for i := range readings {
			if readings[i].KnownResistance != o.KnownResistance {
				continue
			}
			if o.Swapped && readings[i].SwappedLengthCM == nil {
				l := o.BalanceLengthCM
				readings[i].SwappedLengthCM = &l
				merged = true
				break
			}
			if !o.Swapped && readings[i].NormalLengthCM == nil {
				l := o.BalanceLengthCM
				readings[i].NormalLengthCM = &l
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		r := Reading{
			ID:              core.ReadingID(core.NewID()),
			Mode:            mode,
			KnownResistance: o.KnownResistance,
			RecordedAt:      core.Now(),
		}
		l := o.BalanceLengthCM
		if o.Swapped {
			r.SwappedLengthCM = &l
		} else {
			r.NormalLengthCM = &l
		}
		readings = append(readings, r)
	}
	return readings
}

// Float64Ptr is a convenience for building readings in callers and tests.
func Float64Ptr(v float64) *float64 { return &v }
