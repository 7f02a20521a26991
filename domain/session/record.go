package session

import (
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
)

// RecordBalance captures the current jockey position as a balance
// length for the active known resistance. The action is gated by the
// balance predicate and by the per-R state machine: a reading moves
// Empty -> Partial -> Complete, and a third recording at the same R is
// rejected rather than silently overwritten. Rejections leave the log
// unchanged.
func (s *Session) RecordBalance() (measure.Reading, error) {
	if !s.Balanced() {
		return measure.Reading{}, core.ErrNotBalanced
	}

	mode := s.circuit.Mode
	length := s.circuit.JockeyPositionCM
	log := s.logs[mode]

	for i := range log {
		if log[i].KnownResistance != s.circuit.KnownResistance {
			continue
		}
		if log[i].Complete() {
			return measure.Reading{}, core.ErrPairComplete
		}
		slot := &log[i].NormalLengthCM
		if s.circuit.Swapped {
			slot = &log[i].SwappedLengthCM
		}
		if *slot != nil {
			return measure.Reading{}, core.ErrSlotAlreadyFilled
		}
		*slot = measure.Float64Ptr(length)
		s.logs[mode] = log
		return log[i], nil
	}

	r := measure.Reading{
		ID:              core.ReadingID(core.NewID()),
		Mode:            mode,
		KnownResistance: s.circuit.KnownResistance,
		RecordedAt:      core.Now(),
	}
	if s.circuit.Swapped {
		r.SwappedLengthCM = measure.Float64Ptr(length)
	} else {
		r.NormalLengthCM = measure.Float64Ptr(length)
	}
	s.logs[mode] = append(log, r)
	return r, nil
}

// DeleteReading removes one reading from the active mode's log.
func (s *Session) DeleteReading(id core.ReadingID) error {
	mode := s.circuit.Mode
	log := s.logs[mode]
	for i := range log {
		if log[i].ID == id {
			s.logs[mode] = append(log[:i], log[i+1:]...)
			return nil
		}
	}
	return core.NewNotFoundError("reading", id.String())
}

// ResetMode clears one mode's log and its reveal flag.
func (s *Session) ResetMode(mode core.ExperimentMode) {
	delete(s.logs, mode)
	delete(s.revealed, mode)
}

// Reset clears both logs and reveal flags. Ground truths are kept; a
// fresh session is the way to re-randomize them.
func (s *Session) Reset() {
	s.logs = map[core.ExperimentMode][]measure.Reading{}
	s.revealed = map[core.ExperimentMode]bool{}
}
