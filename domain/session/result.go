package session

import (
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
)

// TrueValue returns the hidden ground truth a mode's estimate is judged
// against.
func (s *Session) TrueValue(mode core.ExperimentMode) float64 {
	if mode == core.ModeFindResistivity {
		return s.cfg.ResistivityPerCM
	}
	return s.cfg.TrueUnknownOhms
}

// Reveal unlocks deviation reporting for the active mode. Gated by the
// configured minimum of complete readings.
func (s *Session) Reveal() error {
	mode := s.circuit.Mode
	if s.CompleteCount(mode) < s.cfg.RevealMinReadings {
		return core.ErrRevealLocked
	}
	s.revealed[mode] = true
	return nil
}

// Revealed reports whether the true value has been unlocked for a mode.
func (s *Session) Revealed(mode core.ExperimentMode) bool {
	return s.revealed[mode]
}

// Result reduces a mode's log to its current estimate. Deviation from
// the true value is attached only after an explicit reveal.
func (s *Session) Result(mode core.ExperimentMode) measure.Result {
	var res measure.Result
	switch mode {
	case core.ModeFindResistivity:
		res = measure.ReduceResistivity(s.logs[mode])
	default:
		res = measure.ReduceUnknown(s.logs[mode], s.cfg.ResistivityPerCM)
	}
	if s.revealed[mode] {
		res = res.WithDeviation(s.TrueValue(mode))
	}
	return res
}

// Snapshot is the serialized hand-off consumed by the report view. The
// report re-derives its aggregates through the same reducer, so both
// views always agree.
type Snapshot struct {
	ID               core.SnapshotID                           `json:"id"`
	SessionID        core.SessionID                            `json:"sessionId"`
	CreatedAt        core.Timestamp                            `json:"createdAt"`
	TrueUnknownOhms  float64                                   `json:"trueUnknownOhms"`
	ResistivityPerCM float64                                   `json:"resistivityPerCM"`
	Logs             map[core.ExperimentMode][]measure.Reading `json:"logs"`
	WireRadiusCM     *float64                                  `json:"wireRadiusCM,omitempty"`
	WireLengthCM     *float64                                  `json:"wireLengthCM,omitempty"`
}

// Snapshot captures both logs plus the ground truths. Wire geometry is
// optional and supplied by the user at report time.
func (s *Session) Snapshot(radiusCM, lengthCM *float64) Snapshot {
	logs := map[core.ExperimentMode][]measure.Reading{}
	for _, m := range core.Modes() {
		logs[m] = s.Readings(m)
	}
	return Snapshot{
		ID:               core.SnapshotID(core.NewID()),
		SessionID:        s.id,
		CreatedAt:        core.Now(),
		TrueUnknownOhms:  s.cfg.TrueUnknownOhms,
		ResistivityPerCM: s.cfg.ResistivityPerCM,
		Logs:             logs,
		WireRadiusCM:     radiusCM,
		WireLengthCM:     lengthCM,
	}
}
