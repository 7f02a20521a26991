// Package app wires the pure domain to the ports. Services here own
// the mutable session state and serialize access to it; everything they
// call below is side-effect-free.
package app

import (
	"sync"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
)

// SimulatorService is the single owner of the experiment session. HTTP
// handlers call it concurrently, so every access goes through the lock.
type SimulatorService struct {
	mu     sync.Mutex
	sess   *session.Session
	cfg    session.Config
	logger *internal.Logger
}

// NewSimulatorService starts a fresh session from config.
func NewSimulatorService(cfg session.Config, logger *internal.Logger) *SimulatorService {
	return &SimulatorService{
		sess:   session.New(cfg),
		cfg:    cfg,
		logger: logger.WithPrefix("simulator"),
	}
}

// StateView is the live panel payload: everything the UI renders each
// frame. The theoretical balance position is deliberately absent - the
// deflection signal is all the student gets.
type StateView struct {
	SessionID         core.SessionID      `json:"sessionId"`
	Mode              core.ExperimentMode `json:"mode"`
	KnownResistance   float64             `json:"knownResistance"`
	JockeyPositionCM  float64             `json:"jockeyPositionCM"`
	Swapped           bool                `json:"swapped"`
	Deflection        float64             `json:"deflection"`
	Needle            float64             `json:"needle"`
	Balanced          bool                `json:"balanced"`
	Readings          []measure.Reading   `json:"readings"`
	Result            measure.Result      `json:"result"`
	Revealed          bool                `json:"revealed"`
	TrueValue         *float64            `json:"trueValue,omitempty"`
	CompleteCount     int                 `json:"completeCount"`
	RevealMinReadings int                 `json:"revealMinReadings"`
}

// State assembles the live view for the active mode.
func (s *SimulatorService) State() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *SimulatorService) stateLocked() StateView {
	mode := s.sess.Mode()
	view := StateView{
		SessionID:         s.sess.ID(),
		Mode:              mode,
		KnownResistance:   s.sess.Circuit().KnownResistance,
		JockeyPositionCM:  s.sess.Circuit().JockeyPositionCM,
		Swapped:           s.sess.Circuit().Swapped,
		Deflection:        s.sess.Deflection(),
		Needle:            s.sess.Needle(),
		Balanced:          s.sess.Balanced(),
		Readings:          s.sess.Readings(mode),
		Result:            s.sess.Result(mode),
		Revealed:          s.sess.Revealed(mode),
		CompleteCount:     s.sess.CompleteCount(mode),
		RevealMinReadings: s.cfg.RevealMinReadings,
	}
	if view.Revealed {
		tv := s.sess.TrueValue(mode)
		view.TrueValue = &tv
	}
	return view
}

// Adjust applies any combination of control changes in one call.
type Adjust struct {
	KnownResistance  *float64             `json:"knownResistance,omitempty"`
	JockeyPositionCM *float64             `json:"jockeyPositionCM,omitempty"`
	Swapped          *bool                `json:"swapped,omitempty"`
	Mode             *core.ExperimentMode `json:"mode,omitempty"`
}

// Apply validates and applies the adjustments, returning the new state.
func (s *SimulatorService) Apply(adj Adjust) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if adj.Mode != nil {
		if err := s.sess.SetMode(*adj.Mode); err != nil {
			return StateView{}, errors.InvalidInput(err.Error())
		}
	}
	if adj.KnownResistance != nil {
		if err := s.sess.SetKnownResistance(*adj.KnownResistance); err != nil {
			return StateView{}, errors.InvalidInput(err.Error())
		}
	}
	if adj.JockeyPositionCM != nil {
		if err := s.sess.SetJockeyPosition(*adj.JockeyPositionCM); err != nil {
			return StateView{}, errors.InvalidInput(err.Error())
		}
	}
	if adj.Swapped != nil {
		s.sess.SetSwapped(*adj.Swapped)
	}
	return s.stateLocked(), nil
}

// Record captures the current jockey position as a balance length.
// Rejections come back as RECORDING_REJECTED and change nothing.
func (s *SimulatorService) Record() (measure.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.sess.RecordBalance()
	if err != nil {
		if core.IsRecordingError(err) {
			return measure.Reading{}, errors.RecordingRejected(err)
		}
		return measure.Reading{}, err
	}
	s.logger.Info("recorded balance length %.2f cm at R=%.4g ohm (swapped=%v)",
		s.sess.Circuit().JockeyPositionCM, r.KnownResistance, s.sess.Circuit().Swapped)
	return r, nil
}

// DeleteReading removes one reading from the active mode's log.
func (s *SimulatorService) DeleteReading(id core.ReadingID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.DeleteReading(id); err != nil {
		return errors.NotFound("reading")
	}
	return nil
}

// Reveal unlocks deviation reporting for the active mode.
func (s *SimulatorService) Reveal() (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Reveal(); err != nil {
		return StateView{}, errors.InvalidInput(err.Error())
	}
	return s.stateLocked(), nil
}

// Reset clears both logs and starts the bench over.
func (s *SimulatorService) Reset() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Reset()
	s.logger.Info("experiment reset")
	return s.stateLocked()
}

// Reading looks up one reading in the active mode's log.
func (s *SimulatorService) Reading(id core.ReadingID) (measure.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.sess.Readings(s.sess.Mode()) {
		if r.ID == id {
			return r, nil
		}
	}
	return measure.Reading{}, errors.NotFound("reading")
}

// Snapshot hands the full session off to the report flow.
func (s *SimulatorService) Snapshot(radiusCM, lengthCM *float64) session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Snapshot(radiusCM, lengthCM)
}
