// Package session owns the experiment state: the live circuit
// configuration, one reading log per experiment mode, and the reveal
// gating policy. All mutation happens through user-triggered sequential
// actions; the computations it delegates to are pure.
package session

import (
	"math/rand"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/bridge"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
)

// Config carries the policy constants and ground truths for a session.
type Config struct {
	RatioArmOhms      float64 // both arms, conventionally equal
	ResistivityPerCM  float64 // ohm/cm ground truth, > 0
	TrueUnknownOhms   float64 // hidden ground truth
	InitialKnownOhms  float64
	MinKnownOhms      float64
	MaxKnownOhms      float64
	Tolerance         float64 // |deflection| band treated as balanced
	Sensitivity       float64 // deflection units per cm off balance
	RevealMinReadings int     // complete readings required before reveal
}

// DefaultConfig returns the stock bench setup.
func DefaultConfig() Config {
	return Config{
		RatioArmOhms:      10.0,
		ResistivityPerCM:  0.02,
		TrueUnknownOhms:   5.0,
		InitialKnownOhms:  5.0,
		MinKnownOhms:      0.1,
		MaxKnownOhms:      10.0,
		Tolerance:         bridge.DefaultTolerance,
		Sensitivity:       bridge.DefaultSensitivity,
		RevealMinReadings: 4,
	}
}

// Randomize jitters the hidden ground truths so repeat sessions cannot
// reuse a remembered answer. The known-resistance bounds stay put.
func Randomize(cfg Config, rng *rand.Rand) Config {
	cfg.TrueUnknownOhms = cfg.TrueUnknownOhms * (0.8 + 0.4*rng.Float64())
	cfg.ResistivityPerCM = cfg.ResistivityPerCM * (0.9 + 0.2*rng.Float64())
	return cfg
}

// Session is the top-level controller state for one experiment run.
type Session struct {
	id       core.SessionID
	cfg      Config
	circuit  bridge.Circuit
	logs     map[core.ExperimentMode][]measure.Reading
	revealed map[core.ExperimentMode]bool
	started  core.Timestamp
}

// New creates a session with the jockey parked at the wire start.
func New(cfg Config) *Session {
	known := cfg.InitialKnownOhms
	if known < cfg.MinKnownOhms {
		known = cfg.MinKnownOhms
	}
	if known > cfg.MaxKnownOhms {
		known = cfg.MaxKnownOhms
	}
	return &Session{
		id:  core.SessionID(core.NewID()),
		cfg: cfg,
		circuit: bridge.Circuit{
			KnownResistance:  known,
			TrueUnknown:      cfg.TrueUnknownOhms,
			RatioArmP:        cfg.RatioArmOhms,
			RatioArmQ:        cfg.RatioArmOhms,
			ResistivityPerCM: cfg.ResistivityPerCM,
			Mode:             core.ModeFindUnknownResistance,
		},
		logs:     map[core.ExperimentMode][]measure.Reading{},
		revealed: map[core.ExperimentMode]bool{},
		started:  core.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() core.SessionID { return s.id }

// Circuit returns the live circuit configuration.
func (s *Session) Circuit() bridge.Circuit { return s.circuit }

// Mode returns the active experiment mode.
func (s *Session) Mode() core.ExperimentMode { return s.circuit.Mode }

// SetMode switches the analysis mode. Each mode keeps its own log;
// switching never mixes or discards the other mode's data.
func (s *Session) SetMode(m core.ExperimentMode) error {
	if _, err := core.ParseExperimentMode(string(m)); err != nil {
		return err
	}
	s.circuit.Mode = m
	return nil
}

// SetKnownResistance adjusts the resistance box within its bounds.
func (s *Session) SetKnownResistance(ohms float64) error {
	if ohms < s.cfg.MinKnownOhms || ohms > s.cfg.MaxKnownOhms {
		return core.NewRangeError(core.ErrResistanceOutOfRange, ohms, s.cfg.MinKnownOhms, s.cfg.MaxKnownOhms)
	}
	s.circuit.KnownResistance = ohms
	return nil
}

// SetJockeyPosition moves the sliding contact along the wire.
func (s *Session) SetJockeyPosition(cm float64) error {
	if cm < 0 || cm > bridge.WireLengthCM {
		return core.NewRangeError(core.ErrJockeyOutOfRange, cm, 0, bridge.WireLengthCM)
	}
	s.circuit.JockeyPositionCM = cm
	return nil
}

// SetSwapped exchanges (or restores) the two gap contents.
func (s *Session) SetSwapped(swapped bool) { s.circuit.Swapped = swapped }

// ToggleSwap flips the gap exchange and returns the new flag.
func (s *Session) ToggleSwap() bool {
	s.circuit.Swapped = !s.circuit.Swapped
	return s.circuit.Swapped
}

// Deflection returns the unclamped galvanometer signal.
func (s *Session) Deflection() float64 {
	return s.circuit.Deflection(s.cfg.Sensitivity)
}

// Needle returns the clamped deflection for the indicator display.
func (s *Session) Needle() float64 {
	return bridge.ClampNeedle(s.Deflection())
}

// Balanced reports whether a recording action is currently permitted.
func (s *Session) Balanced() bool {
	return bridge.Balanced(s.Deflection(), s.cfg.Tolerance)
}

// Readings returns a copy of the log for a mode.
func (s *Session) Readings(mode core.ExperimentMode) []measure.Reading {
	log := s.logs[mode]
	out := make([]measure.Reading, len(log))
	copy(out, log)
	return out
}

// CompleteCount counts readings with both lengths recorded.
func (s *Session) CompleteCount(mode core.ExperimentMode) int {
	n := 0
	for _, r := range s.logs[mode] {
		if r.Complete() {
			n++
		}
	}
	return n
}
