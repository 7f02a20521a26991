package core

import (
	"errors"
	"testing"
)

func TestIsRecordingError(t *testing.T) {
	for _, err := range []error{ErrNotBalanced, ErrPairComplete, ErrSlotAlreadyFilled} {
		if !IsRecordingError(err) {
			t.Errorf("IsRecordingError(%v) = false, want true", err)
		}
	}
	if IsRecordingError(ErrRevealLocked) {
		t.Error("reveal gating is not a recording rejection")
	}
	if IsRecordingError(errors.New("other")) {
		t.Error("unrelated error classified as recording rejection")
	}
}

func TestNotFoundWrapping(t *testing.T) {
	err := NewNotFoundError("reading", "abc")
	if !IsNotFoundError(err) {
		t.Errorf("IsNotFoundError(%v) = false, want true", err)
	}
	if !IsNotFoundError(ErrSnapshotNotFound) {
		t.Error("ErrSnapshotNotFound should match ErrNotFound")
	}
}

func TestNewRangeError(t *testing.T) {
	err := NewRangeError(ErrJockeyOutOfRange, 120, 0, 100)
	if !errors.Is(err, ErrJockeyOutOfRange) {
		t.Errorf("range error lost its sentinel: %v", err)
	}
}

func TestParseExperimentMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseExperimentMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseExperimentMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseExperimentMode("find_inductance"); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestParseIDsRejectGarbage(t *testing.T) {
	if _, err := ParseReadingID("not-a-uuid"); err == nil {
		t.Error("ParseReadingID accepted a non-UUID")
	}
	if _, err := ParseSnapshotID(""); err == nil {
		t.Error("ParseSnapshotID accepted an empty string")
	}
	id := NewID()
	if _, err := ParseReadingID(id.String()); err != nil {
		t.Errorf("ParseReadingID rejected a generated ID: %v", err)
	}
}
