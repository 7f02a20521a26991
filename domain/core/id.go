package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ReadingID  ID
	SessionID  ID
	SnapshotID ID
)

// String conversions for domain IDs
func (id ReadingID) String() string  { return ID(id).String() }
func (id SessionID) String() string  { return ID(id).String() }
func (id SnapshotID) String() string { return ID(id).String() }

// ParseReadingID parses a string into ReadingID
func ParseReadingID(s string) (ReadingID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid reading ID %q", s)
	}
	return ReadingID(s), nil
}

// ParseSnapshotID parses a string into SnapshotID
func ParseSnapshotID(s string) (SnapshotID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid snapshot ID %q", s)
	}
	return SnapshotID(s), nil
}

// ExperimentMode selects which analysis the session is running.
// Each mode owns an independent reading log.
type ExperimentMode string

const (
	// ModeFindUnknownResistance estimates the hidden resistor against
	// the resistance box.
	ModeFindUnknownResistance ExperimentMode = "find_unknown_resistance"
	// ModeFindResistivity estimates the wire's resistance per unit length
	// against a near-zero reference strip.
	ModeFindResistivity ExperimentMode = "find_resistivity"
)

// ParseExperimentMode parses a string into ExperimentMode
func ParseExperimentMode(s string) (ExperimentMode, error) {
	switch ExperimentMode(s) {
	case ModeFindUnknownResistance, ModeFindResistivity:
		return ExperimentMode(s), nil
	default:
		return "", fmt.Errorf("unknown experiment mode: %q", s)
	}
}

// Modes lists the experiment modes in display order.
func Modes() []ExperimentMode {
	return []ExperimentMode{ModeFindUnknownResistance, ModeFindResistivity}
}
