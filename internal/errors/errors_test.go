package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := InvalidInput("jockey position outside the wire")
	wrapped := Wrap(base, "failed to apply adjustment")
	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to apply adjustment")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(errors.New("dial tcp: refused"), "failed to connect to database")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestRecordingRejectedUnwraps(t *testing.T) {
	cause := errors.New("both balance lengths already exist; please change R")
	err := RecordingRejected(cause)
	assert.Equal(t, CodeRecordingRejected, GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Message)
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(errors.New("plain")))
}
