package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sridharshinicloud/carey-foster-bridge-new/adapters/llm"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	apperrors "github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
)

func suggestionReading() measure.Reading {
	return measure.Reading{
		ID:              core.ReadingID(core.NewID()),
		Mode:            core.ModeFindUnknownResistance,
		KnownResistance: 5.0,
		NormalLengthCM:  measure.Float64Ptr(48.0),
		SwappedLengthCM: measure.Float64Ptr(52.0),
		RecordedAt:      core.Now(),
	}
}

func newSuggestionService(mock *llm.MockChatClient) *SuggestionService {
	adapter := llm.NewSuggestionAdapterWithClient(llm.Config{Model: "gpt-4o-mini"}, mock)
	return NewSuggestionService(adapter, internal.NewDefaultLogger())
}

func TestSuggestionService_Disabled(t *testing.T) {
	svc := NewSuggestionService(nil, internal.NewDefaultLogger())
	assert.False(t, svc.Enabled())

	_, err := svc.SuggestForReading(context.Background(), suggestionReading())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestSuggestionService_RequiresCompleteReading(t *testing.T) {
	svc := newSuggestionService(&llm.MockChatClient{Response: "advice"})
	r := suggestionReading()
	r.SwappedLengthCM = nil

	_, err := svc.SuggestForReading(context.Background(), r)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestSuggestionService_RelaysAdvice(t *testing.T) {
	mock := &llm.MockChatClient{Response: "Try a larger R so the null moves toward the middle."}
	svc := newSuggestionService(mock)
	assert.True(t, svc.Enabled())

	text, err := svc.SuggestForReading(context.Background(), suggestionReading())
	require.NoError(t, err)
	assert.Equal(t, "Try a larger R so the null moves toward the middle.", text)
	require.Len(t, mock.Prompts, 1)
	// The rough estimate uses the single-reading formula on l1.
	assert.Contains(t, mock.Prompts[0], "4.615")
}

func TestSuggestionService_WrapsClientFailure(t *testing.T) {
	svc := newSuggestionService(&llm.MockChatClient{Error: errors.New("boom")})

	_, err := svc.SuggestForReading(context.Background(), suggestionReading())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}
