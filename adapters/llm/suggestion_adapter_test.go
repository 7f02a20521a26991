package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
)

func testRequest() ports.SuggestionRequest {
	return ports.SuggestionRequest{
		KnownResistance:              5.0,
		BalanceLength1:               48.0,
		BalanceLength2:               52.0,
		ApproximateUnknownResistance: 4.62,
	}
}

func TestSuggestionAdapter_Suggest(t *testing.T) {
	mock := &MockChatClient{Response: "Bring R closer to the expected unknown."}
	adapter := NewSuggestionAdapterWithClient(Config{Model: "gpt-4o-mini", MaxTokens: 256}, mock)

	resp, err := adapter.Suggest(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bring R closer to the expected unknown.", resp.Suggestions)

	// All four measurement fields must reach the prompt.
	require.Len(t, mock.Prompts, 1)
	prompt := mock.Prompts[0]
	for _, want := range []string{"5 ohm", "48.00 cm", "52.00 cm", "4.62 ohm"} {
		assert.Contains(t, prompt, want)
	}
}

func TestSuggestionAdapter_TrimsWhitespace(t *testing.T) {
	mock := &MockChatClient{Response: "  advice\n"}
	adapter := NewSuggestionAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	resp, err := adapter.Suggest(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "advice", resp.Suggestions)
}

func TestSuggestionAdapter_PropagatesClientError(t *testing.T) {
	mock := &MockChatClient{Error: errors.New("rate limited")}
	adapter := NewSuggestionAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	_, err := adapter.Suggest(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSuggestionAdapter_RejectsEmptyResponse(t *testing.T) {
	mock := &MockChatClient{Response: "   \n\t"}
	adapter := NewSuggestionAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	_, err := adapter.Suggest(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNewSuggestionAdapter_RequiresAPIKey(t *testing.T) {
	_, err := NewSuggestionAdapter(Config{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "API key"))
}
