package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
)

// SuggestionAdapter implements ports.SuggestionClient against an OpenAI
// compatible chat-completions endpoint.
type SuggestionAdapter struct {
	config Config
	client ChatClient
}

// NewSuggestionAdapter creates the adapter, building the HTTP client
// from config.
func NewSuggestionAdapter(config Config) (*SuggestionAdapter, error) {
	client, err := newChatClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &SuggestionAdapter{config: config, client: client}, nil
}

// NewSuggestionAdapterWithClient wires an explicit chat client; used by
// tests with MockChatClient.
func NewSuggestionAdapterWithClient(config Config, client ChatClient) *SuggestionAdapter {
	return &SuggestionAdapter{config: config, client: client}
}

// Suggest relays one measurement to the model and returns its advisory
// text. One-shot: no retry, no response parsing beyond non-emptiness.
func (a *SuggestionAdapter) Suggest(ctx context.Context, req ports.SuggestionRequest) (*ports.SuggestionResponse, error) {
	prompt := buildPrompt(req)
	text, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("suggestion service returned empty text")
	}
	return &ports.SuggestionResponse{Suggestions: text}, nil
}

func buildPrompt(req ports.SuggestionRequest) string {
	var b strings.Builder
	b.WriteString("A student is using a Carey Foster bridge simulator and recorded this measurement:\n")
	fmt.Fprintf(&b, "- known resistance R: %.4g ohm\n", req.KnownResistance)
	fmt.Fprintf(&b, "- balance length, normal gaps: %.2f cm\n", req.BalanceLength1)
	fmt.Fprintf(&b, "- balance length, gaps swapped: %.2f cm\n", req.BalanceLength2)
	fmt.Fprintf(&b, "- rough single-reading estimate of the unknown: %.4g ohm\n", req.ApproximateUnknownResistance)
	b.WriteString("\nSuggest how to improve the measurement procedure and what to check next. Keep it under 120 words.")
	return b.String()
}
