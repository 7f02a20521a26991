package ports

import "context"

// SuggestionRequest is the payload sent to the text-generation service.
// approximateUnknownResistance uses the single-reading approximation,
// not the two-reading estimate.
type SuggestionRequest struct {
	KnownResistance              float64 `json:"knownResistance"`
	BalanceLength1               float64 `json:"balanceLength1"`
	BalanceLength2               float64 `json:"balanceLength2"`
	ApproximateUnknownResistance float64 `json:"approximateUnknownResistance"`
}

// SuggestionResponse carries freeform advisory text. The core does not
// parse it beyond non-emptiness.
type SuggestionResponse struct {
	Suggestions string `json:"suggestions"`
}

// SuggestionClient is the external text-generation collaborator. Calls
// are one-shot: errors surface as a notification and are never retried
// by the core. Timeout policy lives in the adapter.
type SuggestionClient interface {
	Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionResponse, error)
}
