package app

import (
	"context"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
)

// SuggestionService relays one recorded measurement to the external
// text-generation collaborator. Fire-and-forget from the core's view:
// failures become a one-shot notification and never touch the log.
type SuggestionService struct {
	client ports.SuggestionClient
	logger *internal.Logger
}

// NewSuggestionService wires the client; pass nil to disable the
// feature entirely.
func NewSuggestionService(client ports.SuggestionClient, logger *internal.Logger) *SuggestionService {
	return &SuggestionService{client: client, logger: logger.WithPrefix("suggestions")}
}

// Enabled reports whether a collaborator is configured.
func (s *SuggestionService) Enabled() bool { return s.client != nil }

// SuggestForReading builds the request from a complete reading and
// returns the advisory text. The approximate unknown uses the
// single-reading formula, not the two-reading estimate.
func (s *SuggestionService) SuggestForReading(ctx context.Context, r measure.Reading) (string, error) {
	if s.client == nil {
		return "", errors.InvalidInput("suggestion service is not configured")
	}
	if !r.Complete() {
		return "", errors.InvalidInput("suggestions need both balance lengths; record the swapped reading first")
	}

	req := ports.SuggestionRequest{
		KnownResistance:              r.KnownResistance,
		BalanceLength1:               *r.NormalLengthCM,
		BalanceLength2:               *r.SwappedLengthCM,
		ApproximateUnknownResistance: measure.ApproximateUnknown(r.KnownResistance, *r.NormalLengthCM),
	}
	resp, err := s.client.Suggest(ctx, req)
	if err != nil {
		s.logger.Warn("suggestion fetch failed: %v", err)
		return "", errors.ExternalServiceError("suggestion", err)
	}
	return resp.Suggestions, nil
}
