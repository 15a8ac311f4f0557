package llm

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
)

// DisabledExtractor stands in when no LLM API key is configured. The
// rest of the app runs normally; only extraction reports failure.
type DisabledExtractor struct{}

// NewDisabledExtractor creates the stand-in.
func NewDisabledExtractor() *DisabledExtractor {
	return &DisabledExtractor{}
}

func (e *DisabledExtractor) Extract(ctx context.Context, pageText, sourceURL string) (domain.ExtractedProperty, error) {
	return domain.ExtractedProperty{}, fmt.Errorf("%w: no LLM API key configured", domain.ErrExtractionFailed)
}
