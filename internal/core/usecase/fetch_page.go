package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// FetchPageUseCase returns the sanitized text of any page, for
// debugging and manual extraction.
type FetchPageUseCase struct {
	fetcher port.PageFetcherPort
}

// NewFetchPageUseCase creates the use case.
func NewFetchPageUseCase(fetcher port.PageFetcherPort) *FetchPageUseCase {
	return &FetchPageUseCase{fetcher: fetcher}
}

// Execute fetches up to maxChars of page text. A non-positive maxChars
// falls back to the extractor's bound.
func (uc *FetchPageUseCase) Execute(ctx context.Context, rawURL string, maxChars int) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: url must be absolute http(s)", domain.ErrValidation)
	}
	if maxChars <= 0 {
		maxChars = extractMaxChars
	}

	text, err := uc.fetcher.FetchText(ctx, rawURL, maxChars)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	return text, nil
}
