package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// extractMaxChars bounds the page text handed to the model. More than
// this is noise for a single listing and bloats the prompt.
const extractMaxChars = 12000

// listingURLPattern matches the listing sites the extractor knows how
// to read.
var listingURLPattern = regexp.MustCompile(`^https?://(www\.)?(yad2\.co\.il|madlan\.co\.il)/`)

// botChallengeMarkers are phrases that mean the fetch got an
// anti-bot interstitial instead of the listing.
var botChallengeMarkers = []string{
	"are you a robot",
	"access denied",
	"captcha",
	"px-captcha",
	"unusual activity",
	"shieldsquare",
}

// ExtractPropertyUseCase scrapes a listing URL and returns structured
// property fields ready to prefill the create form.
type ExtractPropertyUseCase struct {
	fetcher   port.PageFetcherPort
	extractor port.ListingExtractorPort
}

// NewExtractPropertyUseCase creates the use case.
func NewExtractPropertyUseCase(fetcher port.PageFetcherPort, extractor port.ListingExtractorPort) *ExtractPropertyUseCase {
	return &ExtractPropertyUseCase{fetcher: fetcher, extractor: extractor}
}

type extractRequestInput struct {
	URL string `json:"url"`
}

// Execute fetches the rendered page, screens it for bot challenges and
// hands it to the extractor.
func (uc *ExtractPropertyUseCase) Execute(ctx context.Context, payload json.RawMessage) (domain.ExtractedProperty, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ExtractProperty"})

	if err := contracts.ValidatePayload("ExtractRequest", payload); err != nil {
		ucLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return domain.ExtractedProperty{}, err
	}

	var in extractRequestInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return domain.ExtractedProperty{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !listingURLPattern.MatchString(in.URL) {
		return domain.ExtractedProperty{}, fmt.Errorf("%w: url is not a supported listing site", domain.ErrValidation)
	}

	ucLogger.Info("Use case started: extracting listing", port.Fields{"url": in.URL})

	pageText, err := uc.fetcher.FetchText(ctx, in.URL, extractMaxChars)
	if err != nil {
		ucLogger.Error("Page fetch failed", err, port.Fields{"url": in.URL})
		return domain.ExtractedProperty{}, fmt.Errorf("%w: page fetch: %v", domain.ErrExtractionFailed, err)
	}
	if err := screenPageText(pageText); err != nil {
		ucLogger.Warn("Fetched page failed content checks", port.Fields{"url": in.URL, "error": err.Error()})
		return domain.ExtractedProperty{}, err
	}

	extracted, err := uc.extractor.Extract(ctx, pageText, in.URL)
	if err != nil {
		ucLogger.Error("Listing extraction failed", err, port.Fields{"url": in.URL})
		return domain.ExtractedProperty{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	ucLogger.Info("Use case finished: listing extracted", port.Fields{"title": extracted.Title})
	return extracted, nil
}

// screenPageText rejects pages that are too thin to hold a listing or
// that look like an anti-bot interstitial.
func screenPageText(text string) error {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 200 {
		return fmt.Errorf("%w: page text too short (%d chars)", domain.ErrExtractionFailed, len(trimmed))
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range botChallengeMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: bot challenge detected (%q)", domain.ErrExtractionFailed, marker)
		}
	}
	return nil
}
