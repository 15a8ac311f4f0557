package port

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
)

// PageFetcherPort fetches the text of a listing page. The rendered
// implementation drives a headless browser so client-rendered listing
// sites produce real content; the static one does a plain HTTP fetch.
type PageFetcherPort interface {
	FetchText(ctx context.Context, url string, maxChars int) (string, error)
}

// ListingExtractorPort turns scraped page text into structured listing
// fields, typically by prompting a hosted language model.
type ListingExtractorPort interface {
	Extract(ctx context.Context, pageText, sourceURL string) (domain.ExtractedProperty, error)
}

// MediaProcessorPort inspects and derives artifacts from uploaded
// image bytes.
type MediaProcessorPort interface {
	// Thumbnail returns a JPEG thumbnail bounded to maxWidth pixels.
	Thumbnail(data []byte, maxWidth uint) ([]byte, error)
	// PerceptualHash returns a hex hash usable for duplicate detection.
	PerceptualHash(data []byte) (string, error)
}
