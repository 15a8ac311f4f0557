package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Register decoders for the formats uploads arrive in.
	_ "image/gif"
	_ "image/png"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

const thumbnailJPEGQuality = 80

// Processor derives artifacts from uploaded image bytes.
type Processor struct{}

// NewProcessor creates the processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Thumbnail returns a JPEG thumbnail bounded to maxWidth pixels.
// Images already narrower than maxWidth are re-encoded as-is.
func (p *Processor) Thumbnail(data []byte, maxWidth uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if uint(img.Bounds().Dx()) > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// PerceptualHash returns a perception hash of the image, as a string
// comparable with string equality for exact-duplicate detection.
func (p *Processor) PerceptualHash(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("failed to hash image: %w", err)
	}
	return hash.ToString(), nil
}
