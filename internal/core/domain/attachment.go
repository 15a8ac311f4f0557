package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttachmentType classifies a stored media file.
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentPDF   AttachmentType = "pdf"
)

// Attachment is a media file stored in the blob bucket and attached to
// exactly one property. FilePath is the bucket key
// "{propertyID}/{generatedFileName}".
type Attachment struct {
	ID             uuid.UUID      `json:"id"`
	PropertyID     uuid.UUID      `json:"property_id"`
	FileName       string         `json:"file_name"`
	FilePath       string         `json:"file_path"`
	FileType       AttachmentType `json:"file_type"`
	FileSize       int64          `json:"file_size"`
	MimeType       string         `json:"mime_type"`
	PerceptualHash *string        `json:"perceptual_hash,omitempty"` // images only
	CreatedAt      time.Time      `json:"created_at"`
}

// AttachmentTypeFromMime maps a MIME type onto the stored file class.
func AttachmentTypeFromMime(mime string) (AttachmentType, error) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return AttachmentImage, nil
	case strings.HasPrefix(mime, "video/"):
		return AttachmentVideo, nil
	case mime == "application/pdf":
		return AttachmentPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFile, mime)
	}
}
