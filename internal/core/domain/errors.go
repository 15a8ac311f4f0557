package domain

import "errors"

// Errors the use cases may return. The REST layer maps them onto HTTP
// statuses in one place.
var (
	ErrValidation         = errors.New("validation failed")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDragInProgress     = errors.New("another drag is already active")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrExtractionFailed   = errors.New("listing extraction failed")
)
