package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

const (
	// MaxAttachmentSize bounds a single upload at 50 MiB.
	MaxAttachmentSize = 50 << 20

	thumbnailMaxWidth = 480
)

// UploadAttachmentUseCase stores an uploaded file in the bucket and
// records it against a property. Images additionally get a perceptual
// hash for duplicate detection and a thumbnail.
type UploadAttachmentUseCase struct {
	attachments port.AttachmentStoragePort
	properties  port.PropertyStoragePort
	blobs       port.BlobStorePort
	media       port.MediaProcessorPort
	notifier    port.NotifierPort
}

// NewUploadAttachmentUseCase creates the use case.
func NewUploadAttachmentUseCase(
	attachments port.AttachmentStoragePort,
	properties port.PropertyStoragePort,
	blobs port.BlobStorePort,
	media port.MediaProcessorPort,
	notifier port.NotifierPort,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		attachments: attachments,
		properties:  properties,
		blobs:       blobs,
		media:       media,
		notifier:    notifier,
	}
}

// UploadInput is the decoded multipart upload.
type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
}

// Execute uploads the blob and records the attachment. The returned
// bool reports whether an image with the same perceptual hash already
// exists on this property; the upload still goes through, the caller
// surfaces it as a warning.
func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, propertyID uuid.UUID, in UploadInput) (domain.Attachment, bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UploadAttachment",
		"property_id": propertyID.String(),
		"file_name":   in.FileName,
	})

	fileType, err := domain.AttachmentTypeFromMime(in.MimeType)
	if err != nil {
		return domain.Attachment{}, false, err
	}
	if len(in.Data) == 0 {
		return domain.Attachment{}, false, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	if len(in.Data) > MaxAttachmentSize {
		return domain.Attachment{}, false, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, MaxAttachmentSize)
	}

	if _, err := uc.properties.GetByID(ctx, propertyID); err != nil {
		return domain.Attachment{}, false, fmt.Errorf("failed to load attachment's property: %w", err)
	}

	a := domain.Attachment{
		ID:         uuid.New(),
		PropertyID: propertyID,
		FileName:   in.FileName,
		FileType:   fileType,
		FileSize:   int64(len(in.Data)),
		MimeType:   in.MimeType,
	}
	a.FilePath = bucketKey(propertyID, a.ID, in.FileName)

	duplicate := false
	if fileType == domain.AttachmentImage {
		duplicate = uc.processImage(ctx, ucLogger, &a, in.Data)
	}

	if err := uc.blobs.Upload(ctx, a.FilePath, in.MimeType, in.Data); err != nil {
		ucLogger.Error("Blob upload failed", err, port.Fields{"key": a.FilePath})
		return domain.Attachment{}, false, fmt.Errorf("failed to upload attachment blob: %w", err)
	}

	stored, err := uc.attachments.Create(ctx, a)
	if err != nil {
		ucLogger.Error("Storage returned an error during attachment create", err, nil)
		// Roll the blob back so the bucket does not accumulate
		// records-less files.
		if delErr := uc.blobs.Delete(ctx, a.FilePath); delErr != nil {
			ucLogger.Warn("Failed to roll back blob after storage error", port.Fields{"key": a.FilePath, "error": delErr.Error()})
		}
		return domain.Attachment{}, false, fmt.Errorf("failed to record attachment: %w", err)
	}

	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "attachment_uploaded", Payload: stored})
	ucLogger.Info("Use case finished: attachment stored", port.Fields{"attachment_id": stored.ID.String(), "duplicate": duplicate})
	return stored, duplicate, nil
}

// processImage hashes the image, checks for a same-property duplicate
// and uploads a thumbnail next to the original. Failures degrade the
// image extras, never the upload itself.
func (uc *UploadAttachmentUseCase) processImage(ctx context.Context, log port.LoggerPort, a *domain.Attachment, data []byte) bool {
	hash, err := uc.media.PerceptualHash(data)
	if err != nil {
		log.Warn("Failed to hash image, duplicate detection skipped", port.Fields{"error": err.Error()})
		return false
	}
	a.PerceptualHash = &hash

	duplicate := false
	if existing, err := uc.attachments.FindByHash(ctx, a.PropertyID, hash); err != nil {
		log.Warn("Duplicate lookup failed", port.Fields{"error": err.Error()})
	} else if existing != nil {
		log.Info("Image duplicates an existing attachment", port.Fields{"existing_id": existing.ID.String()})
		duplicate = true
	}

	thumb, err := uc.media.Thumbnail(data, thumbnailMaxWidth)
	if err != nil {
		log.Warn("Thumbnail generation failed", port.Fields{"error": err.Error()})
		return duplicate
	}
	if err := uc.blobs.Upload(ctx, thumbnailKey(a.FilePath), "image/jpeg", thumb); err != nil {
		log.Warn("Thumbnail upload failed", port.Fields{"error": err.Error()})
	}
	return duplicate
}

// bucketKey builds "{propertyID}/{attachmentID}{ext}". The original
// file name only contributes its extension, so hostile names never
// reach the bucket.
func bucketKey(propertyID, attachmentID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s%s", propertyID, attachmentID, ext)
}

// thumbnailKey derives the thumbnail key from the original's key.
func thumbnailKey(key string) string {
	ext := filepath.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb.jpg"
}
