package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// DeleteAttachmentUseCase removes an attachment row and its blobs.
type DeleteAttachmentUseCase struct {
	attachments port.AttachmentStoragePort
	blobs       port.BlobStorePort
	notifier    port.NotifierPort
}

// NewDeleteAttachmentUseCase creates the use case.
func NewDeleteAttachmentUseCase(attachments port.AttachmentStoragePort, blobs port.BlobStorePort, notifier port.NotifierPort) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{attachments: attachments, blobs: blobs, notifier: notifier}
}

// Execute deletes the row first, then the blobs best-effort.
func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "DeleteAttachment",
		"attachment_id": id.String(),
	})

	deleted, err := uc.attachments.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error during attachment delete", err, nil)
		return fmt.Errorf("failed to delete attachment %s: %w", id, err)
	}

	keys := []string{deleted.FilePath}
	if deleted.FileType == domain.AttachmentImage {
		keys = append(keys, thumbnailKey(deleted.FilePath))
	}
	for _, key := range keys {
		if err := uc.blobs.Delete(ctx, key); err != nil {
			ucLogger.Warn("Failed to delete blob, leaving it orphaned", port.Fields{"key": key, "error": err.Error()})
		}
	}

	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "attachment_deleted", Payload: map[string]string{
		"id":          id.String(),
		"property_id": deleted.PropertyID.String(),
	}})
	return nil
}

// ListAttachmentsUseCase returns a property's attachments with their
// public URLs resolved.
type ListAttachmentsUseCase struct {
	attachments port.AttachmentStoragePort
	blobs       port.BlobStorePort
}

// NewListAttachmentsUseCase creates the use case.
func NewListAttachmentsUseCase(attachments port.AttachmentStoragePort, blobs port.BlobStorePort) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{attachments: attachments, blobs: blobs}
}

// AttachmentWithURL pairs an attachment record with the URLs clients
// fetch its content from.
type AttachmentWithURL struct {
	domain.Attachment
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Execute lists the attachments of one property.
func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, propertyID uuid.UUID) ([]AttachmentWithURL, error) {
	attachments, err := uc.attachments.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments for property %s: %w", propertyID, err)
	}

	out := make([]AttachmentWithURL, 0, len(attachments))
	for _, a := range attachments {
		item := AttachmentWithURL{Attachment: a, URL: uc.blobs.PublicURL(a.FilePath)}
		if a.FileType == domain.AttachmentImage {
			item.ThumbnailURL = uc.blobs.PublicURL(thumbnailKey(a.FilePath))
		}
		out = append(out, item)
	}
	return out, nil
}
