package rest

import (
	"io"
	"net/http"

	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"
)

// AttachmentHandler serves uploads, listing and deletion of media
// attachments.
type AttachmentHandler struct {
	uploadUC *usecase.UploadAttachmentUseCase
	deleteUC *usecase.DeleteAttachmentUseCase
	listUC   *usecase.ListAttachmentsUseCase
}

// NewAttachmentHandler creates the handler.
func NewAttachmentHandler(
	uploadUC *usecase.UploadAttachmentUseCase,
	deleteUC *usecase.DeleteAttachmentUseCase,
	listUC *usecase.ListAttachmentsUseCase,
) *AttachmentHandler {
	return &AttachmentHandler{uploadUC: uploadUC, deleteUC: deleteUC, listUC: listUC}
}

type uploadResponse struct {
	Attachment interface{} `json:"attachment"`
	Duplicate  bool        `json:"duplicate"`
}

// Upload accepts a multipart form with a single "file" part.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	propertyID, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := r.ParseMultipartForm(usecase.MaxAttachmentSize); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxAttachmentSize+1))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	attachment, duplicate, err := h.uploadUC.Execute(r.Context(), propertyID, usecase.UploadInput{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, uploadResponse{Attachment: attachment, Duplicate: duplicate})
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "attachmentID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid attachment id")
		return
	}
	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	propertyID, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	attachments, err := h.listUC.Execute(r.Context(), propertyID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, attachments)
}
