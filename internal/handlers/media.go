package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

// MediaHandler hands out presigned upload URLs for report attachments.
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// CreateUploadURL presigns a PUT for one photo or voice note.
func (h *MediaHandler) CreateUploadURL(c *gin.Context) {
	type UploadURLRequest struct {
		Kind        services.MediaKind `json:"kind" binding:"required"`
		ContentType string             `json:"contentType" binding:"required"`
		Filename    string             `json:"filename"`
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	upload, err := h.mediaService.PresignUpload(c.Request.Context(), req.Kind, req.ContentType, req.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStorageNotConfigured):
			apierrors.ServiceUnavailable(c, "Media uploads are not configured")
		case errors.Is(err, services.ErrInvalidMediaKind),
			errors.Is(err, services.ErrInvalidContentType):
			apierrors.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Msg("Failed to presign upload")
			apierrors.InternalError(c, "Failed to create upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, upload)
}
