package handlers

import (
	"errors"
	"net/http"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler holds the upload service.
type UploadHandler struct {
	uploadService services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(us services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// PresignUpload hands the admin panel a presigned PUT URL for a product image
// or reel video.
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var req services.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.uploadService.PresignUpload(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUploadValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "PresignUpload: Error from uploadService.PresignUpload")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to presign upload.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
