package handlers

import (
	"net/http"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the read-only landing content.
type ContentHandler struct {
	contentService services.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(cs services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

func (h *ContentHandler) GetTestimonials(c *gin.Context) {
	testimonials, err := h.contentService.GetTestimonials()
	if err != nil {
		utils.LogError(err, "GetTestimonials: Error from contentService.GetTestimonials")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch testimonials.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (h *ContentHandler) GetFeatures(c *gin.Context) {
	features, err := h.contentService.GetFeatures()
	if err != nil {
		utils.LogError(err, "GetFeatures: Error from contentService.GetFeatures")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch features.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, features)
}
