package handlers

import (
	"net/http"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler aggregates engagement metrics for the admin panel.
type ReportHandler struct {
	productService services.ProductService
	commentService services.CommentService
	clientService  services.ClientService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ps services.ProductService, cs services.CommentService, cls services.ClientService) *ReportHandler {
	return &ReportHandler{productService: ps, commentService: cs, clientService: cls}
}

// GetEngagement handles the admin engagement summary: total likes, total
// comments, total clients, and the latest comments with display fields.
func (h *ReportHandler) GetEngagement(c *gin.Context) {
	totalLikes, err := h.productService.TotalLikes()
	if err != nil {
		utils.LogError(err, "GetEngagement: Error from productService.TotalLikes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build engagement report.", "Internal error"))
		return
	}
	totalComments, err := h.commentService.Count()
	if err != nil {
		utils.LogError(err, "GetEngagement: Error from commentService.Count")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build engagement report.", "Internal error"))
		return
	}
	totalClients, err := h.clientService.Count()
	if err != nil {
		utils.LogError(err, "GetEngagement: Error from clientService.Count")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build engagement report.", "Internal error"))
		return
	}
	recentComments, err := h.commentService.GetRecentComments()
	if err != nil {
		utils.LogError(err, "GetEngagement: Error from commentService.GetRecentComments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build engagement report.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_engagement": totalLikes + totalComments,
		"total_likes":      totalLikes,
		"total_comments":   totalComments,
		"total_clients":    totalClients,
		"recent_comments":  recentComments,
	})
}
