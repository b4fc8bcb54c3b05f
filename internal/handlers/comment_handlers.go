package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommentHandler holds the comment service.
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(cs services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

// PostComment handles comment creation. The response carries the confirmed
// record with server-assigned ID, timestamp and display fields.
func (h *CommentHandler) PostComment(c *gin.Context) {
	var req services.PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "PostComment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	comment, err := h.commentService.PostComment(req)
	if err != nil {
		if errors.Is(err, services.ErrCommentValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrClientNotFound) || errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Comment references an unknown client or product.", err.Error()))
		} else {
			utils.LogError(err, "PostComment: Error from commentService.PostComment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to post comment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments handles the full comment listing with joined display fields.
// ?recent=true truncates to the 10 most recent for the feed surface.
func (h *CommentHandler) GetComments(c *gin.Context) {
	var (
		comments interface{}
		err      error
	)
	if c.Query("recent") == "true" {
		comments, err = h.commentService.GetRecentComments()
	} else {
		comments, err = h.commentService.GetComments()
	}
	if err != nil {
		utils.LogError(err, "GetComments: Error from commentService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch comments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetProductComments handles listing one product's comments, oldest first.
func (h *CommentHandler) GetProductComments(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	comments, err := h.commentService.GetCommentsByProduct(productID)
	if err != nil {
		utils.LogError(err, "GetProductComments: Error from commentService.GetCommentsByProduct")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch product comments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, comments)
}
