package handlers

import (
	"errors"
	"net/http"

	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StoryHandler holds the story service.
type StoryHandler struct {
	storyService services.StoryService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(ss services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: ss}
}

// GetStories handles the public active-story listing: last 24 hours only,
// at most 10, most recent first.
func (h *StoryHandler) GetStories(c *gin.Context) {
	stories, err := h.storyService.GetActiveStories()
	if err != nil {
		utils.LogError(err, "GetStories: Error from storyService.GetActiveStories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stories)
}

// CreateStory handles admin story posting.
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req services.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStory: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	story, err := h.storyService.CreateStory(req)
	if err != nil {
		if errors.Is(err, services.ErrStoryValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateStory: Error from storyService.CreateStory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create story.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, story)
}

// DeleteStory handles admin story removal.
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	id := c.Param("id")
	if err := h.storyService.DeleteStory(id); err != nil {
		if errors.Is(err, services.ErrStoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Story not found to delete.", err.Error()))
		} else {
			utils.LogError(err, "DeleteStory: Error from storyService.DeleteStory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete story.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story deleted successfully"})
}
