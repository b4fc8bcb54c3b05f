package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
	"jm_store_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Story ---
var (
	ErrStoryNotFound   = errors.New("story not found")
	ErrStoryValidation = errors.New("story data validation error")
)

const (
	// StoryWindow is how long a story stays visible after posting.
	StoryWindow = 24 * time.Hour
	// MaxActiveStories caps how many stories the storefront ever shows.
	MaxActiveStories = 10
)

// --- Story DTOs ---
type CreateStoryRequest struct {
	Kind            string  `json:"type" binding:"required"`
	Content         string  `json:"content" binding:"required"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
}

// --- StoryService Interface ---
type StoryService interface {
	GetActiveStories() ([]models.Story, error)
	CreateStory(req CreateStoryRequest) (*models.Story, error)
	DeleteStory(id string) error
	PurgeExpired() (int64, error)
}

// --- storyService Implementation ---
type storyService struct {
	storyRepo repositories.StoryRepository
	db        *sql.DB
	now       func() time.Time
}

// NewStoryService creates a new instance of StoryService.
func NewStoryService(repo repositories.StoryRepository, db *sql.DB) StoryService {
	return &storyService{storyRepo: repo, db: db, now: time.Now}
}

// GetActiveStories returns stories posted strictly within the last 24 hours,
// most recent first, at most 10. A story exactly at the boundary is excluded.
func (s *storyService) GetActiveStories() ([]models.Story, error) {
	since := s.now().Add(-StoryWindow)
	stories, err := s.storyRepo.GetActiveStories(since, MaxActiveStories)
	if err != nil {
		return nil, fmt.Errorf("failed to get active stories: %w", err)
	}
	return stories, nil
}

// CreateStory posts a new story. Text stories may carry styling; image
// stories carry a content URL.
func (s *storyService) CreateStory(req CreateStoryRequest) (*models.Story, error) {
	if req.Kind != models.StoryKindImage && req.Kind != models.StoryKindText {
		return nil, fmt.Errorf("%w: type must be %q or %q", ErrStoryValidation, models.StoryKindImage, models.StoryKindText)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrStoryValidation)
	}

	story := &models.Story{
		ID:              uuid.NewString(),
		Kind:            req.Kind,
		Content:         req.Content,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		PostedAt:        s.now(),
	}
	if err := s.storyRepo.CreateStory(s.db, story); err != nil {
		return nil, fmt.Errorf("failed to create story in repository: %w", err)
	}
	return story, nil
}

func (s *storyService) DeleteStory(id string) error {
	err := s.storyRepo.DeleteStory(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// PurgeExpired removes stories outside the 24-hour window. Run on a schedule;
// expired stories are already invisible to readers, this just reclaims rows.
func (s *storyService) PurgeExpired() (int64, error) {
	cutoff := s.now().Add(-StoryWindow)
	removed, err := s.storyRepo.DeleteExpired(s.db, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired stories: %w", err)
	}
	if removed > 0 {
		utils.LogInfo("Purged expired stories", map[string]interface{}{"removed": removed})
	}
	return removed, nil
}
