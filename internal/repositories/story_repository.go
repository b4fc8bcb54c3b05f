package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"jm_store_backend/internal/models"
)

// StoryRepository defines the interface for story-related database operations.
type StoryRepository interface {
	CreateStory(executor SQLExecutor, story *models.Story) error
	GetActiveStories(since time.Time, limit int) ([]models.Story, error)
	DeleteStory(executor SQLExecutor, id string) error
	DeleteExpired(executor SQLExecutor, before time.Time) (int64, error)
}

type storyRepository struct {
	db *sql.DB
}

// NewStoryRepository creates a new instance of StoryRepository.
func NewStoryRepository(db *sql.DB) StoryRepository {
	return &storyRepository{db: db}
}

// CreateStory inserts a new story.
func (r *storyRepository) CreateStory(executor SQLExecutor, story *models.Story) error {
	query := `INSERT INTO jm_stories (id, kind, content, background_color, text_color, posted_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	if story.PostedAt.IsZero() {
		story.PostedAt = time.Now()
	}

	_, err := executor.Exec(query,
		story.ID, story.Kind, story.Content, story.BackgroundColor, story.TextColor, story.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating story: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetActiveStories lists stories strictly newer than since, most recent
// first, capped at limit. A story posted exactly at since is excluded.
func (r *storyRepository) GetActiveStories(since time.Time, limit int) ([]models.Story, error) {
	stories := []models.Story{}
	rows, err := r.db.Query(
		`SELECT id, kind, content, background_color, text_color, posted_at
		 FROM jm_stories WHERE posted_at > $1 ORDER BY posted_at DESC LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var story models.Story
		if err := rows.Scan(
			&story.ID, &story.Kind, &story.Content, &story.BackgroundColor, &story.TextColor, &story.PostedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning story: %v", ErrDatabaseError, err)
		}
		stories = append(stories, story)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating story rows: %v", ErrDatabaseError, err)
	}
	return stories, nil
}

// DeleteStory removes a story by ID.
func (r *storyRepository) DeleteStory(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM jm_stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting story ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting story ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes every story posted at or before the cutoff and
// returns how many were removed.
func (r *storyRepository) DeleteExpired(executor SQLExecutor, before time.Time) (int64, error) {
	result, err := executor.Exec(`DELETE FROM jm_stories WHERE posted_at <= $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%w: purging expired stories: %v", ErrDatabaseError, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for story purge: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}
