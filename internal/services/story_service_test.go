package services

import (
	"errors"
	"testing"
	"time"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
)

// fakeStoryRepo keeps stories in memory and applies the window filter the way
// the SQL query does.
type fakeStoryRepo struct {
	stories []models.Story
	failAll bool
}

func (f *fakeStoryRepo) CreateStory(executor repositories.SQLExecutor, story *models.Story) error {
	if f.failAll {
		return repositories.ErrDatabaseError
	}
	f.stories = append(f.stories, *story)
	return nil
}

func (f *fakeStoryRepo) GetActiveStories(since time.Time, limit int) ([]models.Story, error) {
	if f.failAll {
		return nil, repositories.ErrDatabaseError
	}
	var out []models.Story
	for _, s := range f.stories {
		if s.PostedAt.After(since) {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStoryRepo) DeleteStory(executor repositories.SQLExecutor, id string) error {
	for i, s := range f.stories {
		if s.ID == id {
			f.stories = append(f.stories[:i], f.stories[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeStoryRepo) DeleteExpired(executor repositories.SQLExecutor, before time.Time) (int64, error) {
	var kept []models.Story
	var removed int64
	for _, s := range f.stories {
		if s.PostedAt.After(before) {
			kept = append(kept, s)
		} else {
			removed++
		}
	}
	f.stories = kept
	return removed, nil
}

func TestGetActiveStoriesWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeStoryRepo{stories: []models.Story{
		{ID: "fresh", PostedAt: now.Add(-time.Hour)},
		{ID: "exact", PostedAt: now.Add(-24 * time.Hour)},
		{ID: "barely", PostedAt: now.Add(-24*time.Hour + time.Second)},
		{ID: "stale", PostedAt: now.Add(-25 * time.Hour)},
	}}
	svc := &storyService{storyRepo: repo, now: func() time.Time { return now }}

	stories, err := svc.GetActiveStories()
	if err != nil {
		t.Fatalf("GetActiveStories: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("expected 2 visible stories, got %d", len(stories))
	}
	for _, s := range stories {
		if s.ID == "exact" || s.ID == "stale" {
			t.Errorf("story %q should be outside the window", s.ID)
		}
	}
}

func TestCreateStoryValidation(t *testing.T) {
	svc := &storyService{storyRepo: &fakeStoryRepo{}, now: time.Now}

	cases := []CreateStoryRequest{
		{Kind: "gif", Content: "nope"},
		{Kind: models.StoryKindText, Content: "   "},
		{Kind: "", Content: "something"},
	}
	for _, req := range cases {
		if _, err := svc.CreateStory(req); !errors.Is(err, ErrStoryValidation) {
			t.Errorf("CreateStory(%+v): expected validation error, got %v", req, err)
		}
	}
}

func TestCreateStorySetsIdentityAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeStoryRepo{}
	svc := &storyService{storyRepo: repo, now: func() time.Time { return now }}

	story, err := svc.CreateStory(CreateStoryRequest{
		Kind:    models.StoryKindText,
		Content: "Reposição do Vestido Midi Floral em 1 hora!",
	})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}
	if story.ID == "" {
		t.Error("story should get an ID")
	}
	if !story.PostedAt.Equal(now) {
		t.Errorf("PostedAt = %v, want %v", story.PostedAt, now)
	}
	if len(repo.stories) != 1 {
		t.Fatalf("story not persisted")
	}
}

func TestDeleteStoryNotFound(t *testing.T) {
	svc := &storyService{storyRepo: &fakeStoryRepo{}, now: time.Now}
	if err := svc.DeleteStory("missing"); !errors.Is(err, ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}

func TestPurgeExpiredRemovesOnlyOldStories(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeStoryRepo{stories: []models.Story{
		{ID: "fresh", PostedAt: now.Add(-time.Hour)},
		{ID: "exact", PostedAt: now.Add(-24 * time.Hour)},
		{ID: "stale", PostedAt: now.Add(-30 * time.Hour)},
	}}
	svc := &storyService{storyRepo: repo, now: func() time.Time { return now }}

	removed, err := svc.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 purged stories, got %d", removed)
	}
	if len(repo.stories) != 1 || repo.stories[0].ID != "fresh" {
		t.Fatalf("unexpected surviving stories: %+v", repo.stories)
	}
}
