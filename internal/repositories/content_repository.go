package repositories

import (
	"database/sql"
	"fmt"

	"jm_store_backend/internal/models"
)

// ContentRepository serves the read-only landing content (testimonials and
// brand features). These tables are seeded manually; there is no write path.
type ContentRepository interface {
	GetTestimonials() ([]models.Testimonial, error)
	GetFeatures() ([]models.Feature, error)
}

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new instance of ContentRepository.
func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetTestimonials() ([]models.Testimonial, error) {
	testimonials := []models.Testimonial{}
	rows, err := r.db.Query(`SELECT id, name, role, content, rating, avatar_url FROM jm_testimonials ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying testimonials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Content, &t.Rating, &t.AvatarURL); err != nil {
			return nil, fmt.Errorf("%w: scanning testimonial: %v", ErrDatabaseError, err)
		}
		testimonials = append(testimonials, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating testimonial rows: %v", ErrDatabaseError, err)
	}
	return testimonials, nil
}

func (r *contentRepository) GetFeatures() ([]models.Feature, error) {
	features := []models.Feature{}
	rows, err := r.db.Query(`SELECT id, title, description, icon FROM jm_features ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying features: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Icon); err != nil {
			return nil, fmt.Errorf("%w: scanning feature: %v", ErrDatabaseError, err)
		}
		features = append(features, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating feature rows: %v", ErrDatabaseError, err)
	}
	return features, nil
}
