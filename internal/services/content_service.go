package services

import (
	"fmt"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
)

// ContentService serves the read-only landing content.
type ContentService interface {
	GetTestimonials() ([]models.Testimonial, error)
	GetFeatures() ([]models.Feature, error)
}

type contentService struct {
	contentRepo repositories.ContentRepository
}

// NewContentService creates a new instance of ContentService.
func NewContentService(repo repositories.ContentRepository) ContentService {
	return &contentService{contentRepo: repo}
}

func (s *contentService) GetTestimonials() ([]models.Testimonial, error) {
	testimonials, err := s.contentRepo.GetTestimonials()
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonials: %w", err)
	}
	return testimonials, nil
}

func (s *contentService) GetFeatures() ([]models.Feature, error) {
	features, err := s.contentRepo.GetFeatures()
	if err != nil {
		return nil, fmt.Errorf("failed to get features: %w", err)
	}
	return features, nil
}
