package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
)

// --- Custom Service Errors for Product ---
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductValidation = errors.New("product data validation error")
)

// --- Product DTOs ---
type SaveProductRequest struct {
	ID          *int64   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	VideoURL    *string  `json:"videoUrl"`
	Sizes       []string `json:"sizes"`
}

type UpdateLikesRequest struct {
	ID    int64 `json:"id" binding:"required"`
	Count int   `json:"count"`
}

// --- ProductService Interface ---
type ProductService interface {
	GetProducts(searchTerm *string) ([]models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	SaveProduct(req SaveProductRequest) (*models.Product, error)
	DeleteProduct(id int64) error
	SetLikes(req UpdateLikesRequest) error
	TotalLikes() (int, error)
}

// --- productService Implementation ---
type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(repo repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: repo, db: db}
}

func (s *productService) validate(req SaveProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrProductValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrProductValidation)
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return fmt.Errorf("%w: image URL cannot be empty", ErrProductValidation)
	}
	return nil
}

// GetProducts lists the catalog newest-created-first, optionally filtered.
func (s *productService) GetProducts(searchTerm *string) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(searchTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

// SaveProduct creates the product when no ID is given, or updates the
// existing record otherwise. The like counter is untouched on update.
func (s *productService) SaveProduct(req SaveProductRequest) (*models.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Sizes:       req.Sizes,
	}

	if req.ID == nil {
		id, err := s.productRepo.CreateProduct(s.db, product)
		if err != nil {
			return nil, fmt.Errorf("failed to create product in repository: %w", err)
		}
		return s.productRepo.GetProductByID(id)
	}

	product.ID = *req.ID
	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product in repository: %w", err)
	}
	return s.productRepo.GetProductByID(product.ID)
}

func (s *productService) DeleteProduct(id int64) error {
	err := s.productRepo.DeleteProduct(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// SetLikes overwrites a product's like counter with an absolute value,
// clamped at zero. Last writer wins: concurrent toggles from different
// clients race, which is accepted for a vanity counter.
func (s *productService) SetLikes(req UpdateLikesRequest) error {
	count := req.Count
	if count < 0 {
		count = 0
	}
	err := s.productRepo.UpdateLikes(s.db, req.ID, count)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update likes: %w", err)
	}
	return nil
}

// TotalLikes sums like counters across the catalog for engagement reporting.
func (s *productService) TotalLikes() (int, error) {
	total, err := s.productRepo.TotalLikes()
	if err != nil {
		return 0, fmt.Errorf("failed to sum likes: %w", err)
	}
	return total, nil
}
