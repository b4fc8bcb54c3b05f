package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jm_store_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(searchTerm *string) ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	DeleteProduct(executor SQLExecutor, id int64) error
	UpdateLikes(executor SQLExecutor, id int64, count int) error
	TotalLikes() (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// CreateProduct inserts a new product. New products always start with zero likes.
func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO jm_products (name, price, description, category, image_url, video_url, sizes, likes_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
	          RETURNING id`

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		product.Name, product.Price, product.Description, product.Category,
		product.ImageURL, product.VideoURL, pq.Array(product.Sizes), product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	product.LikesCount = 0
	return product.ID, nil
}

// GetProductByID retrieves a product by its ID.
func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT id, name, price, description, category, image_url, video_url, sizes, likes_count, created_at
	          FROM jm_products WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.Description, &product.Category,
		&product.ImageURL, &product.VideoURL, pq.Array(&product.Sizes), &product.LikesCount, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

// GetProducts lists products newest-created-first, optionally filtered by a
// case-insensitive name/category search term.
func (r *productRepository) GetProducts(searchTerm *string) ([]models.Product, error) {
	products := []models.Product{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, price, description, category, image_url, video_url, sizes, likes_count, created_at
	                          FROM jm_products`)

	var args []interface{}
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(" WHERE name ILIKE $1 OR category ILIKE $1")
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
	}
	queryBuilder.WriteString(" ORDER BY id DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Price, &product.Description, &product.Category,
			&product.ImageURL, &product.VideoURL, pq.Array(&product.Sizes), &product.LikesCount, &product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

// UpdateProduct updates an existing product. The likes counter is not touched
// here; it is only ever written through UpdateLikes.
func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE jm_products SET
	            name = $1, price = $2, description = $3, category = $4,
	            image_url = $5, video_url = $6, sizes = $7
	          WHERE id = $8`

	result, err := executor.Exec(query,
		product.Name, product.Price, product.Description, product.Category,
		product.ImageURL, product.VideoURL, pq.Array(product.Sizes), product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product and, via ON DELETE CASCADE, its comments.
func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM jm_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLikes writes the like counter as an absolute overwrite (last writer
// wins). GREATEST keeps the stored value non-negative even if a stale client
// submits a negative count.
func (r *productRepository) UpdateLikes(executor SQLExecutor, id int64, count int) error {
	result, err := executor.Exec(`UPDATE jm_products SET likes_count = GREATEST($1, 0) WHERE id = $2`, count, id)
	if err != nil {
		return fmt.Errorf("%w: updating likes for product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for likes of product ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalLikes sums the like counters across the whole catalog.
func (r *productRepository) TotalLikes() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COALESCE(SUM(likes_count), 0) FROM jm_products`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing likes: %v", ErrDatabaseError, err)
	}
	return total, nil
}
