package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jm_store_backend/internal/models"

	"github.com/lib/pq"
)

// CommentRepository defines the interface for comment-related database operations.
type CommentRepository interface {
	CreateComment(executor SQLExecutor, comment *models.Comment) error
	GetCommentByID(id string) (*models.Comment, error)
	GetComments(limit int) ([]models.Comment, error)
	GetCommentsByProduct(productID int64) ([]models.Comment, error)
	CountComments() (int, error)
}

type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

// CreateComment inserts a new comment. Foreign key violations (unknown client
// or product) surface as ErrNotFound.
func (r *commentRepository) CreateComment(executor SQLExecutor, comment *models.Comment) error {
	query := `INSERT INTO jm_comments (id, text, client_id, product_id, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query, comment.ID, comment.Text, comment.ClientID, comment.ProductID, comment.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: comment references unknown client or product (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating comment: %v", ErrDatabaseError, err)
	}
	return nil
}

const commentJoinSelect = `SELECT c.id, c.text, c.client_id, c.product_id, c.created_at,
	       cl.first_name, p.name AS product_name, p.image_url AS product_image
	FROM jm_comments c
	JOIN jm_clients cl ON cl.id = c.client_id
	JOIN jm_products p ON p.id = c.product_id`

// GetCommentByID retrieves one comment with its denormalized display fields.
func (r *commentRepository) GetCommentByID(id string) (*models.Comment, error) {
	comment := &models.Comment{}
	err := r.db.QueryRow(commentJoinSelect+` WHERE c.id = $1`, id).Scan(
		&comment.ID, &comment.Text, &comment.ClientID, &comment.ProductID, &comment.CreatedAt,
		&comment.FirstName, &comment.ProductName, &comment.ProductImage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting comment by ID %s: %v", ErrDatabaseError, id, err)
	}
	return comment, nil
}

// GetComments lists comments newest-first with client and product display
// fields joined in. limit <= 0 means no limit.
func (r *commentRepository) GetComments(limit int) ([]models.Comment, error) {
	query := commentJoinSelect + ` ORDER BY c.created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.scanComments(query, args...)
}

// GetCommentsByProduct lists a product's comments oldest-first, matching the
// order they are appended on the reel surface.
func (r *commentRepository) GetCommentsByProduct(productID int64) ([]models.Comment, error) {
	return r.scanComments(commentJoinSelect+` WHERE c.product_id = $1 ORDER BY c.created_at ASC`, productID)
}

func (r *commentRepository) scanComments(query string, args ...interface{}) ([]models.Comment, error) {
	comments := []models.Comment{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying comments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Text, &comment.ClientID, &comment.ProductID, &comment.CreatedAt,
			&comment.FirstName, &comment.ProductName, &comment.ProductImage,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning comment: %v", ErrDatabaseError, err)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating comment rows: %v", ErrDatabaseError, err)
	}
	return comments, nil
}

// CountComments returns the total number of comments.
func (r *commentRepository) CountComments() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM jm_comments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting comments: %v", ErrDatabaseError, err)
	}
	return count, nil
}
