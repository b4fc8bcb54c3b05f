package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Comment ---
var (
	ErrCommentNotFound   = errors.New("comment not found")
	ErrCommentValidation = errors.New("comment data validation error")
)

// RecentFeedLimit caps the recent-comments feed surface.
const RecentFeedLimit = 10

// --- Comment DTOs ---
type PostCommentRequest struct {
	ClientID  string `json:"client_id" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

// --- CommentService Interface ---
type CommentService interface {
	PostComment(req PostCommentRequest) (*models.Comment, error)
	GetComments() ([]models.Comment, error)
	GetRecentComments() ([]models.Comment, error)
	GetCommentsByProduct(productID int64) ([]models.Comment, error)
	Count() (int, error)
}

// --- commentService Implementation ---
type commentService struct {
	commentRepo repositories.CommentRepository
	clientRepo  repositories.ClientRepository
	db          *sql.DB
}

// NewCommentService creates a new instance of CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, clientRepo repositories.ClientRepository, db *sql.DB) CommentService {
	return &commentService{commentRepo: commentRepo, clientRepo: clientRepo, db: db}
}

// PostComment creates a comment and returns it with its server-assigned ID,
// timestamp and denormalized display fields. The storefront appends only this
// confirmed record, never an optimistic placeholder.
func (s *commentService) PostComment(req PostCommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text cannot be empty", ErrCommentValidation)
	}

	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to verify comment author: %w", err)
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		ClientID:  req.ClientID,
		ProductID: req.ProductID,
	}
	if err := s.commentRepo.CreateComment(s.db, comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create comment in repository: %w", err)
	}
	return s.commentRepo.GetCommentByID(comment.ID)
}

// GetComments lists every comment with joined display fields, newest first.
func (s *commentService) GetComments() ([]models.Comment, error) {
	comments, err := s.commentRepo.GetComments(0)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

// GetRecentComments returns the 10 most recent comments for the feed surface.
func (s *commentService) GetRecentComments() ([]models.Comment, error) {
	comments, err := s.commentRepo.GetComments(RecentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) GetCommentsByProduct(productID int64) ([]models.Comment, error) {
	comments, err := s.commentRepo.GetCommentsByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for product %d: %w", productID, err)
	}
	return comments, nil
}

func (s *commentService) Count() (int, error) {
	count, err := s.commentRepo.CountComments()
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
