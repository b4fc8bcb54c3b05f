// Package gateway abstracts the persistence backend behind the storefront.
// Two wire shapes exist in production (a JSON REST API and a legacy
// single-endpoint PHP script); both satisfy the same interface so the
// storefront state never knows which one it is talking to.
package gateway

import (
	"context"
	"errors"

	"jm_store_backend/internal/models"
)

// ErrClientUnknown is returned by LookupClient when the backend has no record
// for the given contact.
var ErrClientUnknown = errors.New("client unknown to backend")

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Nickname  *string `json:"nickname,omitempty"`
	WhatsApp  string  `json:"whatsapp"`
}

// Registration is the identity the backend resolves a registration to,
// existing or freshly created.
type Registration struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	WhatsApp   string `json:"whatsapp"`
	AccessCode string `json:"accessCode"`
	Created    bool   `json:"created"`
}

// Identity is the minimal client record used for session revalidation.
type Identity struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	WhatsApp  string `json:"whatsapp"`
}

// Gateway is the full capability set the storefront needs from a backend.
// Implementations translate intents into requests and surface
// success/failure, nothing more; fallback policy lives with the caller.
type Gateway interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FetchComments(ctx context.Context) ([]models.Comment, error)
	FetchStories(ctx context.Context) ([]models.Story, error)
	RegisterClient(ctx context.Context, input RegisterInput) (*Registration, error)
	LookupClient(ctx context.Context, whatsapp string) (*Identity, error)
	ClientCount(ctx context.Context) (int, error)
	PostComment(ctx context.Context, clientID string, productID int64, text string) (*models.Comment, error)
	UpdateLikes(ctx context.Context, productID int64, count int) error
}
