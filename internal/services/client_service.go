package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/notify"
	"jm_store_backend/internal/repositories"
	"jm_store_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---
type RegisterClientRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Nickname  *string `json:"nickname"`
	WhatsApp  string  `json:"whatsapp" binding:"required"`
}

// RegistrationResult is what the storefront needs after a registration
// attempt: the identity to materialize a session from, and the access code.
// Created reports whether a new record was minted or an existing one reused.
type RegistrationResult struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	WhatsApp   string `json:"whatsapp"`
	AccessCode string `json:"accessCode"`
	Created    bool   `json:"created"`
}

// --- ClientService Interface ---
type ClientService interface {
	Register(req RegisterClientRequest) (*RegistrationResult, error)
	GetClientByID(id string) (*models.Client, error)
	GetClientByWhatsApp(whatsapp string) (*models.Client, error)
	GetClients() ([]models.Client, error)
	Count() (int, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
	notifier   notify.RegistrationNotifier
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db *sql.DB, notifier notify.RegistrationNotifier) ClientService {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &clientService{clientRepo: repo, db: db, notifier: notifier}
}

// mintAccessCode draws a uniform random 6-digit numeric code in
// [100000, 999999].
func mintAccessCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// Register looks up the client by WhatsApp contact and either returns the
// existing identity with its existing access code, or mints a new code and
// creates the record. Re-registering with a known contact never rotates the
// code and never creates a duplicate.
func (s *clientService) Register(req RegisterClientRequest) (*RegistrationResult, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrClientValidation)
	}
	whatsapp := strings.TrimSpace(req.WhatsApp)
	if whatsapp == "" {
		return nil, fmt.Errorf("%w: whatsapp contact is required", ErrClientValidation)
	}

	existing, err := s.clientRepo.GetClientByWhatsApp(whatsapp)
	if err == nil {
		return &RegistrationResult{
			ID:         existing.ID,
			FirstName:  existing.FirstName,
			WhatsApp:   existing.WhatsApp,
			AccessCode: existing.AccessCode,
			Created:    false,
		}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up client by whatsapp: %w", err)
	}

	client := &models.Client{
		ID:         uuid.NewString(),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Nickname:   req.Nickname,
		WhatsApp:   whatsapp,
		AccessCode: mintAccessCode(),
	}

	if err := s.clientRepo.CreateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a race with a concurrent registration for the same
			// contact; the stored record and code win.
			stored, lookupErr := s.clientRepo.GetClientByWhatsApp(whatsapp)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to resolve concurrent registration: %w", lookupErr)
			}
			return &RegistrationResult{
				ID:         stored.ID,
				FirstName:  stored.FirstName,
				WhatsApp:   stored.WhatsApp,
				AccessCode: stored.AccessCode,
				Created:    false,
			}, nil
		}
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}

	utils.LogInfo("New VIP client registered", map[string]interface{}{"client_id": client.ID})
	s.notifier.RegistrationCreated(client)

	return &RegistrationResult{
		ID:         client.ID,
		FirstName:  client.FirstName,
		WhatsApp:   client.WhatsApp,
		AccessCode: client.AccessCode,
		Created:    true,
	}, nil
}

func (s *clientService) GetClientByID(id string) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByWhatsApp(whatsapp string) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByWhatsApp(strings.TrimSpace(whatsapp))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by whatsapp: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients() ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

// Count returns the raw registered-client count. The storefront adds its
// fixed display base on top.
func (s *clientService) Count() (int, error) {
	count, err := s.clientRepo.CountClients()
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}
