package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jm_store_backend/internal/models"

	"github.com/lib/pq"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) error
	GetClientByID(id string) (*models.Client, error)
	GetClientByWhatsApp(whatsapp string) (*models.Client, error)
	GetClients() ([]models.Client, error)
	CountClients() (int, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

// CreateClient inserts a new client. The whatsapp column carries a unique
// constraint; a violation surfaces as ErrDuplicateKey so the service can fall
// back to the existing record.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) error {
	query := `INSERT INTO jm_clients (id, first_name, last_name, nickname, whatsapp, access_code, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		client.ID, client.FirstName, client.LastName, client.Nickname,
		client.WhatsApp, client.AccessCode, client.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id string) (*models.Client, error) {
	return r.scanOne(`SELECT id, first_name, last_name, nickname, whatsapp, access_code, created_at
	                  FROM jm_clients WHERE id = $1`, id)
}

// GetClientByWhatsApp retrieves a client by their WhatsApp contact.
func (r *clientRepository) GetClientByWhatsApp(whatsapp string) (*models.Client, error) {
	return r.scanOne(`SELECT id, first_name, last_name, nickname, whatsapp, access_code, created_at
	                  FROM jm_clients WHERE whatsapp = $1`, whatsapp)
}

func (r *clientRepository) scanOne(query string, arg interface{}) (*models.Client, error) {
	client := &models.Client{}
	err := r.db.QueryRow(query, arg).Scan(
		&client.ID, &client.FirstName, &client.LastName, &client.Nickname,
		&client.WhatsApp, &client.AccessCode, &client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client: %v", ErrDatabaseError, err)
	}
	return client, nil
}

// GetClients lists all clients, newest registration first.
func (r *clientRepository) GetClients() ([]models.Client, error) {
	clients := []models.Client{}
	rows, err := r.db.Query(`SELECT id, first_name, last_name, nickname, whatsapp, access_code, created_at
	                         FROM jm_clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID, &client.FirstName, &client.LastName, &client.Nickname,
			&client.WhatsApp, &client.AccessCode, &client.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// CountClients returns the number of registered clients.
func (r *clientRepository) CountClients() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM jm_clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
	}
	return count, nil
}
