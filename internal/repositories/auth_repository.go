package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jm_store_backend/internal/models"
)

// AuthRepository defines the interface for admin-user database operations.
type AuthRepository interface {
	GetAdminByUsername(username string) (*models.AdminUser, error)
	CreateAdmin(executor SQLExecutor, admin *models.AdminUser) (int64, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// GetAdminByUsername retrieves an admin account by username.
func (r *authRepository) GetAdminByUsername(username string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := `SELECT id, username, password_hash, created_at FROM jm_admins WHERE username = $1`

	err := r.db.QueryRow(query, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting admin %s: %v", ErrDatabaseError, username, err)
	}
	return admin, nil
}

// CreateAdmin inserts a new admin account. Used at boot to seed the default
// shared account when none exists.
func (r *authRepository) CreateAdmin(executor SQLExecutor, admin *models.AdminUser) (int64, error) {
	query := `INSERT INTO jm_admins (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`

	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query, admin.Username, admin.PasswordHash, admin.CreatedAt).Scan(&admin.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating admin: %v", ErrDatabaseError, err)
	}
	return admin.ID, nil
}
