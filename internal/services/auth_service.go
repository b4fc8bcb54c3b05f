package services

import (
	"database/sql"
	"errors"
	"fmt"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
	"jm_store_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// AuthResponse DTO returned on a successful admin login.
type AuthResponse struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req models.AdminCredentials) (*AuthResponse, error)
	EnsureDefaultAdmin(username, password string) error
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{authRepo: authRepo, db: db}
}

// Login checks the shared admin credentials and issues a signed token. A wrong
// password gets the same error as an unknown username.
func (s *authService) Login(req models.AdminCredentials) (*AuthResponse, error) {
	admin, err := s.authRepo.GetAdminByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{Username: admin.Username, AccessToken: token}, nil
}

// EnsureDefaultAdmin seeds the shared admin account at boot when it does not
// exist yet. The password is stored hashed; plaintext never touches the DB.
func (s *authService) EnsureDefaultAdmin(username, password string) error {
	_, err := s.authRepo.GetAdminByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for default admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}
	admin := &models.AdminUser{Username: username, PasswordHash: string(hash)}
	if _, err := s.authRepo.CreateAdmin(s.db, admin); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	utils.LogInfo("Seeded default admin account", map[string]interface{}{"username": username})
	return nil
}
