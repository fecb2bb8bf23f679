package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/splice-sistemas/splice-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.Profile, error)
	CreateUser(ctx context.Context, name, email, password, role string) (models.Profile, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.Profile, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db *sqlx.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user with their highest-privilege role.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.Profile, error) {
	var user models.Profile
	err := s.db.GetContext(ctx, &user,
		`SELECT id, name, email, created_at FROM profiles WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, fmt.Errorf("usuário %s não encontrado", id)
		}
		return models.Profile{}, err
	}
	user.Role, err = s.primaryRole(ctx, id)
	return user, err
}

// CreateUser creates a new account, hashing the password and granting the
// given role (operator when empty).
func (s *UserService) CreateUser(ctx context.Context, name, email, password, role string) (models.Profile, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	if role == "" {
		role = models.RoleOperator
	}
	if role != models.RoleAdmin && role != models.RoleManager && role != models.RoleOperator {
		return models.Profile{}, fmt.Errorf("papel inválido: %s", role)
	}

	user := models.Profile{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Role:  role,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, string(hashedPassword)); err != nil {
		return models.Profile{}, err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES (?, ?)`, user.ID, role); err != nil {
		return models.Profile{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Profile{}, err
	}
	return user, nil
}

// EnsureAdmin creates the seed administrator account when no profile exists
// for the given e-mail. Existing accounts are left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM profiles WHERE email = ?`, email); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := s.CreateUser(ctx, "Administrador", email, password, models.RoleAdmin)
	return err
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.Profile, error) {
	var user models.Profile
	err := s.db.GetContext(ctx, &user,
		`SELECT id, name, email, password_hash, created_at FROM profiles WHERE email = ?`, email)
	if err != nil {
		return models.Profile{}, fmt.Errorf("falha na autenticação: usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.Profile{}, fmt.Errorf("falha na autenticação: senha inválida")
	}

	user.PasswordHash = ""
	user.Role, err = s.primaryRole(ctx, user.ID)
	return user, err
}

// HasRole reports whether a user carries the given role. Admins satisfy
// every role check.
func (s *UserService) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role IN (?, ?)`,
		userID, role, models.RoleAdmin)
	return n > 0, err
}

// primaryRole picks the highest-privilege role a user holds.
func (s *UserService) primaryRole(ctx context.Context, userID string) (string, error) {
	var roles []string
	if err := s.db.SelectContext(ctx, &roles,
		`SELECT role FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return "", err
	}
	best := models.RoleOperator
	for _, r := range roles {
		switch r {
		case models.RoleAdmin:
			return models.RoleAdmin, nil
		case models.RoleManager:
			best = models.RoleManager
		}
	}
	return best, nil
}
