package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/innerventory/server/internal/models"
)

type userStore struct {
	db querier
}

// CreateUser inserts a new user row.
func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, role, created_at`
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	row := s.db.QueryRow(ctx, query, user.ID, strings.TrimSpace(user.Email), user.PasswordHash, string(models.NormalizeRole(string(user.Role))))
	return scanUser(row)
}

// FindByEmail fetches a user by email address, ignoring case.
func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`
	return scanUser(s.db.QueryRow(ctx, query, strings.TrimSpace(email)))
}

// FindByID fetches a user by id.
func (s *userStore) FindByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	var role string
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return models.User{}, translateError(err)
	}
	user.Role = models.NormalizeRole(role)
	return user, nil
}
