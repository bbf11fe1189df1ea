package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/innerventory/server/internal/models"
)

type userStore struct {
	db querier
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.TrimSpace(user.Email)
	user.Role = models.NormalizeRole(string(user.Role))
	user.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, string(user.Role), formatTime(user.CreatedAt)); err != nil {
		return models.User{}, translateError(err)
	}
	return user, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM users WHERE email = ? COLLATE NOCASE`
	return scanUser(s.db.QueryRowContext(ctx, query, strings.TrimSpace(email)))
}

func (s *userStore) FindByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	var role, createdAt string
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &createdAt); err != nil {
		return models.User{}, translateError(err)
	}
	user.Role = models.NormalizeRole(role)
	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}
