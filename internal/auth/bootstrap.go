package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

// EnsureAdmin creates an Admin account for email unless one with that email already exists.
// created reports whether a new account was written.
func EnsureAdmin(ctx context.Context, users storage.UserStore, email, password string) (user models.User, created bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, false, errors.New("admin email and password are required")
	}
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, false, fmt.Errorf("hash admin password: %w", err)
	}
	user, err = users.CreateUser(ctx, models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin})
	if err != nil {
		return models.User{}, false, fmt.Errorf("create admin: %w", err)
	}
	return user, true, nil
}
