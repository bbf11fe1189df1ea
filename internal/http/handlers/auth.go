package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/middleware"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/models/dto"
	"github.com/innerventory/server/internal/storage"
)

// AuthHandler owns the register, login and token check endpoints.
type AuthHandler struct {
	users  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register attaches auth routes to the mux. Login goes through limiter.
func (h *AuthHandler) Register(mux *http.ServeMux, guards Guards, limiter *middleware.RateLimiter) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.Handle("POST /login", limiter.Limit(http.HandlerFunc(h.handleLogin)))
	mux.Handle("GET /protected", guards.authed(h.handleProtected))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.users.CreateUser(r.Context(), models.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         models.RoleStaff,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "User already exists")
			return
		}
		writeError(w, r, err)
		return
	}

	respond.Raw(w, http.StatusCreated, dto.RegisterResponse{
		Success: true,
		UserID:  created.ID,
		Message: "User registered successfully",
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, r, err)
		return
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, r, err)
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.Raw(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   token,
		Message: "Login successful",
		UserID:  user.ID,
		Role:    string(user.Role),
	})
}

func (h *AuthHandler) handleProtected(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	respond.Raw(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Access granted",
		"user":    claims,
	})
}
