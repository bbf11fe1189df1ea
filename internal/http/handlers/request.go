package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/innerventory/server/internal/audit"
	"github.com/innerventory/server/internal/events"
	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/inventory"
	"github.com/innerventory/server/internal/middleware"
	"github.com/innerventory/server/internal/storage"
)

const maxBodyBytes = 1 << 20

// Guards are the middleware chains applied to protected routes.
type Guards struct {
	Auth  func(http.Handler) http.Handler
	Admin func(http.Handler) http.Handler
}

func (g Guards) authed(fn http.HandlerFunc) http.Handler {
	return g.Auth(fn)
}

func (g Guards) adminOnly(fn http.HandlerFunc) http.Handler {
	return g.Auth(g.Admin(fn))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return errBadRequest("invalid JSON payload")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return errBadRequest(fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			return errBadRequest(fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			return errBadRequest(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errBadRequest(err.Error())
}

type badRequestError string

func (e badRequestError) Error() string { return string(e) }

func errBadRequest(message string) error { return badRequestError(message) }

// writeError maps service errors to HTTP statuses. Unknown errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest badRequestError
	switch {
	case errors.As(err, &badRequest):
		respond.Error(w, http.StatusBadRequest, string(badRequest))
	case errors.Is(err, events.ErrInvalidEvent), errors.Is(err, audit.ErrEmptyMessage):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, "Already exists")
	case errors.Is(err, inventory.ErrInsufficientStock):
		respond.Error(w, http.StatusConflict, err.Error())
	default:
		middleware.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// userID is the token subject of the authenticated caller.
func userID(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID()
	}
	return ""
}
