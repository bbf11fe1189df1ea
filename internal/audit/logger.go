package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/innerventory/server/internal/metrics"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

// ErrEmptyMessage is returned when an action is logged without text.
var ErrEmptyMessage = errors.New("audit message is required")

// Logger appends user actions to the audit store and mirrors them to the process log.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates an audit logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger.With().Str("component", "audit").Logger()}
}

// Record appends one entry through store, which is usually bound to the caller's transaction.
func (l *Logger) Record(ctx context.Context, store storage.AuditStore, userID, message string) (models.AuditEntry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.AuditEntry{}, ErrEmptyMessage
	}
	entry, err := store.Append(ctx, models.AuditEntry{UserID: strings.TrimSpace(userID), Message: message})
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("record audit entry: %w", err)
	}
	metrics.AuditEntries.Inc()
	l.logger.Info().
		Str("audit_id", entry.ID).
		Str("user_id", entry.UserID).
		Msg(entry.Message)
	return entry, nil
}

// Recent returns up to limit entries, newest first. Non-positive limits fall back to 50; the cap is 500.
func (l *Logger) Recent(ctx context.Context, store storage.AuditStore, limit int) ([]models.AuditEntry, error) {
	switch {
	case limit <= 0:
		limit = 50
	case limit > 500:
		limit = 500
	}
	return store.Recent(ctx, limit)
}
