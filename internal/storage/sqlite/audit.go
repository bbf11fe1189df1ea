package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/innerventory/server/internal/models"
)

type auditStore struct {
	db querier
}

func (s *auditStore) Append(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO audit_logs (id, user_id, message, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Message, formatTime(entry.CreatedAt)); err != nil {
		return models.AuditEntry{}, fmt.Errorf("append audit entry: %w", translateError(err))
	}
	return entry, nil
}

func (s *auditStore) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	const query = `SELECT id, user_id, message, created_at FROM audit_logs ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, limit)
	for rows.Next() {
		var entry models.AuditEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Message, &createdAt); err != nil {
			return nil, err
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
