package postgres

import (
	"context"
	"fmt"

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
	const query = `
		INSERT INTO audit_logs (id, user_id, message)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	if err := s.db.QueryRow(ctx, query, entry.ID, entry.UserID, entry.Message).Scan(&entry.CreatedAt); err != nil {
		return models.AuditEntry{}, fmt.Errorf("append audit entry: %w", translateError(err))
	}
	return entry, nil
}

func (s *auditStore) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	const query = `
		SELECT id, user_id, message, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id
		LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, limit)
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
