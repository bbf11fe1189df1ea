package models

import "time"

// AuditEntry is one append-only line in the action log.
type AuditEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
