package models

import (
	"strings"
	"time"
)

// Bra is an inventory line identified by type and size.
type Bra struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Label is the "{type} {size}" string attendees select bras by.
func (b Bra) Label() string {
	return NormalizeField(b.Type + " " + b.Size)
}

// NormalizeField trims surrounding whitespace; comparisons throughout the domain use it.
func NormalizeField(value string) string {
	return strings.TrimSpace(value)
}
