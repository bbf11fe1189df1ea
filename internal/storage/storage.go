package storage

import (
	"context"
	"errors"

	"github.com/innerventory/server/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Repository groups data access by aggregate. Implementations returned inside
// WithTx share one database transaction.
type Repository interface {
	Users() UserStore
	Bras() BraStore
	Events() EventStore
	Audit() AuditStore

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Ping(ctx context.Context) error
	Close()
}

// UserStore captures credential persistence.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// BraStore captures inventory persistence.
type BraStore interface {
	List(ctx context.Context) ([]models.Bra, error)
	Get(ctx context.Context, id string) (models.Bra, error)
	Create(ctx context.Context, bra models.Bra) (models.Bra, error)
	Update(ctx context.Context, bra models.Bra) (models.Bra, error)
	Delete(ctx context.Context, id string) error
	// AdjustQuantity adds delta to the stored quantity in a single statement and returns the new row.
	AdjustQuantity(ctx context.Context, id string, delta int) (models.Bra, error)
}

// EventStore captures event and attendee persistence. Attendees are returned
// in their stored order.
type EventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	// GetForUpdate is Get plus a row lock held until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (models.Event, error)
	Create(ctx context.Context, event models.Event) (models.Event, error)
	// Replace overwrites name, date and the whole attendee list.
	Replace(ctx context.Context, event models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error

	AddAttendee(ctx context.Context, eventID string, attendee models.Attendee) (models.Attendee, error)
	UpdateAttendee(ctx context.Context, eventID string, attendee models.Attendee) error
	DeleteAttendee(ctx context.Context, eventID, attendeeID string) error
}

// AuditStore is the append-only action log.
type AuditStore interface {
	Append(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
