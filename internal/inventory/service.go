package inventory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/innerventory/server/internal/audit"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

// BraPatch is a partial update; nil fields keep their stored value.
type BraPatch struct {
	Type     *string
	Size     *string
	Quantity *int
}

// Service owns direct inventory edits. Every mutation is audited in the same transaction.
type Service struct {
	repo   storage.Repository
	audit  *audit.Logger
	logger zerolog.Logger
}

// NewService builds the inventory service.
func NewService(repo storage.Repository, auditLog *audit.Logger, logger zerolog.Logger) *Service {
	return &Service{repo: repo, audit: auditLog, logger: logger.With().Str("component", "inventory").Logger()}
}

// List returns every bra ordered by type and size.
func (s *Service) List(ctx context.Context) ([]models.Bra, error) {
	return s.repo.Bras().List(ctx)
}

// Get returns one bra.
func (s *Service) Get(ctx context.Context, id string) (models.Bra, error) {
	return s.repo.Bras().Get(ctx, id)
}

// Create stores a new bra with trimmed type and size.
func (s *Service) Create(ctx context.Context, userID string, bra models.Bra) (models.Bra, error) {
	bra.Type = strings.TrimSpace(bra.Type)
	bra.Size = strings.TrimSpace(bra.Size)

	var created models.Bra
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		var err error
		if created, err = repo.Bras().Create(ctx, bra); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.BraCreated(created))
		return err
	})
	return created, err
}

// Update applies patch to the bra. An empty or no-op patch writes nothing.
func (s *Service) Update(ctx context.Context, userID, id string, patch BraPatch) (models.Bra, error) {
	var result models.Bra
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		current, err := repo.Bras().Get(ctx, id)
		if err != nil {
			return err
		}
		next := current
		if patch.Type != nil {
			next.Type = strings.TrimSpace(*patch.Type)
		}
		if patch.Size != nil {
			next.Size = strings.TrimSpace(*patch.Size)
		}
		if patch.Quantity != nil {
			next.Quantity = *patch.Quantity
		}
		if next.Type == current.Type && next.Size == current.Size && next.Quantity == current.Quantity {
			result = current
			return nil
		}
		if result, err = repo.Bras().Update(ctx, next); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.BraUpdated(current, result))
		return err
	})
	return result, err
}

// Delete removes the bra. Attendee selections naming it simply stop resolving.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		current, err := repo.Bras().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Bras().Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.BraDeleted(current))
		return err
	})
}
