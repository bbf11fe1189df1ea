package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/innerventory/server/internal/models"
)

type braStore struct {
	db querier
}

const braColumns = `id, type, size, quantity, updated_at`

func (s *braStore) List(ctx context.Context) ([]models.Bra, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+braColumns+` FROM bras ORDER BY type, size, id`)
	if err != nil {
		return nil, fmt.Errorf("list bras: %w", err)
	}
	defer rows.Close()

	bras := make([]models.Bra, 0)
	for rows.Next() {
		bra, err := scanBra(rows)
		if err != nil {
			return nil, err
		}
		bras = append(bras, bra)
	}
	return bras, rows.Err()
}

func (s *braStore) Get(ctx context.Context, id string) (models.Bra, error) {
	return scanBra(s.db.QueryRowContext(ctx, `SELECT `+braColumns+` FROM bras WHERE id = ?`, id))
}

func (s *braStore) Create(ctx context.Context, bra models.Bra) (models.Bra, error) {
	if bra.ID == "" {
		bra.ID = uuid.NewString()
	}
	const query = `INSERT INTO bras (id, type, size, quantity, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, bra.ID, bra.Type, bra.Size, bra.Quantity, now()); err != nil {
		return models.Bra{}, translateError(err)
	}
	return s.Get(ctx, bra.ID)
}

func (s *braStore) Update(ctx context.Context, bra models.Bra) (models.Bra, error) {
	const query = `UPDATE bras SET type = ?, size = ?, quantity = ?, updated_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, bra.Type, bra.Size, bra.Quantity, now(), bra.ID)
	if err != nil {
		return models.Bra{}, translateError(err)
	}
	if err := requireAffected(result); err != nil {
		return models.Bra{}, err
	}
	return s.Get(ctx, bra.ID)
}

func (s *braStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bras WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bra: %w", err)
	}
	return requireAffected(result)
}

func (s *braStore) AdjustQuantity(ctx context.Context, id string, delta int) (models.Bra, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE bras SET quantity = quantity + ?, updated_at = ? WHERE id = ?`, delta, now(), id)
	if err != nil {
		return models.Bra{}, fmt.Errorf("adjust bra quantity: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return models.Bra{}, err
	}
	return s.Get(ctx, id)
}

func scanBra(row scanner) (models.Bra, error) {
	var bra models.Bra
	var updatedAt string
	if err := row.Scan(&bra.ID, &bra.Type, &bra.Size, &bra.Quantity, &updatedAt); err != nil {
		return models.Bra{}, translateError(err)
	}
	var err error
	if bra.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Bra{}, err
	}
	return bra, nil
}
