package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/innerventory/server/internal/models"
)

type braStore struct {
	db querier
}

const braColumns = `id, type, size, quantity, updated_at`

func (s *braStore) List(ctx context.Context) ([]models.Bra, error) {
	rows, err := s.db.Query(ctx, `SELECT `+braColumns+` FROM bras ORDER BY type, size, id`)
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
	return scanBra(s.db.QueryRow(ctx, `SELECT `+braColumns+` FROM bras WHERE id = $1`, id))
}

func (s *braStore) Create(ctx context.Context, bra models.Bra) (models.Bra, error) {
	if bra.ID == "" {
		bra.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO bras (id, type, size, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + braColumns
	return scanBra(s.db.QueryRow(ctx, query, bra.ID, bra.Type, bra.Size, bra.Quantity))
}

func (s *braStore) Update(ctx context.Context, bra models.Bra) (models.Bra, error) {
	const query = `
		UPDATE bras SET type = $2, size = $3, quantity = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + braColumns
	return scanBra(s.db.QueryRow(ctx, query, bra.ID, bra.Type, bra.Size, bra.Quantity))
}

func (s *braStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM bras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bra: %w", err)
	}
	return requireAffected(tag)
}

// AdjustQuantity applies delta relative to the stored value so concurrent writers never lose updates.
func (s *braStore) AdjustQuantity(ctx context.Context, id string, delta int) (models.Bra, error) {
	const query = `
		UPDATE bras SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + braColumns
	return scanBra(s.db.QueryRow(ctx, query, id, delta))
}

func scanBra(row pgx.Row) (models.Bra, error) {
	var bra models.Bra
	if err := row.Scan(&bra.ID, &bra.Type, &bra.Size, &bra.Quantity, &bra.UpdatedAt); err != nil {
		return models.Bra{}, translateError(err)
	}
	return bra, nil
}
