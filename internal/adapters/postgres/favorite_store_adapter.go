package postgres

import (
	"context"
	"fmt"

	"apartment-search-service/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoriteStoreAdapter реализует FavoriteStorePort поверх PostgreSQL.
type FavoriteStoreAdapter struct {
	pool *pgxpool.Pool
}

func NewFavoriteStoreAdapter(pool *pgxpool.Pool) (*FavoriteStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FavoriteStoreAdapter{pool: pool}, nil
}

func (a *FavoriteStoreAdapter) Add(ctx context.Context, ref domain.FavoriteRef) error {
	sql := `
		INSERT INTO favorites (listing_id, added_at)
		VALUES ($1, $2)
		ON CONFLICT (listing_id) DO NOTHING`

	tag, err := a.pool.Exec(ctx, sql, ref.ListingID, ref.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteExists
	}
	return nil
}

func (a *FavoriteStoreAdapter) Remove(ctx context.Context, listingID string) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM favorites WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (a *FavoriteStoreAdapter) List(ctx context.Context) ([]domain.FavoriteRef, error) {
	rows, err := a.pool.Query(ctx, `SELECT listing_id, added_at FROM favorites ORDER BY added_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var refs []domain.FavoriteRef
	for rows.Next() {
		var ref domain.FavoriteRef
		if err := rows.Scan(&ref.ListingID, &ref.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}
	return refs, nil
}
