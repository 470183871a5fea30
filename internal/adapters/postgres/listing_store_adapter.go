package postgres

import (
	"context"
	"errors"
	"fmt"

	"apartment-search-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingFields = `id, title, price, surface, rooms, bedrooms, address, description,
		images, source, published_at, furnished, balcony, parking, pets,
		charges, floor_number, external_id, url`

// ListingStoreAdapter реализует ListingStorePort поверх PostgreSQL.
// Уникальных ограничений на (source, external_id) таблица не несет:
// сверкой занимается прикладной слой.
type ListingStoreAdapter struct {
	pool *pgxpool.Pool
}

func NewListingStoreAdapter(pool *pgxpool.Pool) (*ListingStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStoreAdapter{pool: pool}, nil
}

func (a *ListingStoreAdapter) Insert(ctx context.Context, listing domain.Listing) error {
	sql := `
		INSERT INTO listings (` + listingFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := a.pool.Exec(ctx, sql,
		listing.ID, listing.Title, listing.Price, listing.Surface, listing.Rooms,
		listing.Bedrooms, listing.Address, listing.Description, listing.Images,
		listing.Source, listing.PublishedAt, listing.Furnished, listing.Balcony,
		listing.Parking, listing.Pets, listing.Charges, listing.Floor,
		listing.ExternalID, listing.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (a *ListingStoreAdapter) FindOne(ctx context.Context, filter domain.StoreFilter) (*domain.Listing, error) {
	whereClause, args, err := translateFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to translate filter: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM listings %s LIMIT 1`, listingFields, whereClause)

	row := a.pool.QueryRow(ctx, sql, args...)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to query listing: %w", err)
	}
	return listing, nil
}

func (a *ListingStoreAdapter) Find(ctx context.Context, filter domain.StoreFilter, limit int) ([]domain.Listing, error) {
	whereClause, args, err := translateFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to translate filter: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM listings %s ORDER BY published_at DESC LIMIT %d`,
		listingFields, whereClause, limit)

	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return listings, nil
}

func (a *ListingStoreAdapter) UpdateOne(ctx context.Context, filter domain.StoreFilter, listing domain.Listing) error {
	whereClause, args, err := translateFilter(filter)
	if err != nil {
		return fmt.Errorf("failed to translate filter: %w", err)
	}

	// Обновляется ровно одна запись, подзапросом выбирается первая совпавшая
	base := len(args)
	sql := fmt.Sprintf(`
		UPDATE listings SET
			title = $%d, price = $%d, surface = $%d, rooms = $%d, bedrooms = $%d,
			address = $%d, description = $%d, images = $%d, published_at = $%d,
			furnished = $%d, balcony = $%d, parking = $%d, pets = $%d,
			charges = $%d, floor_number = $%d, url = $%d
		WHERE id = (SELECT id FROM listings %s LIMIT 1)`,
		base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		base+10, base+11, base+12, base+13, base+14, base+15, base+16,
		whereClause)

	args = append(args,
		listing.Title, listing.Price, listing.Surface, listing.Rooms, listing.Bedrooms,
		listing.Address, listing.Description, listing.Images, listing.PublishedAt,
		listing.Furnished, listing.Balcony, listing.Parking, listing.Pets,
		listing.Charges, listing.Floor, listing.URL,
	)

	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (a *ListingStoreAdapter) DeleteOne(ctx context.Context, filter domain.StoreFilter) error {
	whereClause, args, err := translateFilter(filter)
	if err != nil {
		return fmt.Errorf("failed to translate filter: %w", err)
	}

	sql := fmt.Sprintf(`DELETE FROM listings WHERE id = (SELECT id FROM listings %s LIMIT 1)`, whereClause)

	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID, &l.Title, &l.Price, &l.Surface, &l.Rooms, &l.Bedrooms,
		&l.Address, &l.Description, &l.Images, &l.Source, &l.PublishedAt,
		&l.Furnished, &l.Balcony, &l.Parking, &l.Pets,
		&l.Charges, &l.Floor, &l.ExternalID, &l.URL,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
