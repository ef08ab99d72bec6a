package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

// PostgresRepository persists beer records in the beers table. Every query is
// scoped by (app_id, user_id), mirroring the per-app, per-user document
// collection layout the mobile clients expect.
type PostgresRepository struct {
	db    *sql.DB
	appID string
}

func NewPostgresRepository(db *sql.DB, appID string) *PostgresRepository {
	return &PostgresRepository{db: db, appID: appID}
}

const beerColumns = `id, user_id, beer_name, brand, manufacturer, abv, capacity, hops,
		is_not_beer, website_url, image_url, has_drunk, memo, rating, created_at`

func (r *PostgresRepository) Insert(ctx context.Context, rec *models.BeerRecord) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO beers (app_id, user_id, beer_name, brand, manufacturer, abv, capacity, hops,
			is_not_beer, website_url, image_url, has_drunk, memo, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, r.appID, rec.UserID, rec.BeerName, rec.Brand, rec.Manufacturer, rec.ABV, rec.Capacity,
		rec.Hops, rec.IsNotBeer, rec.WebsiteURL, rec.ImageURL, rec.HasDrunk, rec.Memo,
		rec.Rating, rec.Timestamp).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert beer: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.BeerRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+beerColumns+`
		FROM beers
		WHERE id = $1 AND app_id = $2 AND user_id = $3
	`, id, r.appID, userID)

	rec, err := scanBeer(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beer: %w", err)
	}
	return rec, nil
}

// Update is a whole-record overwrite of the mutable fields. A missing row is
// an error, never an insert.
func (r *PostgresRepository) Update(ctx context.Context, id, userID string, rec *models.BeerRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE beers
		SET beer_name = $1, brand = $2, manufacturer = $3, abv = $4, capacity = $5,
			hops = $6, is_not_beer = $7, website_url = $8, has_drunk = $9, memo = $10, rating = $11
		WHERE id = $12 AND app_id = $13 AND user_id = $14
	`, rec.BeerName, rec.Brand, rec.Manufacturer, rec.ABV, rec.Capacity, rec.Hops,
		rec.IsNotBeer, rec.WebsiteURL, rec.HasDrunk, rec.Memo, rec.Rating,
		id, r.appID, userID)
	if err != nil {
		return fmt.Errorf("failed to update beer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleDrunk inverts the flag inside the UPDATE itself, so two concurrent
// toggles each flip whatever value the statement finds.
func (r *PostgresRepository) ToggleDrunk(ctx context.Context, id, userID string) (*models.BeerRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE beers
		SET has_drunk = NOT has_drunk
		WHERE id = $1 AND app_id = $2 AND user_id = $3
		RETURNING `+beerColumns+`
	`, id, r.appID, userID)

	rec, err := scanBeer(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle drunk flag: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM beers
		WHERE id = $1 AND app_id = $2 AND user_id = $3
	`, id, r.appID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete beer: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Page(ctx context.Context, userID string, descending bool, limit int, after *Cursor) ([]models.BeerRecord, error) {
	query := `
		SELECT ` + beerColumns + `
		FROM beers
		WHERE app_id = $1 AND user_id = $2`
	args := []any{r.appID, userID}

	if after != nil {
		if descending {
			query += ` AND (created_at, id) < ($3, $4)`
		} else {
			query += ` AND (created_at, id) > ($3, $4)`
		}
		args = append(args, after.Timestamp, after.ID)
	}
	if descending {
		query += ` ORDER BY created_at DESC, id DESC`
	} else {
		query += ` ORDER BY created_at ASC, id ASC`
	}
	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query beers: %w", err)
	}
	defer rows.Close()

	var recs []models.BeerRecord
	for rows.Next() {
		rec, err := scanBeer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beer: %w", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beers: %w", err)
	}
	return recs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBeer(row rowScanner) (*models.BeerRecord, error) {
	var rec models.BeerRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.BeerName, &rec.Brand, &rec.Manufacturer, &rec.ABV,
		&rec.Capacity, &rec.Hops, &rec.IsNotBeer, &rec.WebsiteURL, &rec.ImageURL,
		&rec.HasDrunk, &rec.Memo, &rec.Rating, &rec.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
