package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

// PriceRepository provides data access methods for the prices table.
// It stores one row per (city, year) and answers the read queries behind the
// city list, the price chart and the city info panel.
type PriceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// WithTx returns a copy of the repository that runs every statement inside tx.
func (r *PriceRepository) WithTx(tx *sql.Tx) *PriceRepository {
	return &PriceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PriceRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListCities returns the distinct city names in alphabetical order.
// Returns an empty slice if the table is empty.
func (r *PriceRepository) ListCities(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT city FROM prices ORDER BY city`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("query cities", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, apperrors.NewStorageError("scan cities", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate cities", err)
	}

	return cities, nil
}

// GetSeries returns the price history of a city ordered by year ascending.
// An unknown city yields an empty series, not an error.
func (r *PriceRepository) GetSeries(ctx context.Context, city string) (model.CitySeries, error) {
	query := `
		SELECT id, city, year, average_price, description, wiki_link, created_at, updated_at
		FROM prices
		WHERE city = ?
		ORDER BY year ASC
	`

	records, err := r.queryRecords(ctx, "query price series", query, city)
	if err != nil {
		return model.CitySeries{}, err
	}

	return model.CitySeries{City: city, Points: records}, nil
}

// ListAll returns every stored record ordered by city, then year.
func (r *PriceRepository) ListAll(ctx context.Context) ([]model.PriceRecord, error) {
	query := `
		SELECT id, city, year, average_price, description, wiki_link, created_at, updated_at
		FROM prices
		ORDER BY city ASC, year ASC
	`

	return r.queryRecords(ctx, "query all prices", query)
}

// GetCityInfo returns the description and wiki link of a city.
//
// Both values are stored on every yearly record; the first record in storage order wins.
// A city without records yields model.NoDescription and an empty link.
func (r *PriceRepository) GetCityInfo(ctx context.Context, city string) (model.CityInfo, error) {
	query := `
		SELECT description, wiki_link
		FROM prices
		WHERE city = ?
		ORDER BY rowid
		LIMIT 1
	`

	var description, wikiLink sql.NullString
	err := r.getQuerier().QueryRowContext(ctx, query, city).Scan(&description, &wikiLink)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CityInfo{City: city, Description: model.NoDescription}, nil
	}
	if err != nil {
		return model.CityInfo{}, apperrors.NewStorageError("query city info", err)
	}

	return model.CityInfo{
		City:        city,
		Description: description.String,
		WikiLink:    wikiLink.String,
	}, nil
}

// Upsert inserts a record or replaces the values of the record sharing its (city, year).
// The write is a single statement, so readers never observe a partial update.
// The returned record carries the stored ID, which is kept on replacement.
func (r *PriceRepository) Upsert(ctx context.Context, rec model.PriceRecord) (model.PriceRecord, error) {
	query := `
		INSERT INTO prices (id, city, year, average_price, description, wiki_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(city, year) DO UPDATE SET
			average_price = excluded.average_price,
			description = excluded.description,
			wiki_link = excluded.wiki_link,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	now := time.Now().UTC()
	var createdAt sql.NullString

	err := r.getQuerier().QueryRowContext(ctx, query,
		uuid.New().String(),
		rec.City,
		rec.Year,
		rec.AveragePrice,
		nullIfEmpty(rec.Description),
		nullIfEmpty(rec.WikiLink),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	).Scan(&rec.ID, &createdAt)
	if err != nil {
		return model.PriceRecord{}, apperrors.NewStorageError("upsert price", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	rec.UpdatedAt = now
	return rec, nil
}

// DeleteCity removes every record of a city and reports how many rows were deleted.
// Deleting an unknown city is not an error; it affects zero rows.
func (r *PriceRepository) DeleteCity(ctx context.Context, city string) (int64, error) {
	query := `DELETE FROM prices WHERE city = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, city)
	if err != nil {
		return 0, apperrors.NewStorageError("delete city", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorageError("get rows affected", err)
	}

	return rowsAffected, nil
}

func (r *PriceRepository) queryRecords(ctx context.Context, op, query string, args ...any) ([]model.PriceRecord, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError(op, err)
	}
	defer rows.Close()

	records := []model.PriceRecord{}
	for rows.Next() {
		var p model.PriceRecord
		var description, wikiLink, createdAt, updatedAt sql.NullString

		err := rows.Scan(
			&p.ID,
			&p.City,
			&p.Year,
			&p.AveragePrice,
			&description,
			&wikiLink,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, apperrors.NewStorageError("scan prices", err)
		}

		p.Description = description.String
		p.WikiLink = wikiLink.String
		p.CreatedAt = parseTimestamp(createdAt)
		p.UpdatedAt = parseTimestamp(updatedAt)

		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate prices", err)
	}

	return records, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
