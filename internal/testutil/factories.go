package testutil

import (
	"database/sql"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

var cityCounter atomic.Int64

// MakeID returns a fresh record ID.
func MakeID() string {
	return uuid.New().String()
}

// MakeCityName returns a unique city name with the given prefix.
func MakeCityName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, cityCounter.Add(1))
}

// PriceRecordBuilder provides a fluent interface for creating test price records.
//
// Example usage:
//
//	// Simple creation with defaults
//	record := testutil.NewPriceRecord().Build(t, db)
//
//	// Customized record
//	record := testutil.NewPriceRecord().
//	    WithCity("Moscow").
//	    WithYear(2021).
//	    WithPrice(125000).
//	    Build(t, db)
type PriceRecordBuilder struct {
	ID           string
	City         string
	Year         int
	AveragePrice float64
	Description  string
	WikiLink     string
}

// NewPriceRecord creates a PriceRecordBuilder with sensible defaults.
func NewPriceRecord() *PriceRecordBuilder {
	return &PriceRecordBuilder{
		ID:           MakeID(),
		City:         MakeCityName("Test City"),
		Year:         2020,
		AveragePrice: 100000,
		Description:  "Test description",
		WikiLink:     "https://en.wikipedia.org/wiki/Test",
	}
}

// WithCity sets a custom city.
func (b *PriceRecordBuilder) WithCity(city string) *PriceRecordBuilder {
	b.City = city
	return b
}

// WithYear sets a custom year.
func (b *PriceRecordBuilder) WithYear(year int) *PriceRecordBuilder {
	b.Year = year
	return b
}

// WithPrice sets a custom average price.
func (b *PriceRecordBuilder) WithPrice(price float64) *PriceRecordBuilder {
	b.AveragePrice = price
	return b
}

// WithDescription sets a custom description.
func (b *PriceRecordBuilder) WithDescription(desc string) *PriceRecordBuilder {
	b.Description = desc
	return b
}

// WithWikiLink sets a custom wiki link. An empty link is stored as NULL.
func (b *PriceRecordBuilder) WithWikiLink(link string) *PriceRecordBuilder {
	b.WikiLink = link
	return b
}

// Build inserts the record directly into the database and returns it.
func (b *PriceRecordBuilder) Build(t *testing.T, db *sql.DB) model.PriceRecord {
	t.Helper()

	query := `
		INSERT INTO prices (id, city, year, average_price, description, wiki_link)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var link any
	if b.WikiLink != "" {
		link = b.WikiLink
	}

	_, err := db.Exec(query, b.ID, b.City, b.Year, b.AveragePrice, b.Description, link)
	if err != nil {
		t.Fatalf("Failed to create test price record: %v", err)
	}

	return model.PriceRecord{
		ID:           b.ID,
		City:         b.City,
		Year:         b.Year,
		AveragePrice: b.AveragePrice,
		Description:  b.Description,
		WikiLink:     b.WikiLink,
	}
}

// Convenience functions

// CreateSeries stores one record per (year, price) pair for city and returns them in order.
//
// Example usage:
//
//	records := testutil.CreateSeries(t, db, "Moscow", map[int]float64{2020: 120000, 2021: 125000})
func CreateSeries(t *testing.T, db *sql.DB, city string, prices map[int]float64) []model.PriceRecord {
	t.Helper()

	years := make([]int, 0, len(prices))
	for year := range prices {
		years = append(years, year)
	}
	slices.Sort(years)

	records := make([]model.PriceRecord, 0, len(years))
	for _, year := range years {
		records = append(records, NewPriceRecord().WithCity(city).WithYear(year).WithPrice(prices[year]).Build(t, db))
	}
	return records
}

// CreateLinearSeries stores count consecutive years starting at startYear, with the price
// rising by step each year.
func CreateLinearSeries(t *testing.T, db *sql.DB, city string, startYear, count int, start, step float64) []model.PriceRecord {
	t.Helper()

	prices := make(map[int]float64, count)
	for i := 0; i < count; i++ {
		prices[startYear+i] = start + float64(i)*step
	}
	return CreateSeries(t, db, city, prices)
}
