package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/catalog"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
)

// Services bundles every service wired to one database and one shared catalog,
// the way cmd/server wires them.
type Services struct {
	Catalog  *catalog.Index
	Price    *service.PriceService
	Forecast *service.ForecastService
	Transfer *service.TransferService
	System   *service.SystemService
}

// NewTestServices wires all services against db.
func NewTestServices(t *testing.T, db *sql.DB) Services {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	index := catalog.New(priceRepo)

	return Services{
		Catalog:  index,
		Price:    service.NewPriceService(db, priceRepo, index),
		Forecast: service.NewForecastService(priceRepo),
		Transfer: service.NewTransferService(db, priceRepo, index),
		System:   service.NewSystemService(db),
	}
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()
	return NewTestServices(t, db).Price
}

func NewTestForecastService(t *testing.T, db *sql.DB) *service.ForecastService {
	t.Helper()
	return NewTestServices(t, db).Forecast
}

func NewTestTransferService(t *testing.T, db *sql.DB) *service.TransferService {
	t.Helper()
	return NewTestServices(t, db).Transfer
}

// FloatPtr returns a pointer to v, for optional request fields.
func FloatPtr(v float64) *float64 {
	return &v
}
