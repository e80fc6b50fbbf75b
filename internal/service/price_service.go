package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/catalog"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

// PriceService handles price history reads and writes.
// Every successful mutation refreshes the city catalog.
type PriceService struct {
	db        *sql.DB
	priceRepo *repository.PriceRepository
	catalog   *catalog.Index
}

// NewPriceService creates a new PriceService with the provided repository dependencies.
func NewPriceService(
	db *sql.DB,
	priceRepo *repository.PriceRepository,
	catalog *catalog.Index,
) *PriceService {
	return &PriceService{
		db:        db,
		priceRepo: priceRepo,
		catalog:   catalog,
	}
}

// ListCities returns every city with at least one record, alphabetically, straight from storage.
func (s *PriceService) ListCities(ctx context.Context) ([]string, error) {
	return s.priceRepo.ListCities(ctx)
}

// FilterCities searches the cached catalog for cities containing substr, ignoring case.
func (s *PriceService) FilterCities(substr string) []string {
	return s.catalog.Filter(substr)
}

// RefreshCatalog reloads the city catalog from storage.
func (s *PriceService) RefreshCatalog(ctx context.Context) error {
	return s.catalog.Refresh(ctx)
}

// GetSeries returns the price history of a city ordered by year.
// An unknown city yields an empty series.
func (s *PriceService) GetSeries(ctx context.Context, city string) (model.CitySeries, error) {
	return s.priceRepo.GetSeries(ctx, city)
}

// GetCityInfo returns the description and wiki link shown for a city.
func (s *PriceService) GetCityInfo(ctx context.Context, city string) (model.CityInfo, error) {
	return s.priceRepo.GetCityInfo(ctx, city)
}

// UpsertPrice validates and stores the price of a city for one year, replacing any
// existing value for that year.
func (s *PriceService) UpsertPrice(ctx context.Context, city string, year int, req request.UpsertPriceRequest) (model.PriceRecord, error) {
	if err := validation.ValidateUpsertPrice(city, year, req); err != nil {
		return model.PriceRecord{}, err
	}

	record, err := s.priceRepo.Upsert(ctx, model.PriceRecord{
		City:         city,
		Year:         year,
		AveragePrice: *req.AveragePrice,
		Description:  req.Description,
		WikiLink:     req.WikiLink,
	})
	if err != nil {
		return model.PriceRecord{}, err
	}

	s.refreshCatalog(ctx)
	return record, nil
}

// AddCity stores several yearly prices of one city sharing a description and wiki link.
// All years are written in a single transaction.
func (s *PriceService) AddCity(ctx context.Context, req request.AddCityRequest) ([]model.PriceRecord, error) {
	if err := validation.ValidateAddCity(req); err != nil {
		return nil, err
	}

	records := make([]model.PriceRecord, 0, len(req.Prices))
	err := withTx(ctx, s.db, s.priceRepo, func(repo *repository.PriceRepository) error {
		for _, p := range req.Prices {
			record, err := repo.Upsert(ctx, model.PriceRecord{
				City:         req.City,
				Year:         p.Year,
				AveragePrice: p.AveragePrice,
				Description:  req.Description,
				WikiLink:     req.WikiLink,
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add city %q: %w", req.City, err)
	}

	s.refreshCatalog(ctx)
	return records, nil
}

// DeleteCity removes every record of a city. Deleting an unknown city succeeds with
// zero records deleted.
func (s *PriceService) DeleteCity(ctx context.Context, city string) (model.DeleteResult, error) {
	if err := validation.ValidateCity(city); err != nil {
		return model.DeleteResult{}, err
	}

	deleted, err := s.priceRepo.DeleteCity(ctx, city)
	if err != nil {
		return model.DeleteResult{}, err
	}

	if deleted > 0 {
		s.refreshCatalog(ctx)
	}
	return model.DeleteResult{City: city, Deleted: deleted}, nil
}

// refreshCatalog reloads the catalog after a committed write. The write already
// succeeded, so a failed refresh is logged rather than returned.
func (s *PriceService) refreshCatalog(ctx context.Context) {
	if err := s.catalog.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh city catalog: %v", err)
	}
}
