package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/catalog"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

// TransferService handles bulk import and export of price records.
type TransferService struct {
	db        *sql.DB
	priceRepo *repository.PriceRepository
	catalog   *catalog.Index
}

// NewTransferService creates a new TransferService with the provided repository dependencies.
func NewTransferService(
	db *sql.DB,
	priceRepo *repository.PriceRepository,
	catalog *catalog.Index,
) *TransferService {
	return &TransferService{
		db:        db,
		priceRepo: priceRepo,
		catalog:   catalog,
	}
}

// Import parses payload and upserts every record in one transaction.
//
// The payload is parsed completely before anything is written: a malformed record
// fails the whole import with an *apperrors.FormatError and leaves storage untouched.
// A storage failure mid-way rolls back every record of the batch.
func (s *TransferService) Import(ctx context.Context, payload string, format transfer.Format) (model.ImportResult, error) {
	records, err := transfer.ParseFormat(payload, format)
	if err != nil {
		return model.ImportResult{}, err
	}

	batchID := uuid.New().String()

	err = withTx(ctx, s.db, s.priceRepo, func(repo *repository.PriceRepository) error {
		for _, r := range records {
			if _, err := repo.Upsert(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("import batch %s: %w", batchID, err)
	}

	cities := transfer.Cities(records)
	log.Printf("Imported %d price records for %d cities (batch %s)", len(records), len(cities), batchID)

	if err := s.catalog.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh city catalog after import %s: %v", batchID, err)
	}

	return model.ImportResult{
		BatchID: batchID,
		Records: len(records),
		Cities:  cities,
	}, nil
}

// Export serializes the records of the given cities, or of every city when none are
// given, ordered by city and year. FormatAuto exports JSON.
func (s *TransferService) Export(ctx context.Context, format transfer.Format, cities ...string) (string, error) {
	records, err := s.collect(ctx, cities)
	if err != nil {
		return "", err
	}

	return transfer.Serialize(records, format)
}

func (s *TransferService) collect(ctx context.Context, cities []string) ([]model.PriceRecord, error) {
	if len(cities) == 0 {
		return s.priceRepo.ListAll(ctx)
	}

	records := []model.PriceRecord{}
	for _, city := range cities {
		series, err := s.priceRepo.GetSeries(ctx, city)
		if err != nil {
			return nil, err
		}
		records = append(records, series.Points...)
	}
	return records, nil
}
