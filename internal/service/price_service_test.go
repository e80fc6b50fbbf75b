package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/testutil"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

func TestPriceService_UpsertPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the record and refreshes the catalog", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		record, err := svcs.Price.UpsertPrice(ctx, "Москва", 2021, request.UpsertPriceRequest{
			AveragePrice: testutil.FloatPtr(125000),
			Description:  "Москва — центр финансов и деловой активности.",
			WikiLink:     "https://ru.wikipedia.org/wiki/Москва",
		})
		if err != nil {
			t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
		}
		if record.ID == "" || record.City != "Москва" || record.Year != 2021 {
			t.Errorf("Unexpected record %+v", record)
		}

		if got := svcs.Price.FilterCities("мос"); !reflect.DeepEqual(got, []string{"Москва"}) {
			t.Errorf("Expected catalog to contain Москва, got %v", got)
		}
	})

	t.Run("rejects invalid input without writing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		tests := []struct {
			name  string
			city  string
			year  int
			req   request.UpsertPriceRequest
			field string
		}{
			{"missing price", "Kazan", 2020, request.UpsertPriceRequest{}, "averagePrice"},
			{"empty city", " ", 2020, request.UpsertPriceRequest{AveragePrice: testutil.FloatPtr(1)}, "city"},
			{"year out of range", "Kazan", 99, request.UpsertPriceRequest{AveragePrice: testutil.FloatPtr(1)}, "year"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.UpsertPrice(ctx, tt.city, tt.year, tt.req)

				var vErr *validation.Error
				if !errors.As(err, &vErr) {
					t.Fatalf("Expected *validation.Error, got %v", err)
				}
				if _, ok := vErr.Fields[tt.field]; !ok {
					t.Errorf("Expected %s field error, got %v", tt.field, vErr.Fields)
				}
				if !errors.Is(err, apperrors.ErrValidation) {
					t.Error("Expected errors.Is(err, ErrValidation)")
				}
			})
		}

		if testutil.CountRows(t, db) != 0 {
			t.Errorf("Expected no rows written, got %d", testutil.CountRows(t, db))
		}
	})

	t.Run("accepts zero and negative prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		for year, price := range map[int]float64{2020: 0, 2021: -500} {
			if _, err := svc.UpsertPrice(ctx, "Nowhere", year, request.UpsertPriceRequest{AveragePrice: testutil.FloatPtr(price)}); err != nil {
				t.Errorf("UpsertPrice(%v) returned unexpected error: %v", price, err)
			}
		}
	})
}

func TestPriceService_AddCity(t *testing.T) {
	ctx := context.Background()

	t.Run("writes every year with shared info", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		records, err := svc.AddCity(ctx, request.AddCityRequest{
			City: "Kazan",
			Prices: []model.YearPrice{
				{Year: 2022, AveragePrice: 100000},
				{Year: 2020, AveragePrice: 90000},
				{Year: 2021, AveragePrice: 95000},
			},
			Description: "Capital of Tatarstan",
		})
		if err != nil {
			t.Fatalf("AddCity() returned unexpected error: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(records))
		}

		series, err := svc.GetSeries(ctx, "Kazan")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}
		if got := series.Years(); !reflect.DeepEqual(got, []float64{2020, 2021, 2022}) {
			t.Errorf("Expected ascending years, got %v", got)
		}

		info, err := svc.GetCityInfo(ctx, "Kazan")
		if err != nil {
			t.Fatalf("GetCityInfo() returned unexpected error: %v", err)
		}
		if info.Description != "Capital of Tatarstan" {
			t.Errorf("Expected shared description, got %q", info.Description)
		}
	})

	t.Run("storage failure rolls back every year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		failOnYear(t, db, 2021)

		_, err := svc.AddCity(ctx, request.AddCityRequest{
			City:   "Kazan",
			Prices: []model.YearPrice{{Year: 2020, AveragePrice: 1}, {Year: 2021, AveragePrice: 2}},
		})
		if !errors.Is(err, apperrors.ErrStorage) {
			t.Fatalf("Expected ErrStorage, got %v", err)
		}
		if testutil.CountRows(t, db) != 0 {
			t.Errorf("Expected rollback to leave no rows, got %d", testutil.CountRows(t, db))
		}

		cities, err := svc.ListCities(ctx)
		if err != nil {
			t.Fatalf("ListCities() returned unexpected error: %v", err)
		}
		if len(cities) != 0 {
			t.Errorf("Expected no cities, got %v", cities)
		}
	})
}

func TestPriceService_DeleteCity(t *testing.T) {
	ctx := context.Background()

	t.Run("delete then get returns an empty series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		testutil.CreateLinearSeries(t, db, "Moscow", 2020, 5, 120000, 5000)
		if err := svcs.Price.RefreshCatalog(ctx); err != nil {
			t.Fatalf("RefreshCatalog() returned unexpected error: %v", err)
		}

		result, err := svcs.Price.DeleteCity(ctx, "Moscow")
		if err != nil {
			t.Fatalf("DeleteCity() returned unexpected error: %v", err)
		}
		if result.Deleted != 5 {
			t.Errorf("Expected 5 deleted, got %d", result.Deleted)
		}

		series, err := svcs.Price.GetSeries(ctx, "Moscow")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}
		if series.Len() != 0 {
			t.Errorf("Expected empty series, got %d points", series.Len())
		}
		if got := svcs.Catalog.Cities(); len(got) != 0 {
			t.Errorf("Expected empty catalog, got %v", got)
		}
	})

	t.Run("unknown city is not an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		result, err := svc.DeleteCity(ctx, "Atlantis")
		if err != nil {
			t.Fatalf("DeleteCity() returned unexpected error: %v", err)
		}
		if result.Deleted != 0 {
			t.Errorf("Expected 0 deleted, got %d", result.Deleted)
		}
	})

	t.Run("closed database surfaces a storage error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		db.Close()

		_, err := svc.DeleteCity(ctx, "Moscow")
		if !errors.Is(err, apperrors.ErrStorage) {
			t.Errorf("Expected ErrStorage, got %v", err)
		}
	})
}
