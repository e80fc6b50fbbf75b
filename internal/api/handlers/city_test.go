package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/handlers"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/response"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/testutil"
)

func setupCityHandler(t *testing.T) (*handlers.CityHandler, testutil.Services, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db)
	return handlers.NewCityHandler(svcs.Price, svcs.Forecast), svcs, db
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func TestCityHandler_ListCities(t *testing.T) {
	t.Run("returns empty array when no cities exist", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/city", nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		cities := decodeBody[[]string](t, w)
		if cities == nil || len(cities) != 0 {
			t.Errorf("Expected empty array, got %v", cities)
		}
	})

	t.Run("returns cities alphabetically", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.CreateSeries(t, db, "Moscow", map[int]float64{2020: 1})
		testutil.CreateSeries(t, db, "Kaliningrad", map[int]float64{2020: 1})

		req := httptest.NewRequest(http.MethodGet, "/api/city", nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		cities := decodeBody[[]string](t, w)
		if !reflect.DeepEqual(cities, []string{"Kaliningrad", "Moscow"}) {
			t.Errorf("Expected [Kaliningrad Moscow], got %v", cities)
		}
	})

	t.Run("filters the catalog by q", func(t *testing.T) {
		handler, svcs, db := setupCityHandler(t)
		testutil.CreateSeries(t, db, "Moscow", map[int]float64{2020: 1})
		testutil.CreateSeries(t, db, "Kaliningrad", map[int]float64{2020: 1})
		testutil.CreateSeries(t, db, "Москва", map[int]float64{2020: 1})
		if err := svcs.Catalog.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/city?q=MOS", nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		cities := decodeBody[[]string](t, w)
		if !reflect.DeepEqual(cities, []string{"Moscow"}) {
			t.Errorf("Expected [Moscow], got %v", cities)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/city", nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}

func TestCityHandler_AddCity(t *testing.T) {
	t.Run("stores every year and refreshes the catalog", func(t *testing.T) {
		handler, svcs, db := setupCityHandler(t)

		body := `{
			"city": "Kazan",
			"prices": [{"year": 2021, "averagePrice": 91000}, {"year": 2020, "averagePrice": 90000}],
			"description": "Capital of Tatarstan",
			"wikiLink": "https://en.wikipedia.org/wiki/Kazan"
		}`
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/city", body, nil)
		w := httptest.NewRecorder()

		handler.AddCity(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		records := decodeBody[[]model.PriceRecord](t, w)
		if len(records) != 2 {
			t.Errorf("Expected 2 records, got %d", len(records))
		}
		if testutil.CountRows(t, db) != 2 {
			t.Errorf("Expected 2 rows, got %d", testutil.CountRows(t, db))
		}
		if got := svcs.Catalog.Filter("kaz"); !reflect.DeepEqual(got, []string{"Kazan"}) {
			t.Errorf("Expected catalog to contain Kazan, got %v", got)
		}
	})

	t.Run("returns 400 on validation failure", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)

		body := `{"city": "Kazan", "prices": [{"year": 2020, "averagePrice": 1}, {"year": 2020, "averagePrice": 2}]}`
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/city", body, nil)
		w := httptest.NewRecorder()

		handler.AddCity(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
		if testutil.CountRows(t, db) != 0 {
			t.Errorf("Expected no rows written, got %d", testutil.CountRows(t, db))
		}
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/city", `{"city":`, nil)
		w := httptest.NewRecorder()

		handler.AddCity(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestCityHandler_Series(t *testing.T) {
	t.Run("returns ordered history with trend", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.CreateLinearSeries(t, db, "Moscow", 2020, 5, 120000, 5000)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Moscow/series", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.Series(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		resp := decodeBody[model.SeriesResponse](t, w)
		if resp.Series.Len() != 5 {
			t.Fatalf("Expected 5 points, got %d", resp.Series.Len())
		}
		if resp.Trend == nil {
			t.Fatal("Expected trend to be present")
		}
		if len(resp.Trend.Points) != 5 {
			t.Errorf("Expected 5 trend points, got %d", len(resp.Trend.Points))
		}
		if math.Abs(resp.Trend.Baseline.Slope-5000) > 1e-6 {
			t.Errorf("Expected baseline slope 5000, got %v", resp.Trend.Baseline.Slope)
		}
	})

	t.Run("keeps literal percent sequences in city names", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.CreateSeries(t, db, "Rate%20Town", map[int]float64{2020: 1})
		testutil.CreateSeries(t, db, "Rate Town", map[int]float64{2020: 2, 2021: 3})

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Rate%2520Town/series", map[string]string{"city": "Rate%20Town"})
		w := httptest.NewRecorder()

		handler.Series(w, req)

		resp := decodeBody[model.SeriesResponse](t, w)
		if resp.Series.City != "Rate%20Town" || resp.Series.Len() != 1 {
			t.Errorf("Expected one point for Rate%%20Town, got %+v", resp.Series)
		}
	})

	t.Run("omits trend for unknown city", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Atlantis/series", map[string]string{"city": "Atlantis"})
		w := httptest.NewRecorder()

		handler.Series(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		resp := decodeBody[model.SeriesResponse](t, w)
		if resp.Trend != nil || resp.Series.Len() != 0 {
			t.Errorf("Expected empty series without trend, got %+v", resp)
		}
	})
}

func TestCityHandler_Info(t *testing.T) {
	t.Run("returns sentinel for unknown city", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Atlantis/info", map[string]string{"city": "Atlantis"})
		w := httptest.NewRecorder()

		handler.Info(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		info := decodeBody[model.CityInfo](t, w)
		if info.Description != model.NoDescription || info.WikiLink != "" {
			t.Errorf("Expected sentinel info, got %+v", info)
		}
	})

	t.Run("returns stored description and link", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.NewPriceRecord().WithCity("Moscow").
			WithDescription("Capital").WithWikiLink("https://en.wikipedia.org/wiki/Moscow").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Moscow/info", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.Info(w, req)

		info := decodeBody[model.CityInfo](t, w)
		if info.Description != "Capital" || info.WikiLink != "https://en.wikipedia.org/wiki/Moscow" {
			t.Errorf("Unexpected info %+v", info)
		}
	})
}

func TestCityHandler_Forecast(t *testing.T) {
	t.Run("forecasts the requested year", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.CreateLinearSeries(t, db, "Moscow", 2020, 5, 120000, 5000)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Moscow/forecast?year=2025", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.Forecast(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		result := decodeBody[model.ForecastResult](t, w)
		if result.TargetYear != 2025 {
			t.Errorf("Expected target year 2025, got %d", result.TargetYear)
		}
		if math.Abs(result.Baseline-145000) > 1e-6 {
			t.Errorf("Expected baseline 145000, got %v", result.Baseline)
		}
		if !(result.Optimistic > result.Baseline && result.Baseline > result.Pessimistic) {
			t.Errorf("Expected optimistic > baseline > pessimistic, got %+v", result)
		}
	})

	t.Run("defaults to the year after the latest record", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)
		testutil.CreateLinearSeries(t, db, "Moscow", 2020, 3, 120000, 5000)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Moscow/forecast", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.Forecast(w, req)

		result := decodeBody[model.ForecastResult](t, w)
		if result.TargetYear != 2023 {
			t.Errorf("Expected target year 2023, got %d", result.TargetYear)
		}
	})

	t.Run("returns 404 for a city without records", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Atlantis/forecast?year=2025", map[string]string{"city": "Atlantis"})
		w := httptest.NewRecorder()

		handler.Forecast(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a non-integer year", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/city/Moscow/forecast?year=soon", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.Forecast(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestCityHandler_UpsertPrice(t *testing.T) {
	t.Run("inserts then replaces the value for a year", func(t *testing.T) {
		handler, svcs, db := setupCityHandler(t)
		params := map[string]string{"city": "Moscow", "year": "2021"}

		for _, body := range []string{`{"averagePrice": 125000}`, `{"averagePrice": 126000, "description": "revised"}`} {
			req := testutil.NewRequestWithBody(http.MethodPut, "/api/city/Moscow/price/2021", body, params)
			w := httptest.NewRecorder()

			handler.UpsertPrice(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
		}

		if testutil.CountRows(t, db) != 1 {
			t.Fatalf("Expected 1 row, got %d", testutil.CountRows(t, db))
		}
		series, err := svcs.Price.GetSeries(context.Background(), "Moscow")
		if err != nil {
			t.Fatalf("GetSeries() returned unexpected error: %v", err)
		}
		if series.Points[0].AveragePrice != 126000 || series.Points[0].Description != "revised" {
			t.Errorf("Expected last write to win, got %+v", series.Points[0])
		}
		if got := svcs.Catalog.Cities(); !reflect.DeepEqual(got, []string{"Moscow"}) {
			t.Errorf("Expected catalog [Moscow], got %v", got)
		}
	})

	t.Run("returns 400 when averagePrice is missing", func(t *testing.T) {
		handler, _, db := setupCityHandler(t)

		req := testutil.NewRequestWithBody(http.MethodPut, "/api/city/Moscow/price/2021", `{"description": "x"}`,
			map[string]string{"city": "Moscow", "year": "2021"})
		w := httptest.NewRecorder()

		handler.UpsertPrice(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		body := decodeBody[response.ErrorResponse](t, w)
		if body.Error != "validation failed" {
			t.Errorf("Expected 'validation failed', got %q", body.Error)
		}
		if testutil.CountRows(t, db) != 0 {
			t.Errorf("Expected no rows written, got %d", testutil.CountRows(t, db))
		}
	})

	t.Run("returns 400 for invalid year", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithBody(http.MethodPut, "/api/city/Moscow/price/abc", `{"averagePrice": 1}`,
			map[string]string{"city": "Moscow", "year": "abc"})
		w := httptest.NewRecorder()

		handler.UpsertPrice(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestCityHandler_DeleteCity(t *testing.T) {
	t.Run("removes the city and reports the count", func(t *testing.T) {
		handler, svcs, db := setupCityHandler(t)
		testutil.CreateLinearSeries(t, db, "Moscow", 2020, 3, 1, 1)
		if err := svcs.Catalog.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/city/Moscow", map[string]string{"city": "Moscow"})
		w := httptest.NewRecorder()

		handler.DeleteCity(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		result := decodeBody[model.DeleteResult](t, w)
		if result.Deleted != 3 {
			t.Errorf("Expected 3 deleted, got %d", result.Deleted)
		}
		if got := svcs.Catalog.Filter("mos"); len(got) != 0 {
			t.Errorf("Expected catalog without Moscow, got %v", got)
		}
	})

	t.Run("unknown city succeeds with zero deleted", func(t *testing.T) {
		handler, _, _ := setupCityHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/city/Atlantis", map[string]string{"city": "Atlantis"})
		w := httptest.NewRecorder()

		handler.DeleteCity(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if result := decodeBody[model.DeleteResult](t, w); result.Deleted != 0 {
			t.Errorf("Expected 0 deleted, got %d", result.Deleted)
		}
	})
}
