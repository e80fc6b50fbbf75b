package handlers

import (
	"net/http"
	"strings"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/response"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

// CityHandler handles HTTP requests for city price history, info and forecasts.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the price and forecast services.
type CityHandler struct {
	priceService    *service.PriceService
	forecastService *service.ForecastService
}

// NewCityHandler creates a new CityHandler with the provided service dependencies.
func NewCityHandler(priceService *service.PriceService, forecastService *service.ForecastService) *CityHandler {
	return &CityHandler{
		priceService:    priceService,
		forecastService: forecastService,
	}
}

// ListCities handles GET requests for the city list.
// Without q the list is read from storage; with q the cached catalog is filtered
// by case-insensitive substring.
//
// Endpoint: GET /api/city?q=
// Response: 200 OK with array of city names
// Error: 500 Internal Server Error if retrieval fails
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); strings.TrimSpace(q) != "" {
		response.RespondJSON(w, http.StatusOK, h.priceService.FilterCities(q))
		return
	}

	cities, err := h.priceService.ListCities(r.Context())
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveCities.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cities)
}

// AddCity handles POST requests adding a city with several yearly prices.
//
// Endpoint: POST /api/city
// Request Body: AddCityRequest (city, prices[{year, averagePrice}], description, wikiLink)
// Response: 201 Created with the stored records
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if the write fails
func (h *CityHandler) AddCity(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddCityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	records, err := h.priceService.AddCity(r.Context(), req)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToAddCity.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, records)
}

// Series handles GET requests for the price history of a city together with its
// baseline, optimistic and pessimistic trend lines.
//
// Endpoint: GET /api/city/{city}/series
// Response: 200 OK with SeriesResponse (trend omitted for a city without records)
// Error: 500 Internal Server Error if retrieval fails
func (h *CityHandler) Series(w http.ResponseWriter, r *http.Request) {
	city := request.PathParam(r, "city")

	series, err := h.forecastService.SeriesWithTrend(r.Context(), city)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveSeries.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Info handles GET requests for the description and wiki link of a city.
//
// Endpoint: GET /api/city/{city}/info
// Response: 200 OK with CityInfo; an unknown city reports "no description available"
// Error: 500 Internal Server Error if retrieval fails
func (h *CityHandler) Info(w http.ResponseWriter, r *http.Request) {
	city := request.PathParam(r, "city")

	info, err := h.priceService.GetCityInfo(r.Context(), city)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveCityInfo.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// Forecast handles GET requests projecting the price of a city to a target year.
// Without year the forecast targets the year after the latest record.
//
// Endpoint: GET /api/city/{city}/forecast?year=
// Response: 200 OK with ForecastResult
// Error: 400 Bad Request if year is not an integer in range
// Error: 404 Not Found if the city has no records
// Error: 500 Internal Server Error if retrieval fails
func (h *CityHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	city := request.PathParam(r, "city")

	var year int
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := validation.ParseYear(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), err.Error())
			return
		}
		year = parsed
	}

	result, err := h.forecastService.Forecast(r.Context(), city, year)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToForecast.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// UpsertPrice handles PUT requests storing the price of a city for one year.
// An existing value for that year is replaced.
//
// Endpoint: PUT /api/city/{city}/price/{year}
// Request Body: UpsertPriceRequest (averagePrice required, description and wikiLink optional)
// Response: 200 OK with the stored PriceRecord
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if the write fails
func (h *CityHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	city := request.PathParam(r, "city")

	year, err := validation.ParseYear(request.PathParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.priceService.UpsertPrice(r.Context(), city, year, req)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToUpsertPrice.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

// DeleteCity handles DELETE requests removing every record of a city.
// Deleting an unknown city succeeds with zero records deleted.
//
// Endpoint: DELETE /api/city/{city}
// Response: 200 OK with DeleteResult
// Error: 500 Internal Server Error if deletion fails
func (h *CityHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	city := request.PathParam(r, "city")

	result, err := h.priceService.DeleteCity(r.Context(), city)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToDeleteCity.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
