package service

import (
	"context"
	"errors"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/forecast"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

// ForecastService loads a city's history and runs the forecasting engine over it.
// Nothing is cached: each call refits the lines from the full history.
type ForecastService struct {
	priceRepo *repository.PriceRepository
}

// NewForecastService creates a new ForecastService with the provided repository dependency.
func NewForecastService(priceRepo *repository.PriceRepository) *ForecastService {
	return &ForecastService{
		priceRepo: priceRepo,
	}
}

// Forecast projects the price of a city to targetYear under the three scenarios.
// A zero targetYear forecasts the year after the latest record.
// A city without records fails with apperrors.ErrInsufficientData.
func (s *ForecastService) Forecast(ctx context.Context, city string, targetYear int) (model.ForecastResult, error) {
	if targetYear != 0 {
		if err := validation.ValidateYear(targetYear); err != nil {
			return model.ForecastResult{}, err
		}
	}

	series, err := s.priceRepo.GetSeries(ctx, city)
	if err != nil {
		return model.ForecastResult{}, err
	}

	if targetYear == 0 {
		next, ok := forecast.NextYear(series)
		if !ok {
			return model.ForecastResult{}, &apperrors.InsufficientDataError{City: city}
		}
		targetYear = next
	}

	return forecast.Forecast(series, targetYear)
}

// SeriesWithTrend returns the history of a city together with its fitted trend lines.
// The trend is omitted for a city without records.
func (s *ForecastService) SeriesWithTrend(ctx context.Context, city string) (model.SeriesResponse, error) {
	series, err := s.priceRepo.GetSeries(ctx, city)
	if err != nil {
		return model.SeriesResponse{}, err
	}

	trend, err := forecast.Trends(series)
	if errors.Is(err, apperrors.ErrInsufficientData) {
		return model.SeriesResponse{Series: series}, nil
	}
	if err != nil {
		return model.SeriesResponse{}, err
	}

	return model.SeriesResponse{Series: series, Trend: &trend}, nil
}
