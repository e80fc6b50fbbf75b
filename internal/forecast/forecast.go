// Package forecast fits linear price trends to a city's history and projects them
// to a target year under a baseline and two scaled scenarios.
package forecast

import (
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

// Scenario factors applied to every historical price before the scenario line is fitted.
const (
	OptimisticFactor  = 1.15
	PessimisticFactor = 0.85
)

// Fit returns the ordinary least-squares line through the points (xs[i], ys[i]).
//
// With fewer than two distinct x values the slope is zero and the line passes through
// the mean of ys. Fit panics if the slices differ in length; an empty input yields the
// zero line.
func Fit(xs, ys []float64) model.Line {
	if len(xs) != len(ys) {
		panic("forecast: mismatched input lengths")
	}
	n := float64(len(xs))
	if n == 0 {
		return model.Line{}
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	// Centered sums keep the products small for year-sized x values.
	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}

	if sxx == 0 {
		return model.Line{Slope: 0, Intercept: meanY}
	}

	slope := sxy / sxx
	return model.Line{Slope: slope, Intercept: meanY - slope*meanX}
}

// Scale returns a copy of values with every element multiplied by factor.
func Scale(values []float64, factor float64) []float64 {
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * factor
	}
	return scaled
}

// lines fits the baseline, optimistic and pessimistic lines of a series.
// Each scenario is re-fitted on scaled prices rather than derived from the baseline.
func lines(series model.CitySeries) (baseline, optimistic, pessimistic model.Line, err error) {
	if series.Len() == 0 {
		return model.Line{}, model.Line{}, model.Line{}, &apperrors.InsufficientDataError{City: series.City}
	}

	years := series.Years()
	prices := series.Prices()

	baseline = Fit(years, prices)
	optimistic = Fit(years, Scale(prices, OptimisticFactor))
	pessimistic = Fit(years, Scale(prices, PessimisticFactor))
	return baseline, optimistic, pessimistic, nil
}

// Forecast projects the series to targetYear under the three scenarios.
// Values are not clipped: a steep downward trend may forecast negative prices.
// An empty series fails with an *apperrors.InsufficientDataError.
func Forecast(series model.CitySeries, targetYear int) (model.ForecastResult, error) {
	baseline, optimistic, pessimistic, err := lines(series)
	if err != nil {
		return model.ForecastResult{}, err
	}

	x := float64(targetYear)
	return model.ForecastResult{
		City:        series.City,
		TargetYear:  targetYear,
		Baseline:    baseline.At(x),
		Optimistic:  optimistic.At(x),
		Pessimistic: pessimistic.At(x),
	}, nil
}

// Trends returns the fitted lines of the series and their values at every historical year.
func Trends(series model.CitySeries) (model.Trend, error) {
	baseline, optimistic, pessimistic, err := lines(series)
	if err != nil {
		return model.Trend{}, err
	}

	points := make([]model.TrendPoint, series.Len())
	for i, p := range series.Points {
		x := float64(p.Year)
		points[i] = model.TrendPoint{
			Year:        p.Year,
			Actual:      p.AveragePrice,
			Baseline:    baseline.At(x),
			Optimistic:  optimistic.At(x),
			Pessimistic: pessimistic.At(x),
		}
	}

	return model.Trend{
		City:        series.City,
		Baseline:    baseline,
		Optimistic:  optimistic,
		Pessimistic: pessimistic,
		Points:      points,
	}, nil
}

// NextYear returns the default forecast target: the year after the latest record.
// The boolean is false when the series is empty.
func NextYear(series model.CitySeries) (int, bool) {
	latest, ok := series.Latest()
	if !ok {
		return 0, false
	}
	return latest.Year + 1, true
}
