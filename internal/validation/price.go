package validation

import (
	"fmt"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
)

// ValidateUpsertPrice validates a single-year price write.
// City and year come from the URL path, the rest from the request body.
func ValidateUpsertPrice(city string, year int, req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	if msg := cityProblem(city); msg != "" {
		errors["city"] = msg
	}
	if msg := yearProblem(year); msg != "" {
		errors["year"] = msg
	}
	if req.AveragePrice == nil {
		errors["averagePrice"] = "averagePrice is required"
	} else if msg := priceProblem(*req.AveragePrice); msg != "" {
		errors["averagePrice"] = msg
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAddCity validates a request adding a city with several yearly prices.
// Years must be unique within the request.
func ValidateAddCity(req request.AddCityRequest) error {
	errors := make(map[string]string)

	if msg := cityProblem(req.City); msg != "" {
		errors["city"] = msg
	}
	if len(req.Prices) == 0 {
		errors["prices"] = "at least one price is required"
	}

	seen := make(map[int]bool, len(req.Prices))
	for i, p := range req.Prices {
		if msg := yearProblem(p.Year); msg != "" {
			errors[fmt.Sprintf("prices[%d].year", i)] = msg
		} else if seen[p.Year] {
			errors[fmt.Sprintf("prices[%d].year", i)] = fmt.Sprintf("duplicate year %d", p.Year)
		}
		seen[p.Year] = true

		if msg := priceProblem(p.AveragePrice); msg != "" {
			errors[fmt.Sprintf("prices[%d].averagePrice", i)] = msg
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
