package request

import "github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"

// UpsertPriceRequest is the body of PUT /api/city/{city}/price/{year}.
// AveragePrice is a pointer so a missing value can be told apart from zero.
type UpsertPriceRequest struct {
	AveragePrice *float64 `json:"averagePrice"`
	Description  string   `json:"description"`
	WikiLink     string   `json:"wikiLink"`
}

// AddCityRequest is the body of POST /api/city.
type AddCityRequest struct {
	City        string            `json:"city"`
	Prices      []model.YearPrice `json:"prices"`
	Description string            `json:"description"`
	WikiLink    string            `json:"wikiLink"`
}
