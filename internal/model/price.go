package model

import "time"

// NoDescription is returned as the description of a city that has no records.
const NoDescription = "no description available"

// PriceRecord represents the average price of housing in a city for one year.
// A record is uniquely identified by its (City, Year) pair; ID is the storage identity
// and survives replacement of the record's values.
type PriceRecord struct {
	ID           string    `json:"id,omitempty"`
	City         string    `json:"city"`
	Year         int       `json:"year"`
	AveragePrice float64   `json:"averagePrice"`
	Description  string    `json:"description"`
	WikiLink     string    `json:"wikiLink"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// CitySeries is the price history of a single city, ordered by year ascending.
// It is built on demand from the repository and never stored.
type CitySeries struct {
	City   string        `json:"city"`
	Points []PriceRecord `json:"points"`
}

// Len returns the number of yearly points in the series.
func (s CitySeries) Len() int {
	return len(s.Points)
}

// Years returns the years of the series as float64 values, ready for regression.
func (s CitySeries) Years() []float64 {
	years := make([]float64, len(s.Points))
	for i, p := range s.Points {
		years[i] = float64(p.Year)
	}
	return years
}

// Prices returns the average prices of the series in year order.
func (s CitySeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.AveragePrice
	}
	return prices
}

// Latest returns the most recent point of the series.
// The boolean is false when the series is empty.
func (s CitySeries) Latest() (PriceRecord, bool) {
	if len(s.Points) == 0 {
		return PriceRecord{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// CityInfo holds the descriptive text shown next to a city's chart.
type CityInfo struct {
	City        string `json:"city"`
	Description string `json:"description"`
	WikiLink    string `json:"wikiLink"`
}

// YearPrice is a single (year, price) pair used when adding a city with several years at once.
type YearPrice struct {
	Year         int     `json:"year"`
	AveragePrice float64 `json:"averagePrice"`
}
