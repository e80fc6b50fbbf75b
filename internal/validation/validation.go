package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

// Year bounds accepted for price records.
const (
	MinYear = 1000
	MaxYear = 9999

	maxCityLength = 100
)

// ValidateCity checks that a city name is present and not overly long.
func ValidateCity(city string) error {
	if msg := cityProblem(city); msg != "" {
		return fieldError("city", msg)
	}
	return nil
}

// ValidateYear checks that a year lies within [MinYear, MaxYear].
func ValidateYear(year int) error {
	if msg := yearProblem(year); msg != "" {
		return fieldError("year", msg)
	}
	return nil
}

// ParseYear converts a caller-supplied year string into an int.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fieldError("year", fmt.Sprintf("not an integer: %q", s))
	}
	if err := ValidateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

// ParsePrice converts a caller-supplied price string into a float64.
// Negative prices are accepted; NaN and infinities are not.
func ParsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fieldError("averagePrice", fmt.Sprintf("not a number: %q", s))
	}
	if msg := priceProblem(price); msg != "" {
		return 0, fieldError("averagePrice", msg)
	}
	return price, nil
}

// ValidatePriceRecord checks every field of a record before it is written.
//
// Validation rules:
//   - city: required, at most 100 characters
//   - year: between MinYear and MaxYear
//   - averagePrice: a finite number (sign is not checked)
//   - description, wikiLink: free text, stored as given
func ValidatePriceRecord(r model.PriceRecord) error {
	errors := make(map[string]string)

	if msg := cityProblem(r.City); msg != "" {
		errors["city"] = msg
	}
	if msg := yearProblem(r.Year); msg != "" {
		errors["year"] = msg
	}
	if msg := priceProblem(r.AveragePrice); msg != "" {
		errors["averagePrice"] = msg
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func cityProblem(city string) string {
	if strings.TrimSpace(city) == "" {
		return "city is required"
	}
	if utf8.RuneCountInString(city) > maxCityLength {
		return fmt.Sprintf("city must be %d characters or less", maxCityLength)
	}
	return ""
}

func yearProblem(year int) string {
	if year < MinYear || year > MaxYear {
		return fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)
	}
	return ""
}

func priceProblem(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "averagePrice must be a finite number"
	}
	return ""
}
