// Package transfer converts price records to and from the bulk import/export payloads.
//
// Two textual shapes are supported, both an ordered sequence of records with exactly
// five fields (city, year, average price, description, wiki link):
//
//	[('Moscow', 2020, 120000, 'Capital of Russia', 'https://en.wikipedia.org/wiki/Moscow')]
//	[["Moscow", 2020, 120000, "Capital of Russia", "https://en.wikipedia.org/wiki/Moscow"]]
//
// Parsing is all-or-nothing: one malformed record fails the whole payload with an
// *apperrors.FormatError naming the record's position.
package transfer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

// Parse decodes a payload, detecting its format. A payload that is valid JSON is read
// as the JSON form, anything else as the tuple-literal form.
func Parse(payload string) ([]model.PriceRecord, error) {
	return ParseFormat(payload, FormatAuto)
}

// ParseFormat decodes a payload in the given format. A leading UTF-8 byte order
// mark is ignored.
// Returned records carry no ID; they are validated but not yet stored.
//
// Every record passes validation.ValidatePriceRecord, so a record whose year lies
// outside [validation.MinYear, validation.MaxYear] fails the payload even when it
// was produced by Serialize. Description and wiki link are free text.
func ParseFormat(payload string, format Format) ([]model.PriceRecord, error) {
	payload = strings.TrimPrefix(payload, byteOrderMark)
	if strings.TrimSpace(payload) == "" {
		return nil, &apperrors.FormatError{Reason: "empty payload"}
	}

	if format == FormatAuto {
		format = detect(payload)
	}

	var records []model.PriceRecord
	var err error
	switch format {
	case FormatJSON:
		records, err = parseJSON(payload)
	case FormatTuple:
		records, err = parseTuples(payload)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, string(format))
	}
	if err != nil {
		return nil, err
	}

	for i, r := range records {
		if err := validation.ValidatePriceRecord(r); err != nil {
			return nil, &apperrors.FormatError{Record: i + 1, Reason: "invalid record", Err: err}
		}
	}
	return records, nil
}

// Serialize encodes records in the given format. FormatAuto serializes as JSON.
func Serialize(records []model.PriceRecord, format Format) (string, error) {
	switch format {
	case FormatJSON, FormatAuto:
		return serializeJSON(records)
	case FormatTuple:
		return serializeTuples(records), nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, string(format))
	}
}

// Cities returns the distinct city names of records in first-seen order.
func Cities(records []model.PriceRecord) []string {
	seen := make(map[string]bool)
	cities := []string{}
	for _, r := range records {
		if !seen[r.City] {
			seen[r.City] = true
			cities = append(cities, r.City)
		}
	}
	return cities
}

const byteOrderMark = "\uFEFF"

func detect(payload string) Format {
	if json.Valid([]byte(payload)) {
		return FormatJSON
	}
	return FormatTuple
}
