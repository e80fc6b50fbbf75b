package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
)

func parseJSON(payload string) ([]model.PriceRecord, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, &apperrors.FormatError{Reason: "payload is not a JSON array", Err: err}
	}
	if dec.More() {
		return nil, &apperrors.FormatError{Reason: "unexpected data after JSON array"}
	}

	records := make([]model.PriceRecord, 0, len(raw))
	for i, item := range raw {
		r, err := decodeJSONRecord(item)
		if err != nil {
			return nil, &apperrors.FormatError{Record: i + 1, Reason: err.Error()}
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeJSONRecord(item json.RawMessage) (model.PriceRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()

	var fields []any
	if err := dec.Decode(&fields); err != nil {
		return model.PriceRecord{}, fmt.Errorf("record is not an array")
	}
	if len(fields) != fieldCount {
		return model.PriceRecord{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	var r model.PriceRecord

	city, ok := fields[0].(string)
	if !ok {
		return model.PriceRecord{}, fmt.Errorf("city must be a string")
	}
	r.City = city

	year, ok := fields[1].(json.Number)
	if !ok {
		return model.PriceRecord{}, fmt.Errorf("year must be a number")
	}
	y, err := year.Int64()
	if err != nil {
		return model.PriceRecord{}, fmt.Errorf("year must be an integer, got %s", year)
	}
	r.Year = int(y)

	price, ok := fields[2].(json.Number)
	if !ok {
		return model.PriceRecord{}, fmt.Errorf("price must be a number")
	}
	if r.AveragePrice, err = price.Float64(); err != nil {
		return model.PriceRecord{}, fmt.Errorf("price is not a valid number: %s", price)
	}

	if r.Description, err = optionalString(fields[3], "description"); err != nil {
		return model.PriceRecord{}, err
	}
	if r.WikiLink, err = optionalString(fields[4], "wiki_link"); err != nil {
		return model.PriceRecord{}, err
	}

	return r, nil
}

func optionalString(v any, name string) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("%s must be a string or null", name)
	}
}

// serializeJSON writes one record per line so exports stay diffable.
func serializeJSON(records []model.PriceRecord) (string, error) {
	if len(records) == 0 {
		return "[]\n", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	var out strings.Builder
	out.WriteString("[\n")
	for i, r := range records {
		buf.Reset()
		row := []any{r.City, r.Year, r.AveragePrice, r.Description, r.WikiLink}
		if err := enc.Encode(row); err != nil {
			return "", fmt.Errorf("failed to encode record %d: %w", i+1, err)
		}
		out.WriteString("  ")
		out.Write(bytes.TrimRight(buf.Bytes(), "\n"))
		if i < len(records)-1 {
			out.WriteString(",")
		}
		out.WriteString("\n")
	}
	out.WriteString("]\n")
	return out.String(), nil
}
