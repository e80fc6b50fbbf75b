package transfer

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
)

// Format names a textual payload shape for import and export.
type Format string

const (
	// FormatAuto lets Parse pick the format from the payload itself.
	FormatAuto Format = ""
	// FormatTuple is a literal sequence of 5-tuples:
	// [('Moscow', 2020, 120000, 'description', 'https://...'), ...]
	FormatTuple Format = "tuple"
	// FormatJSON is a JSON array of 5-element arrays with the same field order.
	FormatJSON Format = "json"
)

// fieldCount is the number of fields every record must carry:
// city, year, average price, description, wiki link.
const fieldCount = 5

// ParseFormatName maps a user-supplied format name to a Format.
// An empty name yields FormatAuto.
func ParseFormatName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return FormatAuto, nil
	case "tuple", "tuples", "literal", "py", "python":
		return FormatTuple, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, name)
	}
}

// Extension returns the file extension used for exports in this format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// ContentType returns the MIME type used when serving a payload in this format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}
