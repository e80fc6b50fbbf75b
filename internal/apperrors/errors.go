package apperrors

import (
	"errors"
	"fmt"
)

// Classification sentinels. Typed errors below report them through errors.Is so callers
// can branch on the class of a failure without knowing the concrete type.
var (
	// ErrStorage indicates that the underlying store failed to read or write.
	ErrStorage = errors.New("storage failure")

	// ErrFormat indicates that an import payload could not be parsed.
	ErrFormat = errors.New("malformed import payload")

	// ErrInsufficientData indicates that a forecast was requested for an empty series.
	ErrInsufficientData = errors.New("insufficient data for forecast")

	// ErrValidation indicates that a caller-supplied field failed a type or range check.
	ErrValidation = errors.New("validation failed")
)

// Business logic errors represent inputs the services refuse before touching storage.
var (
	// ErrInvalidCity indicates that a city name is missing.
	ErrInvalidCity = errors.New("city is required")

	// ErrInvalidYear indicates that a year parameter is missing or not an integer.
	ErrInvalidYear = errors.New("year must be an integer")

	// ErrUnknownFormat indicates that an import/export format name is not supported.
	ErrUnknownFormat = errors.New("unknown payload format")
)

// Operation failure errors are the user-facing messages the API returns for each endpoint.
var (
	ErrFailedToRetrieveCities   = errors.New("failed to retrieve cities")
	ErrFailedToRetrieveSeries   = errors.New("failed to retrieve price series")
	ErrFailedToRetrieveCityInfo = errors.New("failed to retrieve city info")
	ErrFailedToForecast         = errors.New("failed to compute forecast")
	ErrFailedToUpsertPrice      = errors.New("failed to save price")
	ErrFailedToAddCity          = errors.New("failed to add city")
	ErrFailedToDeleteCity       = errors.New("failed to delete city")
	ErrFailedToImportPrices     = errors.New("failed to import prices")
	ErrFailedToExportPrices     = errors.New("failed to export prices")
)

// StorageError reports a failed repository operation together with the driver error.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a StorageError for operation op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// FormatError reports a malformed import payload. Record is the 1-based position of the
// offending record, or 0 when the problem lies outside any record.
type FormatError struct {
	Record int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Record > 0 {
		msg = fmt.Sprintf("record %d: %s", e.Record, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// InsufficientDataError is returned when a forecast is requested for a city without records.
type InsufficientDataError struct {
	City string
}

func (e *InsufficientDataError) Error() string {
	if e.City == "" {
		return ErrInsufficientData.Error()
	}
	return fmt.Sprintf("%s: no price records for %q", ErrInsufficientData, e.City)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }
