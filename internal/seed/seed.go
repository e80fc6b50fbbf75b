// Package seed holds the demo dataset loaded into a fresh database.
package seed

import (
	"context"
	_ "embed"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/model"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

//go:embed prices.txt
var payload string

// Payload returns the demo dataset in the tuple-literal import format.
func Payload() string {
	return payload
}

// Importer is the part of the transfer service the seed loader needs.
type Importer interface {
	Import(ctx context.Context, payload string, format transfer.Format) (model.ImportResult, error)
}

// Load imports the demo dataset. Existing records for the same (city, year) are replaced.
func Load(ctx context.Context, importer Importer) (model.ImportResult, error) {
	return importer.Import(ctx, payload, transfer.FormatTuple)
}
