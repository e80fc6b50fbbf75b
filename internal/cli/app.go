// Package cli implements the command-line front end of the price store.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/catalog"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/database"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
)

// Env is the state shared by every command of one CLI run.
// The database is opened on first use and migrated before any command touches it.
type Env struct {
	DBPath string
	Out    io.Writer
	Err    io.Writer

	db       *sql.DB
	ownsDB   bool
	price    *service.PriceService
	forecast *service.ForecastService
	transfer *service.TransferService
	system   *service.SystemService
}

// NewEnv creates an Env that opens dbPath lazily and writes to stdout and stderr.
func NewEnv(dbPath string) *Env {
	return &Env{DBPath: dbPath, Out: os.Stdout, Err: os.Stderr}
}

// NewEnvWithDB creates an Env over an already opened and migrated database.
// Close leaves db open.
func NewEnvWithDB(db *sql.DB, out, errOut io.Writer) *Env {
	e := &Env{Out: out, Err: errOut}
	e.wire(db)
	return e
}

// Register adds every command to c.
// A main package will call Register() and Execute() on the user-selected command.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&citiesCmd{env: env}, "query")
	c.Register(&seriesCmd{env: env}, "query")
	c.Register(&infoCmd{env: env}, "query")
	c.Register(&forecastCmd{env: env}, "query")

	c.Register(&setCmd{env: env}, "write")
	c.Register(&deleteCmd{env: env}, "write")

	c.Register(&importCmd{env: env}, "data")
	c.Register(&exportCmd{env: env}, "data")
	c.Register(&seedCmd{env: env}, "data")
	c.Register(&migrateCmd{env: env}, "data")
}

// open connects to the database on first use.
func (e *Env) open(ctx context.Context) error {
	if e.db != nil {
		return nil
	}

	db, err := database.Open(e.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", e.DBPath, err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return err
	}

	e.ownsDB = true
	e.wire(db)
	if err := e.price.RefreshCatalog(ctx); err != nil {
		e.Close()
		return err
	}
	return nil
}

func (e *Env) wire(db *sql.DB) {
	priceRepo := repository.NewPriceRepository(db)
	index := catalog.New(priceRepo)

	e.db = db
	e.price = service.NewPriceService(db, priceRepo, index)
	e.forecast = service.NewForecastService(priceRepo)
	e.transfer = service.NewTransferService(db, priceRepo, index)
	e.system = service.NewSystemService(db)
}

// Close releases the database if the Env opened it.
func (e *Env) Close() error {
	if e.db == nil || !e.ownsDB {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// fail reports err on the error stream and returns ExitFailure.
func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, err)
	return subcommands.ExitFailure
}

// usage reports a usage problem and returns ExitUsageError.
func (e *Env) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, format+"\n", args...)
	return subcommands.ExitUsageError
}

// formatPrice renders a price without float noise, e.g. 125000.5.
func formatPrice(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// formatWhole renders a price rounded half away from zero to whole currency units.
func formatWhole(v float64) string {
	return decimal.NewFromFloat(v).Round(0).StringFixed(0)
}
