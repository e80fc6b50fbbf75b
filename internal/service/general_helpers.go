package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
)

// withTx runs fn against a repository bound to a fresh transaction.
// The transaction commits when fn returns nil and rolls back otherwise, so a
// multi-record write is either fully visible or not at all.
func withTx(ctx context.Context, db *sql.DB, repo *repository.PriceRepository, fn func(*repository.PriceRepository) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin transaction", err)
	}

	if err := fn(repo.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit transaction", err)
	}
	return nil
}
