package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bhara-backend/internal/repository"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves both plain calls and product-locked
// transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.RentalRepository
	repository.UserRepository
	repository.ReviewRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ProductRepository: NewProductRepository(db),
		RentalRepository:  NewRentalRepository(db),
		UserRepository:    NewUserRepository(db),
		ReviewRepository:  NewReviewRepository(db),
	}
}

// WithProductLock runs fn inside a transaction holding an advisory lock
// scoped to the product id. The availability check and the insert or
// status update of a blocking booking are therefore never interleaved with
// another booking write for the same product; different products never
// contend.
func (s *Store) WithProductLock(ctx context.Context, productID uuid.UUID, fn func(tx repository.TxRepos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin product tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, productID.String()); err != nil {
		return fmt.Errorf("acquire product lock: %w", err)
	}

	repos := repository.TxRepos{
		Products: NewProductRepository(tx),
		Rentals:  NewRentalRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit()
}
