package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalRepository struct {
	db dbtx
}

func NewRentalRepository(db dbtx) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, product_id, owner_id, renter_id, start_time, end_time,
	status, total_price_cents, security_deposit_cents, notes, created_at, updated_at`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	now := time.Now().UTC()
	rt.CreatedAt, rt.UpdatedAt = now, now
	query := `INSERT INTO rentals (id, product_id, owner_id, renter_id, start_time, end_time,
	            status, total_price_cents, security_deposit_cents, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		rt.ID, rt.ProductID, rt.OwnerID, rt.RenterID, rt.StartTime, rt.EndTime,
		rt.Status, rt.TotalPriceCents, rt.SecurityDepositCents, rt.Notes, rt.CreatedAt, rt.UpdatedAt)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Kind: "rental", ID: id.String()}
	}
	return rt, err
}

// Update persists mutable rental state. Total price and the deposit
// snapshot are immutable after creation and deliberately absent here.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	rt.UpdatedAt = time.Now().UTC()
	query := `UPDATE rentals SET status=$1, notes=$2, updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.Notes, rt.UpdatedAt, rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "rental", rt.ID)
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.list(ctx, "renter_id", renterID, status)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.list(ctx, "owner_id", ownerID, status)
}

func (r *rentalRepository) list(ctx context.Context, byColumn string, id uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + byColumn + ` = $1`
	args := []any{id}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

// ListBlockingBookings returns the window of every rental still reserving
// its range on the product, ordered by start time. Inside WithProductLock
// this is the transactionally consistent snapshot the availability check
// requires.
func (r *rentalRepository) ListBlockingBookings(ctx context.Context, productID uuid.UUID) ([]engine.BookingWindow, error) {
	query := `SELECT id, start_time, end_time, status FROM rentals
	          WHERE product_id = $1 AND status IN ($2, $3, $4)
	          ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, productID,
		domain.RentalStatusPending, domain.RentalStatusAccepted, domain.RentalStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []engine.BookingWindow
	for rows.Next() {
		var w engine.BookingWindow
		if err := rows.Scan(&w.RentalID, &w.Start, &w.End, &w.Status); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *rentalRepository) ListDueToStart(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = $1 AND start_time <= $2 ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusAccepted, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) ListDueToComplete(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = $1 AND end_time <= $2 ORDER BY end_time`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusInProgress, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.ProductID, &rt.OwnerID, &rt.RenterID, &rt.StartTime, &rt.EndTime,
		&rt.Status, &rt.TotalPriceCents, &rt.SecurityDepositCents, &rt.Notes, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
