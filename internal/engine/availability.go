package engine

import (
	"context"
	"time"

	"bhara-backend/internal/domain"

	"github.com/google/uuid"
)

// BookingWindow is the slice of a rental the availability check cares about.
type BookingWindow struct {
	RentalID uuid.UUID
	Start    time.Time
	End      time.Time
	Status   domain.RentalStatus
}

// BookingSource supplies the blocking bookings of a product. When the check
// runs inside a product-scoped transaction the returned set must be a
// transactionally consistent snapshot.
type BookingSource interface {
	ListBlockingBookings(ctx context.Context, productID uuid.UUID) ([]BookingWindow, error)
}

// Engine evaluates availability, pricing and status transitions for the
// marketplace. It performs no I/O of its own; bookings are read through the
// BookingSource collaborator and records are passed in by the caller.
type Engine struct {
	bookings BookingSource
}

func New(bookings BookingSource) *Engine {
	return &Engine{bookings: bookings}
}

// overlaps applies the half-open interval law: [a,b) and [c,d) overlap iff
// a < d && c < b. A booking ending exactly when another starts is not a
// conflict, so back-to-back rentals are legal.
func overlaps(a, b, c, d time.Time) bool {
	return a.Before(d) && c.Before(b)
}

// IsRangeAvailable reports whether [start, end) is free of blocking bookings
// on the product. End must be strictly after start.
func (e *Engine) IsRangeAvailable(ctx context.Context, product *domain.Product, start, end time.Time) (bool, error) {
	return e.rangeAvailable(ctx, product, start, end, uuid.Nil)
}

// IsDateAvailable treats the date as the one-instant range [at, at].
func (e *Engine) IsDateAvailable(ctx context.Context, product *domain.Product, at time.Time) (bool, error) {
	if err := checkProduct(product); err != nil {
		return false, err
	}
	windows, err := e.bookings.ListBlockingBookings(ctx, product.ID)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if !w.Status.Blocks() {
			continue
		}
		// instant containment under half-open semantics: start <= at < end
		if !at.Before(w.Start) && at.Before(w.End) {
			return false, nil
		}
	}
	return true, nil
}

// rangeAvailable is the shared core. exclude skips one rental, used when an
// accept re-checks a range the pending rental itself already occupies.
func (e *Engine) rangeAvailable(ctx context.Context, product *domain.Product, start, end time.Time, exclude uuid.UUID) (bool, error) {
	if err := checkProduct(product); err != nil {
		return false, err
	}
	if !end.After(start) {
		return false, &InvalidRangeError{Start: start, End: end}
	}
	windows, err := e.bookings.ListBlockingBookings(ctx, product.ID)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if exclude != uuid.Nil && w.RentalID == exclude {
			continue
		}
		if !w.Status.Blocks() {
			continue
		}
		if overlaps(start, end, w.Start, w.End) {
			return false, nil
		}
	}
	return true, nil
}

func checkProduct(product *domain.Product) error {
	if product == nil {
		return &NotFoundError{Kind: "product"}
	}
	if product.Deleted() {
		return &NotFoundError{Kind: "product", ID: product.ID.String()}
	}
	return nil
}
