package repository

import (
	"context"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"

	"github.com/google/uuid"
)

// TxRepos bundles the repositories bound to one product-locked
// transaction. Reads through them see a consistent snapshot; writes commit
// or roll back together.
type TxRepos struct {
	Products ProductRepository
	Rentals  RentalRepository
}

// TxRunner serializes booking writes per product: fn runs inside a
// transaction holding a mutual-exclusion lock scoped to the product id, so
// an availability check and the write it guards are never interleaved with
// another booking write for the same product.
type TxRunner interface {
	WithProductLock(ctx context.Context, productID uuid.UUID, fn func(tx TxRepos) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// Delete soft-deletes the product and cascades to its rentals and
	// reviews. Owner checks happen in the service layer.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error)
	ListByStatus(ctx context.Context, status domain.ProductStatus, limit, offset int32) ([]domain.Product, int32, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByRenter(ctx context.Context, renterID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error)
	// ListBlockingBookings satisfies engine.BookingSource: the windows of
	// every rental whose status still reserves its range, ordered by start.
	ListBlockingBookings(ctx context.Context, productID uuid.UUID) ([]engine.BookingWindow, error)
	// Due listings feed the scheduler.
	ListDueToStart(ctx context.Context, now time.Time) ([]domain.Rental, error)
	ListDueToComplete(ctx context.Context, now time.Time) ([]domain.Rental, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Exists(ctx context.Context, reviewerID, rentalID uuid.UUID, reviewType domain.ReviewType) (bool, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Review, error)
	// AverageForProduct aggregates product-type review ratings across all
	// rentals of the product, in hundredths. ok is false with no reviews.
	AverageForProduct(ctx context.Context, productID uuid.UUID) (rating int32, ok bool, err error)
	AverageForUser(ctx context.Context, userID uuid.UUID) (rating int32, ok bool, err error)
}
