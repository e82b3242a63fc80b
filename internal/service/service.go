package service

import (
	"context"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"

	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	UpdateProduct(ctx context.Context, ownerID uuid.UUID, product *domain.Product) error
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error
	ListActiveProducts(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error)
	ListMyProducts(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error)
	SubmitForReview(ctx context.Context, ownerID, productID uuid.UUID) (*domain.Product, error)
	UpdateProductStatus(ctx context.Context, productID uuid.UUID, status domain.ProductStatus, message string) (*domain.Product, error)
	IncrementViews(ctx context.Context, productID uuid.UUID) (int64, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCode, error)
}

type RentalService interface {
	CheckAvailability(ctx context.Context, productID uuid.UUID, start, end time.Time) (bool, error)
	CheckDateAvailability(ctx context.Context, productID uuid.UUID, at time.Time) (bool, error)
	QuotePrice(ctx context.Context, productID uuid.UUID, duration int64, unit engine.DurationUnit) (int64, error)
	RequestRental(ctx context.Context, renterID, productID uuid.UUID, start, end time.Time, unit engine.DurationUnit, notes string) (*domain.Rental, error)
	AcceptRental(ctx context.Context, ownerID, rentalID uuid.UUID) (*domain.Rental, error)
	RejectRental(ctx context.Context, ownerID, rentalID uuid.UUID) (*domain.Rental, error)
	CancelRental(ctx context.Context, actorID, rentalID uuid.UUID) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID uuid.UUID) (*domain.Rental, error)
	ListRentals(ctx context.Context, renterID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error)
	ListBookings(ctx context.Context, ownerID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error)
	StartDueRentals(ctx context.Context, now time.Time) (int, error)
	CompleteDueRentals(ctx context.Context, now time.Time) (int, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	ListRentalReviews(ctx context.Context, userID, rentalID uuid.UUID) ([]domain.Review, error)
}
