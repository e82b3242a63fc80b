package service

import (
	"context"
	"errors"

	"bhara-backend/internal/cache"
	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/logger"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	rentalRepo  repository.RentalRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cache       cache.Cache
}

func NewReviewService(reviewRepo repository.ReviewRepository, rentalRepo repository.RentalRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, c cache.Cache) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		rentalRepo:  rentalRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       c,
	}
}

// CreateReview records one review per reviewer, rental and type, then folds
// the new rating into the product's or counterparty's stored average.
func (s *reviewService) CreateReview(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return &engine.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if !domain.ValidReviewType(review.Type) {
		return &engine.ValidationError{Field: "type", Reason: "unknown review type " + string(review.Type)}
	}

	rt, err := s.rentalRepo.GetByID(ctx, review.RentalID)
	if err != nil {
		return err
	}
	if rt.RenterID != review.ReviewerID && rt.OwnerID != review.ReviewerID {
		return errors.New("unauthorized")
	}
	if rt.Status != domain.RentalStatusCompleted {
		return &engine.ValidationError{Field: "rental", Reason: "rental is not completed"}
	}

	exists, err := s.reviewRepo.Exists(ctx, review.ReviewerID, review.RentalID, review.Type)
	if err != nil {
		return err
	}
	if exists {
		return &engine.ValidationError{Field: "rental", Reason: "already reviewed"}
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return err
	}

	switch review.Type {
	case domain.ReviewTypeProduct:
		s.refreshProductRating(ctx, rt.ProductID)
	case domain.ReviewTypeUser:
		// The review targets the counterparty of the rental.
		target := rt.OwnerID
		if review.ReviewerID == rt.OwnerID {
			target = rt.RenterID
		}
		s.refreshUserRating(ctx, target)
	}
	return nil
}

func (s *reviewService) ListRentalReviews(ctx context.Context, userID, rentalID uuid.UUID) ([]domain.Review, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return nil, errors.New("unauthorized")
	}
	return s.reviewRepo.ListByRental(ctx, rentalID)
}

// Rating refreshes are best-effort: a failed recompute leaves the stored
// average one review behind, the next review catches it up.
func (s *reviewService) refreshProductRating(ctx context.Context, productID uuid.UUID) {
	rating, ok, err := s.reviewRepo.AverageForProduct(ctx, productID)
	if err != nil || !ok {
		if err != nil {
			logger.Error("failed to aggregate product rating", "product_id", productID, "error", err)
		}
		return
	}
	if err := s.productRepo.SetAverageRating(ctx, productID, rating); err != nil {
		logger.Error("failed to store product rating", "product_id", productID, "error", err)
		return
	}
	_ = s.cache.Delete(ctx, cache.ProductDetailKey(productID))
	_ = s.cache.DeleteByPattern(ctx, cache.ProductListPattern)
}

func (s *reviewService) refreshUserRating(ctx context.Context, userID uuid.UUID) {
	rating, ok, err := s.reviewRepo.AverageForUser(ctx, userID)
	if err != nil || !ok {
		if err != nil {
			logger.Error("failed to aggregate user rating", "user_id", userID, "error", err)
		}
		return
	}
	if err := s.userRepo.SetAverageRating(ctx, userID, rating); err != nil {
		logger.Error("failed to store user rating", "user_id", userID, "error", err)
	}
}
