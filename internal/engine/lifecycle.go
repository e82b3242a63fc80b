package engine

import (
	"context"
	"time"

	"bhara-backend/internal/domain"
)

// productTransitions is the legal status graph for listings. Anything not
// in the table fails with InvalidTransitionError, including re-submitting a
// listing already under review. A rejected listing comes back only through
// a fresh submission.
var productTransitions = map[domain.ProductStatus][]domain.ProductStatus{
	domain.ProductStatusDraft:         {domain.ProductStatusPendingReview},
	domain.ProductStatusPendingReview: {domain.ProductStatusActive, domain.ProductStatusRejected},
	domain.ProductStatusRejected:      {domain.ProductStatusPendingReview},
	domain.ProductStatusActive:        {domain.ProductStatusInactive},
	domain.ProductStatusInactive:      {domain.ProductStatusActive},
}

func productCanTransition(from, to domain.ProductStatus) bool {
	for _, next := range productTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SubmitForReview moves a draft listing into the review queue. Calling it
// twice fails the second time; it is not a silent no-op.
func (e *Engine) SubmitForReview(product *domain.Product) error {
	return e.UpdateProductStatus(product, domain.ProductStatusPendingReview, "")
}

// UpdateProductStatus applies a listing transition, recording the optional
// moderation message. The caller persists the mutated record.
func (e *Engine) UpdateProductStatus(product *domain.Product, newStatus domain.ProductStatus, message string) error {
	if err := checkProduct(product); err != nil {
		return err
	}
	if !productCanTransition(product.Status, newStatus) {
		return &InvalidTransitionError{
			Entity:    "product",
			Current:   string(product.Status),
			Requested: string(newStatus),
		}
	}
	product.Status = newStatus
	product.StatusMessage = message
	return nil
}

// AcceptRental moves a pending request to accepted. The availability of the
// rental's range is re-checked against the current blocking set (excluding
// the rental itself) so a concurrently accepted overlapping booking cannot
// be double-committed; run it inside the product-scoped transaction.
func (e *Engine) AcceptRental(ctx context.Context, product *domain.Product, rental *domain.Rental) error {
	if rental == nil {
		return &NotFoundError{Kind: "rental"}
	}
	if rental.Status != domain.RentalStatusPending {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusAccepted),
		}
	}
	free, err := e.rangeAvailable(ctx, product, rental.StartTime, rental.EndTime, rental.ID)
	if err != nil {
		return err
	}
	if !free {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusAccepted) + " (range no longer available)",
		}
	}
	rental.Status = domain.RentalStatusAccepted
	return nil
}

// RejectRental declines a pending request.
func (e *Engine) RejectRental(rental *domain.Rental) error {
	return rentalStep(rental, domain.RentalStatusRejected, domain.RentalStatusPending)
}

// CancelRental cancels a pending or accepted rental. Only allowed strictly
// before the start time; after that the rental must run to completion.
func (e *Engine) CancelRental(rental *domain.Rental, now time.Time) error {
	if rental == nil {
		return &NotFoundError{Kind: "rental"}
	}
	if rental.Status != domain.RentalStatusPending && rental.Status != domain.RentalStatusAccepted {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusCancelled),
		}
	}
	if !now.Before(rental.StartTime) {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusCancelled) + " (start time passed)",
		}
	}
	rental.Status = domain.RentalStatusCancelled
	return nil
}

// StartRental moves an accepted rental to in_progress once its start time
// is reached.
func (e *Engine) StartRental(rental *domain.Rental, now time.Time) error {
	if rental == nil {
		return &NotFoundError{Kind: "rental"}
	}
	if rental.Status == domain.RentalStatusAccepted && now.Before(rental.StartTime) {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusInProgress) + " (start time not reached)",
		}
	}
	return rentalStep(rental, domain.RentalStatusInProgress, domain.RentalStatusAccepted)
}

// CompleteRental moves an in_progress rental to completed once its end time
// is reached.
func (e *Engine) CompleteRental(rental *domain.Rental, now time.Time) error {
	if rental == nil {
		return &NotFoundError{Kind: "rental"}
	}
	if rental.Status == domain.RentalStatusInProgress && now.Before(rental.EndTime) {
		return &InvalidTransitionError{
			Entity:    "rental",
			Current:   string(rental.Status),
			Requested: string(domain.RentalStatusCompleted) + " (end time not reached)",
		}
	}
	return rentalStep(rental, domain.RentalStatusCompleted, domain.RentalStatusInProgress)
}

func rentalStep(rental *domain.Rental, to domain.RentalStatus, allowedFrom ...domain.RentalStatus) error {
	if rental == nil {
		return &NotFoundError{Kind: "rental"}
	}
	for _, from := range allowedFrom {
		if rental.Status == from {
			rental.Status = to
			return nil
		}
	}
	return &InvalidTransitionError{
		Entity:    "rental",
		Current:   string(rental.Status),
		Requested: string(to),
	}
}
