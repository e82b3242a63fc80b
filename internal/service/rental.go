package service

import (
	"context"
	"errors"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/logger"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

// ErrRangeUnavailable is returned when a rental request targets a range
// already held by a blocking booking.
var ErrRangeUnavailable = errors.New("requested range is not available")

type rentalService struct {
	productRepo repository.ProductRepository
	rentalRepo  repository.RentalRepository
	tx          repository.TxRunner
	engine      *engine.Engine
	now         func() time.Time
}

func NewRentalService(productRepo repository.ProductRepository, rentalRepo repository.RentalRepository, tx repository.TxRunner) RentalService {
	return &rentalService{
		productRepo: productRepo,
		rentalRepo:  rentalRepo,
		tx:          tx,
		engine:      engine.New(rentalRepo),
		now:         time.Now,
	}
}

func (s *rentalService) CheckAvailability(ctx context.Context, productID uuid.UUID, start, end time.Time) (bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return s.engine.IsRangeAvailable(ctx, product, start, end)
}

func (s *rentalService) CheckDateAvailability(ctx context.Context, productID uuid.UUID, at time.Time) (bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return s.engine.IsDateAvailable(ctx, product, at)
}

func (s *rentalService) QuotePrice(ctx context.Context, productID uuid.UUID, duration int64, unit engine.DurationUnit) (int64, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return engine.CalculatePrice(product, duration, unit)
}

func (s *rentalService) RequestRental(ctx context.Context, renterID, productID uuid.UUID, start, end time.Time, unit engine.DurationUnit, notes string) (*domain.Rental, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID == renterID {
		return nil, errors.New("cannot rent your own product")
	}
	if product.Status != domain.ProductStatusActive {
		return nil, &engine.ValidationError{Field: "product", Reason: "listing is not active"}
	}

	duration, err := billableUnits(start, end, unit)
	if err != nil {
		return nil, err
	}
	price, err := engine.CalculatePrice(product, duration, unit)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ProductID:       productID,
		OwnerID:         product.OwnerID,
		RenterID:        renterID,
		StartTime:       start,
		EndTime:         end,
		Status:          domain.RentalStatusPending,
		TotalPriceCents: price,
		Notes:           notes,
	}
	if product.SecurityDepositCents != nil {
		deposit := *product.SecurityDepositCents
		rental.SecurityDepositCents = &deposit
	}

	// The availability check and the insert run under the product lock,
	// so two overlapping requests racing on the same product serialize and
	// the loser sees the winner's booking.
	err = s.tx.WithProductLock(ctx, productID, func(tx repository.TxRepos) error {
		eng := engine.New(tx.Rentals)
		free, err := eng.IsRangeAvailable(ctx, product, start, end)
		if err != nil {
			return err
		}
		if !free {
			return ErrRangeUnavailable
		}
		return tx.Rentals.Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) AcceptRental(ctx context.Context, ownerID, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != ownerID {
		return nil, errors.New("unauthorized")
	}

	// Re-read and re-check under the lock: another booking may have been
	// accepted over the same range since this request was created.
	err = s.tx.WithProductLock(ctx, rt.ProductID, func(tx repository.TxRepos) error {
		current, err := tx.Rentals.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		product, err := tx.Products.GetByID(ctx, current.ProductID)
		if err != nil {
			return err
		}
		eng := engine.New(tx.Rentals)
		if err := eng.AcceptRental(ctx, product, current); err != nil {
			return err
		}
		rt = current
		return tx.Rentals.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) RejectRental(ctx context.Context, ownerID, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != ownerID {
		return nil, errors.New("unauthorized")
	}
	if err := s.engine.RejectRental(rt); err != nil {
		return nil, err
	}
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) CancelRental(ctx context.Context, actorID, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != actorID && rt.OwnerID != actorID {
		return nil, errors.New("unauthorized")
	}
	if err := s.engine.CancelRental(rt, s.now()); err != nil {
		return nil, err
	}
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID uuid.UUID) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.RenterID != userID && rt.OwnerID != userID {
		return nil, errors.New("unauthorized")
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, renterID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID, status)
}

func (s *rentalService) ListBookings(ctx context.Context, ownerID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID, status)
}

// StartDueRentals flips every accepted rental whose start time has passed
// to in_progress. One bad row is logged and skipped, the sweep goes on.
func (s *rentalService) StartDueRentals(ctx context.Context, now time.Time) (int, error) {
	due, err := s.rentalRepo.ListDueToStart(ctx, now)
	if err != nil {
		return 0, err
	}
	started := 0
	for i := range due {
		rt := &due[i]
		if err := s.engine.StartRental(rt, now); err != nil {
			logger.Warn("skipping rental not ready to start", "rental_id", rt.ID, "error", err)
			continue
		}
		if err := s.rentalRepo.Update(ctx, rt); err != nil {
			logger.Error("failed to start rental", "rental_id", rt.ID, "error", err)
			continue
		}
		started++
	}
	return started, nil
}

// CompleteDueRentals flips every in_progress rental whose end time has
// passed to completed.
func (s *rentalService) CompleteDueRentals(ctx context.Context, now time.Time) (int, error) {
	due, err := s.rentalRepo.ListDueToComplete(ctx, now)
	if err != nil {
		return 0, err
	}
	completed := 0
	for i := range due {
		rt := &due[i]
		if err := s.engine.CompleteRental(rt, now); err != nil {
			logger.Warn("skipping rental not ready to complete", "rental_id", rt.ID, "error", err)
			continue
		}
		if err := s.rentalRepo.Update(ctx, rt); err != nil {
			logger.Error("failed to complete rental", "rental_id", rt.ID, "error", err)
			continue
		}
		completed++
	}
	return completed, nil
}

// billableUnits converts a half-open range to a whole number of billing
// units, rounding up so a partial unit is charged in full.
func billableUnits(start, end time.Time, unit engine.DurationUnit) (int64, error) {
	if !start.Before(end) {
		return 0, &engine.InvalidRangeError{Start: start, End: end}
	}
	var unitLen time.Duration
	switch unit {
	case engine.UnitHour:
		unitLen = time.Hour
	case engine.UnitDay:
		unitLen = engine.HoursPerDay * time.Hour
	case engine.UnitWeek:
		unitLen = engine.DaysPerWeek * engine.HoursPerDay * time.Hour
	case engine.UnitMonth:
		unitLen = engine.DaysPerMonth * engine.HoursPerDay * time.Hour
	default:
		return 0, &engine.ValidationError{Field: "unit", Reason: "unknown duration unit " + string(unit)}
	}
	span := end.Sub(start)
	units := int64(span / unitLen)
	if span%unitLen != 0 {
		units++
	}
	return units, nil
}
