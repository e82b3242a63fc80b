package postgres

import (
	"context"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

type reviewRepository struct {
	db dbtx
}

func NewReviewRepository(db dbtx) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	rv.CreatedAt = time.Now().UTC()
	query := `INSERT INTO reviews (id, rental_id, reviewer_id, review_type, rating, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.RentalID, rv.ReviewerID, rv.Type, rv.Rating, rv.Comment, rv.CreatedAt)
	return err
}

func (r *reviewRepository) Exists(ctx context.Context, reviewerID, rentalID uuid.UUID, reviewType domain.ReviewType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE reviewer_id = $1 AND rental_id = $2 AND review_type = $3)`
	err := r.db.QueryRowContext(ctx, query, reviewerID, rentalID, reviewType).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Review, error) {
	query := `SELECT id, rental_id, reviewer_id, review_type, rating, comment, created_at
	          FROM reviews WHERE rental_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.RentalID, &rv.ReviewerID, &rv.Type, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// AverageForProduct aggregates product reviews over every rental of the
// product. The average is stored in hundredths to keep the column integral.
func (r *reviewRepository) AverageForProduct(ctx context.Context, productID uuid.UUID) (int32, bool, error) {
	query := `SELECT COALESCE(ROUND(AVG(rv.rating) * 100), 0), COUNT(*)
	          FROM reviews rv
	          JOIN rentals rt ON rt.id = rv.rental_id
	          WHERE rt.product_id = $1 AND rv.review_type = $2`
	var rating int32
	var count int64
	err := r.db.QueryRowContext(ctx, query, productID, domain.ReviewTypeProduct).Scan(&rating, &count)
	if err != nil {
		return 0, false, err
	}
	return rating, count > 0, nil
}

// AverageForUser aggregates user reviews across rentals where the user was
// either side, excluding self-reviews, mirroring how the marketplace rates
// members.
func (r *reviewRepository) AverageForUser(ctx context.Context, userID uuid.UUID) (int32, bool, error) {
	query := `SELECT COALESCE(ROUND(AVG(rv.rating) * 100), 0), COUNT(*)
	          FROM reviews rv
	          JOIN rentals rt ON rt.id = rv.rental_id
	          WHERE rv.review_type = $1
	            AND rv.reviewer_id <> $2
	            AND (rt.owner_id = $2 OR rt.renter_id = $2)`
	var rating int32
	var count int64
	err := r.db.QueryRowContext(ctx, query, domain.ReviewTypeUser, userID).Scan(&rating, &count)
	if err != nil {
		return 0, false, err
	}
	return rating, count > 0, nil
}
