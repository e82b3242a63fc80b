package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReviewType string

const (
	ReviewTypeProduct ReviewType = "product"
	ReviewTypeUser    ReviewType = "user"
)

func ValidReviewType(t ReviewType) bool {
	return t == ReviewTypeProduct || t == ReviewTypeUser
}

// Review is feedback tied to a completed rental. A reviewer may leave at
// most one review of each type per rental.
type Review struct {
	ID         uuid.UUID  `json:"id"`
	RentalID   uuid.UUID  `json:"rental_id"`
	ReviewerID uuid.UUID  `json:"reviewer_id"`
	Type       ReviewType `json:"review_type"`
	Rating     int32      `json:"rating"` // 1..5
	Comment    string     `json:"comment"`
	CreatedAt  time.Time  `json:"created_at"`
}
