package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusDraft         ProductStatus = "draft"
	ProductStatusPendingReview ProductStatus = "pending_review"
	ProductStatusActive        ProductStatus = "active"
	ProductStatusRejected      ProductStatus = "rejected"
	ProductStatusInactive      ProductStatus = "inactive"
)

// Product is a rentable listing. Prices are integer cents; PricePerDayCents
// is the one mandatory rate, the others may be zero (absent) and are derived
// by the pricing engine.
type Product struct {
	ID                   uuid.UUID     `json:"id"`
	OwnerID              uuid.UUID     `json:"owner_id"`
	Owner                *User         `json:"owner,omitempty"` // populated when fetching details
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	Category             CategoryCode  `json:"category"`
	PricePerHourCents    int64         `json:"price_per_hour_cents"`
	PricePerDayCents     int64         `json:"price_per_day_cents"`
	PricePerWeekCents    int64         `json:"price_per_week_cents"`
	PricePerMonthCents   int64         `json:"price_per_month_cents"`
	SecurityDepositCents *int64        `json:"security_deposit_cents,omitempty"`
	Status               ProductStatus `json:"status"`
	StatusMessage        string        `json:"status_message"`
	AverageRating        int32         `json:"average_rating"` // hundredths, e.g. 450 = 4.50
	ViewsCount           int64         `json:"views_count"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
	DeletedAt            *time.Time    `json:"deleted_at,omitempty"`
}

// Deleted reports whether the listing has been soft-deleted. Deleted
// products are invisible to availability and pricing queries.
func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}
