package domain

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "pending"
	RentalStatusAccepted   RentalStatus = "accepted"
	RentalStatusRejected   RentalStatus = "rejected"
	RentalStatusCancelled  RentalStatus = "cancelled"
	RentalStatusInProgress RentalStatus = "in_progress"
	RentalStatusCompleted  RentalStatus = "completed"
)

// Blocks reports whether a rental in this status reserves its date range
// against new overlapping bookings. Rejected and cancelled rentals never
// block; completed rentals keep their interval for audit only.
func (s RentalStatus) Blocks() bool {
	switch s {
	case RentalStatusPending, RentalStatusAccepted, RentalStatusInProgress:
		return true
	}
	return false
}

// Rental is a booking of a product over [StartTime, EndTime). The price and
// deposit fields are snapshots taken at creation time; later product price
// changes do not alter an existing booking.
type Rental struct {
	ID                   uuid.UUID    `json:"id"`
	ProductID            uuid.UUID    `json:"product_id"`
	OwnerID              uuid.UUID    `json:"owner_id"`
	RenterID             uuid.UUID    `json:"renter_id"`
	StartTime            time.Time    `json:"start_time"`
	EndTime              time.Time    `json:"end_time"`
	Status               RentalStatus `json:"status"`
	TotalPriceCents      int64        `json:"total_price_cents"`
	SecurityDepositCents *int64       `json:"security_deposit_cents,omitempty"`
	Notes                string       `json:"notes"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}
