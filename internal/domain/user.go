package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PhoneNumber   string    `json:"phone_number"`
	Locality      string    `json:"locality"`
	Bio           string    `json:"bio"`
	IsVerified    bool      `json:"is_verified"`
	AverageRating int32     `json:"average_rating"` // hundredths, recomputed from reviews
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
