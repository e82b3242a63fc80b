package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db dbtx
}

func NewUserRepository(db dbtx) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	query := `INSERT INTO users (id, email, name, phone_number, locality, bio, is_verified, average_rating, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PhoneNumber, u.Locality, u.Bio, u.IsVerified, u.AverageRating, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, phone_number, locality, bio, is_verified, average_rating, created_at, updated_at
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.Locality, &u.Bio, &u.IsVerified, &u.AverageRating, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Kind: "user", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET email=$1, name=$2, phone_number=$3, locality=$4, bio=$5, is_verified=$6, updated_at=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, u.PhoneNumber, u.Locality, u.Bio, u.IsVerified, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "user", u.ID)
}

func (r *userRepository) SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET average_rating = $1, updated_at = $2 WHERE id = $3`,
		rating, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "user", id)
}
