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

type productRepository struct {
	db dbtx
}

func NewProductRepository(db dbtx) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, owner_id, title, description, category,
	price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents,
	security_deposit_cents, status, status_message, average_rating, views_count,
	created_at, updated_at, deleted_at`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	query := `INSERT INTO products (id, owner_id, title, description, category,
	            price_per_hour_cents, price_per_day_cents, price_per_week_cents, price_per_month_cents,
	            security_deposit_cents, status, status_message, average_rating, views_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Description, p.Category,
		p.PricePerHourCents, p.PricePerDayCents, p.PricePerWeekCents, p.PricePerMonthCents,
		p.SecurityDepositCents, p.Status, p.StatusMessage, p.AverageRating, p.ViewsCount,
		p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &engine.NotFoundError{Kind: "product", ID: id.String()}
	}
	return p, err
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET title=$1, description=$2, category=$3,
	            price_per_hour_cents=$4, price_per_day_cents=$5, price_per_week_cents=$6, price_per_month_cents=$7,
	            security_deposit_cents=$8, status=$9, status_message=$10, updated_at=$11
	          WHERE id=$12 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Category,
		p.PricePerHourCents, p.PricePerDayCents, p.PricePerWeekCents, p.PricePerMonthCents,
		p.SecurityDepositCents, p.Status, p.StatusMessage, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "product", p.ID)
}

// Delete soft-deletes the product and hard-deletes its dependent rentals
// and their reviews in one statement batch.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE rental_id IN (SELECT id FROM rentals WHERE product_id = $1)`, id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE product_id = $1`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`, now, id)
	if err != nil {
		return err
	}
	return requireRow(res, "product", id)
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepository) ListByStatus(ctx context.Context, status domain.ProductStatus, limit, offset int32) ([]domain.Product, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM products WHERE status = $1 AND deleted_at IS NULL`, status).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products
	          WHERE status = $1 AND deleted_at IS NULL
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE products SET views_count = views_count + 1 WHERE id = $1 AND deleted_at IS NULL RETURNING views_count`,
		id).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &engine.NotFoundError{Kind: "product", ID: id.String()}
	}
	return views, err
}

func (r *productRepository) SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET average_rating = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`,
		rating, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "product", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Category,
		&p.PricePerHourCents, &p.PricePerDayCents, &p.PricePerWeekCents, &p.PricePerMonthCents,
		&p.SecurityDepositCents, &p.Status, &p.StatusMessage, &p.AverageRating, &p.ViewsCount,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// requireRow converts a zero-row write into NotFoundError so callers see
// the same error kind for a missing and a soft-deleted record.
func requireRow(res sql.Result, kind string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &engine.NotFoundError{Kind: kind, ID: id.String()}
	}
	return nil
}
