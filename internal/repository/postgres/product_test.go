package postgres

import (
	"context"
	"testing"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "category",
		"price_per_hour_cents", "price_per_day_cents", "price_per_week_cents", "price_per_month_cents",
		"security_deposit_cents", "status", "status_message", "average_rating", "views_count",
		"created_at", "updated_at", "deleted_at"}).
		AddRow(id, uuid.New(), "DSLR camera", "", "camera",
			0, 2000, 0, 0,
			nil, "active", "", 0, 12,
			time.Now(), time.Now(), nil)
}

func TestProductRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1 AND deleted_at IS NULL`).
			WithArgs(id).
			WillReturnRows(productRows(id))

		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, domain.CategoryCamera, p.Category)
		assert.Equal(t, int64(2000), p.PricePerDayCents)
	})

	t.Run("Deleted or missing product maps to NotFoundError", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, id)
		var nfErr *engine.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "product", nfErr.Kind)
	})
}

func TestProductRepository_IncrementViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Returns the incremented counter", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE products SET views_count = views_count \+ 1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"views_count"}).AddRow(13))

		views, err := repo.IncrementViews(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(13), views)
	})

	t.Run("Missing product", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE products SET views_count = views_count \+ 1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"views_count"}))

		_, err := repo.IncrementViews(ctx, id)
		var nfErr *engine.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Cascades reviews and rentals before soft-deleting", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reviews").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM rentals").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products SET deleted_at").
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already-deleted product", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reviews").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM rentals").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE products SET deleted_at").
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, id)
		var nfErr *engine.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}
