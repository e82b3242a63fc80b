package service

import (
	"context"
	"testing"

	"bhara-backend/internal/cache"
	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validDraft(ownerID uuid.UUID) *domain.Product {
	return &domain.Product{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Title:            "Cordless drill",
		Category:         domain.CategoryPowerTool,
		PricePerDayCents: 2000,
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewProductService(productRepo, rentalRepo, newMemCache())

	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("New listing enters as draft", func(t *testing.T) {
		product := validDraft(ownerID)
		product.Status = domain.ProductStatusActive // callers cannot self-activate
		productRepo.On("Create", ctx, product).Return(nil).Once()

		err := svc.CreateProduct(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusDraft, product.Status)
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		product := validDraft(ownerID)
		product.Category = "hovercraft"

		err := svc.CreateProduct(ctx, product)
		var vErr *engine.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "category", vErr.Field)
	})

	t.Run("Missing day rate rejected", func(t *testing.T) {
		product := validDraft(ownerID)
		product.PricePerDayCents = 0

		err := svc.CreateProduct(ctx, product)
		var vErr *engine.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "price_per_day_cents", vErr.Field)
	})

	productRepo.AssertExpectations(t)
}

func TestProductService_GetProduct_Caching(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	mem := newMemCache()
	svc := NewProductService(productRepo, rentalRepo, mem)

	ctx := context.Background()
	product := validDraft(uuid.New())
	product.Status = domain.ProductStatusActive

	// The repo is consulted exactly once; the second read is a cache hit.
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

	first, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Title, first.Title)
	assert.True(t, mem.has(cache.ProductDetailKey(product.ID)))

	second, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, second.ID)

	productRepo.AssertExpectations(t)
}

func TestProductService_ListActiveProducts_Caching(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	mem := newMemCache()
	svc := NewProductService(productRepo, rentalRepo, mem)

	ctx := context.Background()
	listed := []domain.Product{*validDraft(uuid.New())}
	productRepo.On("ListByStatus", ctx, domain.ProductStatusActive, int32(20), int32(0)).
		Return(listed, int32(1), nil).Once()

	products, total, err := svc.ListActiveProducts(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, products, 1)

	// Second page-1 read comes out of the cache.
	products, total, err = svc.ListActiveProducts(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, products, 1)

	productRepo.AssertExpectations(t)
}

func TestProductService_ListActiveProducts_PageSizeKeysSeparately(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	mem := newMemCache()
	svc := NewProductService(productRepo, rentalRepo, mem)

	ctx := context.Background()
	wide := make([]domain.Product, 20)
	for i := range wide {
		wide[i] = *validDraft(uuid.New())
	}
	productRepo.On("ListByStatus", ctx, domain.ProductStatusActive, int32(20), int32(0)).
		Return(wide, int32(20), nil).Once()
	productRepo.On("ListByStatus", ctx, domain.ProductStatusActive, int32(5), int32(0)).
		Return(wide[:5], int32(20), nil).Once()

	products, _, err := svc.ListActiveProducts(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, products, 20)

	// Same page with a different size must not reuse the size-20 entry.
	products, _, err = svc.ListActiveProducts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	productRepo.AssertExpectations(t)
}

func TestProductService_SubmitForReview(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	mem := newMemCache()
	svc := NewProductService(productRepo, rentalRepo, mem)

	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Draft moves to pending_review and cache is busted", func(t *testing.T) {
		product := validDraft(ownerID)
		product.Status = domain.ProductStatusDraft
		mem.Set(ctx, cache.ProductDetailKey(product.ID), []byte("stale"), 0)
		mem.Set(ctx, cache.ProductListKey("active", 1), []byte("stale"), 0)

		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("Update", ctx, product).Return(nil).Once()

		updated, err := svc.SubmitForReview(ctx, ownerID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusPendingReview, updated.Status)
		assert.False(t, mem.has(cache.ProductDetailKey(product.ID)))
		assert.False(t, mem.has(cache.ProductListKey("active", 1)))
	})

	t.Run("Only the owner may submit", func(t *testing.T) {
		product := validDraft(ownerID)
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

		_, err := svc.SubmitForReview(ctx, uuid.New(), product.ID)
		assert.EqualError(t, err, "unauthorized")
	})

	t.Run("Active listing cannot be resubmitted", func(t *testing.T) {
		product := validDraft(ownerID)
		product.Status = domain.ProductStatusActive
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

		_, err := svc.SubmitForReview(ctx, ownerID, product.ID)
		var tErr *engine.InvalidTransitionError
		assert.ErrorAs(t, err, &tErr)
	})

	productRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductStatus(t *testing.T) {
	productRepo := new(MockProductRepo)
	rentalRepo := new(MockRentalRepo)
	mem := newMemCache()
	svc := NewProductService(productRepo, rentalRepo, mem)

	ctx := context.Background()

	t.Run("Moderation approves a pending listing", func(t *testing.T) {
		product := validDraft(uuid.New())
		product.Status = domain.ProductStatusPendingReview
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("Update", ctx, product).Return(nil).Once()

		updated, err := svc.UpdateProductStatus(ctx, product.ID, domain.ProductStatusActive, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusActive, updated.Status)
	})

	t.Run("Rejection keeps the reason", func(t *testing.T) {
		product := validDraft(uuid.New())
		product.Status = domain.ProductStatusPendingReview
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("Update", ctx, product).Return(nil).Once()

		updated, err := svc.UpdateProductStatus(ctx, product.ID, domain.ProductStatusRejected, "blurry photos")
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusRejected, updated.Status)
		assert.Equal(t, "blurry photos", updated.StatusMessage)
	})

	t.Run("Draft cannot jump straight to active", func(t *testing.T) {
		product := validDraft(uuid.New())
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

		_, err := svc.UpdateProductStatus(ctx, product.ID, domain.ProductStatusActive, "")
		var tErr *engine.InvalidTransitionError
		assert.ErrorAs(t, err, &tErr)
	})

	productRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	product := validDraft(ownerID)

	t.Run("Owner deletes, caches cleared", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		rentalRepo := new(MockRentalRepo)
		mem := newMemCache()
		svc := NewProductService(productRepo, rentalRepo, mem)

		mem.Set(ctx, cache.ProductDetailKey(product.ID), []byte("stale"), 0)
		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("Delete", ctx, product.ID).Return(nil).Once()

		err := svc.DeleteProduct(ctx, ownerID, product.ID)
		require.NoError(t, err)
		assert.False(t, mem.has(cache.ProductDetailKey(product.ID)))

		productRepo.AssertExpectations(t)
	})

	t.Run("Non-owner is refused", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		rentalRepo := new(MockRentalRepo)
		mem := newMemCache()
		svc := NewProductService(productRepo, rentalRepo, mem)

		productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

		err := svc.DeleteProduct(ctx, uuid.New(), product.ID)
		assert.EqualError(t, err, "unauthorized")
		productRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)

		productRepo.AssertExpectations(t)
	})
}
