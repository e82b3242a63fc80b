package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bhara-backend/internal/cache"
	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/logger"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
)

type productService struct {
	productRepo repository.ProductRepository
	cache       cache.Cache
	engine      *engine.Engine
}

func NewProductService(productRepo repository.ProductRepository, rentalRepo repository.RentalRepository, c cache.Cache) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       c,
		engine:      engine.New(rentalRepo),
	}
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	// New listings always enter as drafts, whatever the caller set.
	product.Status = domain.ProductStatusDraft
	product.StatusMessage = ""
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	key := cache.ProductDetailKey(id)
	if data, ok, _ := s.cache.Get(ctx, key); ok {
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		logger.Warn("discarding corrupt cache entry", "key", key)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.ProductDetailTTL)
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, ownerID uuid.UUID, product *domain.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return errors.New("unauthorized")
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	// Only the listing content is editable; status moves through
	// SubmitForReview and UpdateProductStatus.
	existing.Title = product.Title
	existing.Description = product.Description
	existing.Category = product.Category
	existing.PricePerHourCents = product.PricePerHourCents
	existing.PricePerDayCents = product.PricePerDayCents
	existing.PricePerWeekCents = product.PricePerWeekCents
	existing.PricePerMonthCents = product.PricePerMonthCents
	existing.SecurityDepositCents = product.SecurityDepositCents

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return err
	}
	*product = *existing
	s.invalidate(ctx, product.ID)
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return errors.New("unauthorized")
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

type productPage struct {
	Products []domain.Product `json:"products"`
	Total    int32            `json:"total"`
}

func (s *productService) ListActiveProducts(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	key := cache.ProductListKey(fmt.Sprintf("active_size%d", pageSize), page)
	if data, ok, _ := s.cache.Get(ctx, key); ok {
		var cached productPage
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Products, cached.Total, nil
		}
		logger.Warn("discarding corrupt cache entry", "key", key)
	}

	products, total, err := s.productRepo.ListByStatus(ctx, domain.ProductStatusActive, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	if data, err := json.Marshal(productPage{Products: products, Total: total}); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.ProductListTTL)
	}
	return products, total, nil
}

func (s *productService) ListMyProducts(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error) {
	return s.productRepo.ListByOwner(ctx, ownerID)
}

func (s *productService) SubmitForReview(ctx context.Context, ownerID, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != ownerID {
		return nil, errors.New("unauthorized")
	}
	if err := s.engine.SubmitForReview(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return product, nil
}

func (s *productService) UpdateProductStatus(ctx context.Context, productID uuid.UUID, status domain.ProductStatus, message string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.UpdateProductStatus(product, status, message); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return product, nil
}

func (s *productService) IncrementViews(ctx context.Context, productID uuid.UUID) (int64, error) {
	// The counter is not worth a cache bust; detail entries age out on
	// their own TTL.
	return s.productRepo.IncrementViews(ctx, productID)
}

func (s *productService) ListCategories(ctx context.Context) ([]domain.CategoryCode, error) {
	return domain.Categories(), nil
}

// invalidate drops the product's detail entry and every listing page, the
// same sweep for every mutation so no read path can serve a stale status.
func (s *productService) invalidate(ctx context.Context, productID uuid.UUID) {
	_ = s.cache.Delete(ctx, cache.ProductDetailKey(productID))
	_ = s.cache.DeleteByPattern(ctx, cache.ProductListPattern)
}

func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.Title) == "" {
		return &engine.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !domain.ValidCategory(product.Category) {
		return &engine.ValidationError{Field: "category", Reason: "unknown category " + string(product.Category)}
	}
	if product.PricePerDayCents <= 0 {
		return &engine.ValidationError{Field: "price_per_day_cents", Reason: "daily rate is required"}
	}
	for field, cents := range map[string]int64{
		"price_per_hour_cents":  product.PricePerHourCents,
		"price_per_week_cents":  product.PricePerWeekCents,
		"price_per_month_cents": product.PricePerMonthCents,
	} {
		if cents < 0 {
			return &engine.ValidationError{Field: field, Reason: "must not be negative"}
		}
	}
	if product.SecurityDepositCents != nil && *product.SecurityDepositCents < 0 {
		return &engine.ValidationError{Field: "security_deposit_cents", Reason: "must not be negative"}
	}
	return nil
}
