package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ProductService serves catalog reads. Detail pages are cached in Redis;
// list pages always hit the database since filters fan out too widely to
// cache usefully.
type ProductService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	cacheTTL    time.Duration
	pageSize    int
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository, cfg config.CatalogConfig) *ProductService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	pageSize := cfg.DefaultPageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		cacheTTL:    ttl,
		pageSize:    pageSize,
	}
}

// ProductDetail bundles a product with its review aggregate.
type ProductDetail struct {
	Product       models.Product             `json:"product"`
	ReviewSummary repository.ReviewAggregate `json:"review_summary"`
}

// List returns a catalog page plus the total match count.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}
	return s.productRepo.List(filter)
}

// GetBySlug returns a product detail page by slug. Cache misses and cache
// failures fall through to the database.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	cacheKey := fmt.Sprintf("product:slug:%s", slug)
	var cached ProductDetail
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("product_cache_read_failed", "slug", slug, "error", err)
	} else if hit && cached.Product.ID != 0 {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	aggregate, err := s.reviewRepo.AggregateByProduct(product.ID)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: *product, ReviewSummary: aggregate}
	if err := cache.SetJSON(ctx, cacheKey, detail, s.cacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "slug", slug, "error", err)
	}
	return detail, nil
}

// GetByASIN returns a product by its catalog reference.
func (s *ProductService) GetByASIN(asin string) (*models.Product, error) {
	product, err := s.productRepo.GetByASIN(asin)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetVariant returns a purchasable variant with pricing.
func (s *ProductService) GetVariant(variantID uint) (*models.ProductVariant, error) {
	variant, err := s.productRepo.GetVariantByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}

// SnapshotForVariant builds the cart snapshot for a variant: the current
// effective price plus the display fields frozen into the cart line.
func (s *ProductService) SnapshotForVariant(variantID uint) (string, ItemSnapshot, error) {
	variant, err := s.GetVariant(variantID)
	if err != nil {
		return "", ItemSnapshot{}, err
	}
	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return "", ItemSnapshot{}, err
	}
	if product == nil {
		return "", ItemSnapshot{}, ErrProductNotFound
	}

	snapshot := ItemSnapshot{
		Name:       product.Name,
		Weight:     variant.Weight,
		WeightUnit: variant.WeightUnit,
	}
	if variant.Pricing != nil {
		snapshot.Price = variant.Pricing.EffectivePrice
	}
	if len(product.Images) > 0 {
		snapshot.Image = product.Images[0].ImageURL
	}
	return product.ASIN, snapshot, nil
}

// ListCategories returns all categories.
func (s *ProductService) ListCategories() ([]models.Category, error) {
	return s.productRepo.ListCategories()
}

// RelatedProducts returns other products of the same category, the
// product itself excluded.
func (s *ProductService) RelatedProducts(slug string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	candidates, err := s.productRepo.ListByCategory(product.CategoryID, limit+1)
	if err != nil {
		return nil, err
	}
	related := make([]models.Product, 0, limit)
	for _, candidate := range candidates {
		if candidate.ID == product.ID {
			continue
		}
		related = append(related, candidate)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
