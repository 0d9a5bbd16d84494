package repository

import (
	"fmt"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) *GormProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductPricing{},
		&models.ProductImage{},
		&models.User{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate catalog tables failed: %v", err)
	}
	return NewProductRepository(db)
}

func seedCatalogProduct(t *testing.T, repo *GormProductRepository, categoryID uint, asin, name, slug, brand string) *models.Product {
	t.Helper()
	product := &models.Product{
		ASIN:       asin,
		Name:       name,
		Slug:       slug,
		CategoryID: categoryID,
		Brand:      brand,
		Variants: []models.ProductVariant{
			{
				Weight:     100,
				WeightUnit: "g",
				SKU:        asin + "-100",
				Stock:      10,
				Pricing: &models.ProductPricing{
					MRP:            models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
					EffectivePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
				},
			},
			{
				Weight:     250,
				WeightUnit: "g",
				SKU:        asin + "-250",
				Stock:      5,
				Pricing: &models.ProductPricing{
					MRP:            models.NewMoneyFromDecimal(decimal.NewFromInt(280)),
					EffectivePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(250)),
				},
			},
		},
		Images: []models.ProductImage{
			{ImageURL: "https://cdn.example.com/" + slug + ".jpg", DisplayOrder: 0},
		},
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func TestListFiltersByCategory(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	spices := createCategory(t, repo.db, "Spices", "spices")
	nuts := createCategory(t, repo.db, "Nuts", "nuts")
	seedCatalogProduct(t, repo, spices.ID, "B0A", "Turmeric Powder", "turmeric-powder", "Svarna")
	seedCatalogProduct(t, repo, spices.ID, "B0B", "Chilli Powder", "chilli-powder", "Svarna")
	seedCatalogProduct(t, repo, nuts.ID, "B0C", "Almonds", "almonds", "NutBarn")

	products, total, err := repo.List(ProductListFilter{CategoryID: spices.ID, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	if len(products) != 2 {
		t.Fatalf("products want 2 got %d", len(products))
	}
}

func TestListSearchMatchesNameAndBrand(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	spices := createCategory(t, repo.db, "Spices", "spices")
	seedCatalogProduct(t, repo, spices.ID, "B0A", "Turmeric Powder", "turmeric-powder", "Svarna")
	seedCatalogProduct(t, repo, spices.ID, "B0B", "Chilli Powder", "chilli-powder", "Heatline")

	byName, total, err := repo.List(ProductListFilter{Search: "turmeric", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("search by name failed: %v", err)
	}
	if total != 1 || len(byName) != 1 || byName[0].Slug != "turmeric-powder" {
		t.Fatalf("search turmeric want one match, got total=%d len=%d", total, len(byName))
	}

	byBrand, total, err := repo.List(ProductListFilter{Search: "Heatline", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("search by brand failed: %v", err)
	}
	if total != 1 || len(byBrand) != 1 || byBrand[0].Slug != "chilli-powder" {
		t.Fatalf("search Heatline want one match, got total=%d len=%d", total, len(byBrand))
	}
}

func TestListPaginates(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	spices := createCategory(t, repo.db, "Spices", "spices")
	for i := 0; i < 5; i++ {
		seedCatalogProduct(t, repo, spices.ID,
			fmt.Sprintf("B0P%d", i),
			fmt.Sprintf("Product %d", i),
			fmt.Sprintf("product-%d", i),
			"Svarna")
	}

	page, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5 got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size want 2 got %d", len(page))
	}
}

func TestGetBySlugPreloadsVariantsInWeightOrder(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	spices := createCategory(t, repo.db, "Spices", "spices")
	seedCatalogProduct(t, repo, spices.ID, "B0A", "Turmeric Powder", "turmeric-powder", "Svarna")

	product, err := repo.GetBySlug("turmeric-powder")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product == nil {
		t.Fatalf("product should exist")
	}
	if len(product.Variants) != 2 {
		t.Fatalf("variants want 2 got %d", len(product.Variants))
	}
	if product.Variants[0].Weight != 100 || product.Variants[1].Weight != 250 {
		t.Fatalf("variants should be ordered by weight, got %v then %v",
			product.Variants[0].Weight, product.Variants[1].Weight)
	}
	if product.Variants[0].Pricing == nil || product.Variants[0].Pricing.EffectivePrice.String() != "100.00" {
		t.Fatalf("variant pricing should be preloaded")
	}
	if len(product.Images) != 1 {
		t.Fatalf("images want 1 got %d", len(product.Images))
	}
}

func TestGetBySlugMissingReturnsNil(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	product, err := repo.GetBySlug("does-not-exist")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product != nil {
		t.Fatalf("missing slug should return nil, got %+v", product)
	}
}
