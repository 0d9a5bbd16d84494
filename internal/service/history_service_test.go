package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupHistoryServiceTest(t *testing.T) (*HistoryService, *gorm.DB) {
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
		&models.BrowsingHistory{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	history := NewHistoryService(
		repository.NewHistoryRepository(db),
		repository.NewProductRepository(db),
		queue.NewClient(&config.QueueConfig{Enabled: false}),
	)
	return history, db
}

func seedHistoryProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		ASIN:       "B0" + slug,
		Name:       slug,
		Slug:       slug,
		CategoryID: categoryID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func TestSaveViewKeepsOneRowPerProduct(t *testing.T) {
	history, db := setupHistoryServiceTest(t)
	product := seedHistoryProduct(t, db, 1, "turmeric")

	first := time.Now().Add(-time.Hour)
	second := time.Now()
	if err := history.SaveView(1, product.ID, first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := history.SaveView(1, product.ID, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	entries, err := history.ListRecent(1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries want 1 got %d", len(entries))
	}
	if !entries[0].ViewedAt.After(first) {
		t.Fatalf("viewed_at should be the later timestamp")
	}
}

func TestListRecentOrdersByViewTime(t *testing.T) {
	history, db := setupHistoryServiceTest(t)
	older := seedHistoryProduct(t, db, 1, "turmeric")
	newer := seedHistoryProduct(t, db, 1, "chilli")

	if err := history.SaveView(1, older.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := history.SaveView(1, newer.ID, time.Now()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := history.ListRecent(1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries want 2 got %d", len(entries))
	}
	if entries[0].ProductID != newer.ID {
		t.Fatalf("newest view should come first, got product %d", entries[0].ProductID)
	}
	if entries[0].Product == nil || entries[0].Product.Slug != "chilli" {
		t.Fatalf("product should be preloaded")
	}
}

func TestRecommendationsSkipViewedProducts(t *testing.T) {
	history, db := setupHistoryServiceTest(t)
	viewed := seedHistoryProduct(t, db, 1, "turmeric")
	sameCategory := seedHistoryProduct(t, db, 1, "chilli")
	otherCategory := seedHistoryProduct(t, db, 2, "almonds")

	if err := history.SaveView(1, viewed.ID, time.Now()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	recs, err := history.Recommendations(1, 8)
	if err != nil {
		t.Fatalf("recommendations failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("recommendations want 1 got %d", len(recs))
	}
	if recs[0].ID != sameCategory.ID {
		t.Fatalf("want product %d from the viewed category, got %d", sameCategory.ID, recs[0].ID)
	}
	for _, rec := range recs {
		if rec.ID == viewed.ID || rec.ID == otherCategory.ID {
			t.Fatalf("unexpected recommendation %d", rec.ID)
		}
	}
}

func TestClearRemovesAllHistoryForUser(t *testing.T) {
	history, db := setupHistoryServiceTest(t)
	product := seedHistoryProduct(t, db, 1, "turmeric")

	if err := history.SaveView(1, product.ID, time.Now()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := history.SaveView(2, product.ID, time.Now()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := history.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	mine, err := history.ListRecent(1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("history want empty got %d entries", len(mine))
	}

	theirs, err := history.ListRecent(2, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(theirs) != 1 {
		t.Fatalf("other user's history should survive, got %d", len(theirs))
	}
}
