package repository

import (
	"fmt"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) *GormCartRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	return NewCartRepository(db)
}

func testCartItem(cartID, variantID uint, quantity int, price int64) *models.CartItem {
	return &models.CartItem{
		CartID:            cartID,
		VariantID:         variantID,
		ASIN:              "B0TESTASIN",
		Quantity:          quantity,
		PriceAtTime:       models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		ProductName:       "Test Product",
		VariantWeight:     100,
		VariantWeightUnit: "g",
	}
}

func TestResolveReturnsSameCartForRepeatedCalls(t *testing.T) {
	repo := setupCartRepositoryTest(t)

	first, err := repo.Resolve(7)
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := repo.Resolve(7)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("resolve ids want equal non-zero, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := repo.db.Model(&models.Cart{}).Where("user_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("cart rows want 1 got %d", count)
	}
}

func TestAddOrIncrementItemMergesSameVariant(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	cart, err := repo.Resolve(1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 11, 2, 100)); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// Same variant with a different snapshot price: quantity merges, the
	// original snapshot wins.
	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 11, 3, 999)); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}
	if items[0].PriceAtTime.String() != "100.00" {
		t.Fatalf("price snapshot want 100.00 got %s", items[0].PriceAtTime.String())
	}
}

func TestAddOrIncrementItemKeepsDistinctVariantsSeparate(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	cart, err := repo.Resolve(1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 11, 2, 100)); err != nil {
		t.Fatalf("add variant 11 failed: %v", err)
	}
	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 12, 3, 250)); err != nil {
		t.Fatalf("add variant 12 failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items want 2 got %d", len(items))
	}
}

func TestUpdateItemQuantityOverwrites(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	cart, err := repo.Resolve(1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	item := testCartItem(cart.ID, 11, 2, 100)
	if err := repo.AddOrIncrementItem(item); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	affected, err := repo.UpdateItemQuantity(item.ID, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	got, err := repo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if got.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", got.Quantity)
	}
}

func TestUpdateItemQuantityMissingRowAffectsNothing(t *testing.T) {
	repo := setupCartRepositoryTest(t)

	affected, err := repo.UpdateItemQuantity(9999, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected want 0 got %d", affected)
	}
}

func TestClearByCartRemovesItemsKeepsCart(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	cart, err := repo.Resolve(1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 11, 2, 100)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.AddOrIncrementItem(testCartItem(cart.ID, 12, 1, 250)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.ClearByCart(cart.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items want 0 got %d", len(items))
	}

	still, err := repo.GetByUser(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if still == nil || still.ID != cart.ID {
		t.Fatalf("cart row should survive clear")
	}
}
