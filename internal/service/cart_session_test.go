package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartSessionFixture struct {
	db       *gorm.DB
	profiles *ProfileService
	carts    *CartService
	pricing  CartPricing
}

func setupCartSessionTest(t *testing.T) *cartSessionFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return &cartSessionFixture{
		db:       db,
		profiles: NewProfileService(repository.NewUserRepository(db)),
		carts:    NewCartService(repository.NewCartRepository(db)),
		pricing: CartPricing{
			Currency:              "INR",
			FreeShippingThreshold: decimal.NewFromInt(500),
			FlatShippingFee:       decimal.NewFromInt(50),
		},
	}
}

func (f *cartSessionFixture) createUser(t *testing.T, authID string) *models.User {
	t.Helper()
	user := &models.User{
		AuthID:    authID,
		FirstName: "Test",
		Email:     authID + "@example.com",
	}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *cartSessionFixture) session(authID string) *CartSession {
	return NewCartSession(f.profiles, f.carts, f.pricing, Principal{AuthID: authID, SignedIn: true})
}

func snapshot(price int64, name string) ItemSnapshot {
	return ItemSnapshot{
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Name:       name,
		Weight:     100,
		WeightUnit: "g",
	}
}

func TestAddItemMergesSameVariantIntoOneLine(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 3, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items := session.Items()
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}
}

func TestAddItemKeepsDistinctVariantsSeparate(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric 100g")}); err != nil {
		t.Fatalf("add variant 11 failed: %v", err)
	}
	if err := session.AddItem(ctx, AddItemInput{VariantID: 12, ASIN: "B0A", Quantity: 3, Snapshot: snapshot(250, "Turmeric 250g")}); err != nil {
		t.Fatalf("add variant 12 failed: %v", err)
	}

	if got := len(session.Items()); got != 2 {
		t.Fatalf("items want 2 got %d", got)
	}
	if got := session.Count(); got != 5 {
		t.Fatalf("count want 5 got %d", got)
	}
}

func TestTotalsUseSnapshotPrices(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric 100g")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := session.AddItem(ctx, AddItemInput{VariantID: 12, ASIN: "B0A", Quantity: 1, Snapshot: snapshot(250, "Turmeric 250g")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if got := session.Subtotal().String(); got != "450.00" {
		t.Fatalf("subtotal want 450.00 got %s", got)
	}
	if got := session.ShippingFee().String(); got != "50.00" {
		t.Fatalf("shipping want 50.00 got %s", got)
	}
	if got := session.GrandTotal().String(); got != "500.00" {
		t.Fatalf("grand total want 500.00 got %s", got)
	}
}

func TestCartResolutionIsStableAcrossSessions(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	first := f.session("auth-1")
	first.Refresh(ctx)
	second := f.session("auth-1")
	second.Refresh(ctx)

	if first.CartID() == 0 || first.CartID() != second.CartID() {
		t.Fatalf("cart ids want equal non-zero, got %d and %d", first.CartID(), second.CartID())
	}
}

func TestClearEmptiesCartEverywhere(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := session.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if got := session.Count(); got != 0 {
		t.Fatalf("count after clear want 0 got %d", got)
	}
	if got := session.Subtotal().String(); got != "0.00" {
		t.Fatalf("subtotal after clear want 0.00 got %s", got)
	}

	// A fresh session confirms the rows are gone, not just the projection.
	fresh := f.session("auth-1")
	fresh.Refresh(ctx)
	if got := len(fresh.Items()); got != 0 {
		t.Fatalf("fresh session items want 0 got %d", got)
	}
}

func TestAnonymousWritesAreRejectedWithoutSideEffects(t *testing.T) {
	f := setupCartSessionTest(t)
	ctx := context.Background()

	session := NewCartSession(f.profiles, f.carts, f.pricing, Principal{})
	err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 1, Snapshot: snapshot(100, "Turmeric")})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated got %v", err)
	}

	var carts int64
	if err := f.db.Model(&models.Cart{}).Count(&carts).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if carts != 0 {
		t.Fatalf("cart rows want 0 got %d", carts)
	}

	session.Refresh(ctx)
	if got := len(session.Items()); got != 0 {
		t.Fatalf("anonymous items want 0 got %d", got)
	}
}

func TestAddItemWithoutProfileFails(t *testing.T) {
	f := setupCartSessionTest(t)
	ctx := context.Background()

	session := f.session("auth-missing")
	err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 1, Snapshot: snapshot(100, "Turmeric")})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound got %v", err)
	}
}

func TestUpdateQuantityOverwritesExactly(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := session.Items()[0].ID

	if err := session.UpdateQuantity(ctx, itemID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	items := session.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("want one item with quantity 5, got %+v", items)
	}
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := session.Items()[0].ID

	if err := session.UpdateQuantity(ctx, itemID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
}

func TestWritesRejectItemsOfOtherUsers(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	f.createUser(t, "auth-2")
	ctx := context.Background()

	owner := f.session("auth-1")
	if err := owner.AddItem(ctx, AddItemInput{VariantID: 11, ASIN: "B0A", Quantity: 2, Snapshot: snapshot(100, "Turmeric")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := owner.Items()[0].ID

	intruder := f.session("auth-2")
	if err := intruder.UpdateQuantity(ctx, itemID, 9); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update want ErrNotOwner got %v", err)
	}
	if err := intruder.RemoveItem(ctx, itemID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("remove want ErrNotOwner got %v", err)
	}
}

func TestAddUpdateRemoveLifecycle(t *testing.T) {
	f := setupCartSessionTest(t)
	f.createUser(t, "auth-1")
	ctx := context.Background()

	session := f.session("auth-1")
	if err := session.AddItem(ctx, AddItemInput{VariantID: 21, ASIN: "B0B", Quantity: 1, Snapshot: snapshot(199, "Almonds")}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if got := session.Count(); got != 1 {
		t.Fatalf("count want 1 got %d", got)
	}
	if got := session.Subtotal().String(); got != "199.00" {
		t.Fatalf("subtotal want 199.00 got %s", got)
	}

	if err := session.AddItem(ctx, AddItemInput{VariantID: 21, ASIN: "B0B", Quantity: 2, Snapshot: snapshot(199, "Almonds")}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if got := session.Count(); got != 3 {
		t.Fatalf("count want 3 got %d", got)
	}
	if got := session.Subtotal().String(); got != "597.00" {
		t.Fatalf("subtotal want 597.00 got %s", got)
	}
	// Over the free shipping threshold now.
	if got := session.ShippingFee().String(); got != "0.00" {
		t.Fatalf("shipping want 0.00 got %s", got)
	}

	itemID := session.Items()[0].ID
	if err := session.RemoveItem(ctx, itemID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if got := session.Count(); got != 0 {
		t.Fatalf("count after remove want 0 got %d", got)
	}
}
