package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db       *gorm.DB
	orders   *OrderService
	cartRepo repository.CartRepository
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	pricing := CartPricing{
		Currency:              "INR",
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(50),
	}
	tasks := queue.NewClient(&config.QueueConfig{Enabled: false})
	orders := NewOrderService(
		repository.NewOrderRepository(db),
		cartRepo,
		repository.NewAddressRepository(db),
		pricing,
		tasks,
	)
	return &orderServiceFixture{db: db, orders: orders, cartRepo: cartRepo}
}

func (f *orderServiceFixture) createAddress(t *testing.T, userID uint) *models.UserAddress {
	t.Helper()
	address := &models.UserAddress{
		UserID:       userID,
		Label:        "Home",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		IsDefault:    true,
	}
	if err := f.db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func (f *orderServiceFixture) fillCart(t *testing.T, userID uint, lines map[uint]struct {
	qty   int
	price int64
}) uint {
	t.Helper()
	cart, err := f.cartRepo.Resolve(userID)
	if err != nil {
		t.Fatalf("resolve cart failed: %v", err)
	}
	for variantID, line := range lines {
		item := &models.CartItem{
			CartID:      cart.ID,
			VariantID:   variantID,
			ASIN:        "B0TEST",
			Quantity:    line.qty,
			PriceAtTime: models.NewMoneyFromDecimal(decimal.NewFromInt(line.price)),
			ProductName: "Test Product",
		}
		if err := f.cartRepo.AddOrIncrementItem(item); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}
	return cart.ID
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	f := setupOrderServiceTest(t)
	address := f.createAddress(t, 1)
	cartID := f.fillCart(t, 1, map[uint]struct {
		qty   int
		price int64
	}{
		11: {qty: 2, price: 100},
		12: {qty: 1, price: 250},
	})

	order, err := f.orders.PlaceOrder(context.Background(), 1, PlaceOrderInput{AddressID: address.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if order.OrderNo == "" {
		t.Fatalf("order number should be assigned")
	}
	if got := order.Subtotal.String(); got != "450.00" {
		t.Fatalf("subtotal want 450.00 got %s", got)
	}
	if got := order.ShippingCost.String(); got != "50.00" {
		t.Fatalf("shipping want 50.00 got %s", got)
	}
	if got := order.TotalAmount.String(); got != "500.00" {
		t.Fatalf("total want 500.00 got %s", got)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	if order.OrderStatus != constants.OrderStatusProcessing {
		t.Fatalf("status want processing got %s", order.OrderStatus)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("payment status want pending got %s", order.PaymentStatus)
	}

	items, err := f.cartRepo.ListItems(cartID)
	if err != nil {
		t.Fatalf("list cart items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be cleared, got %d items", len(items))
	}
}

func TestPlaceOrderEmptyCartFails(t *testing.T) {
	f := setupOrderServiceTest(t)
	address := f.createAddress(t, 1)

	_, err := f.orders.PlaceOrder(context.Background(), 1, PlaceOrderInput{AddressID: address.ID})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestPlaceOrderRejectsForeignAddress(t *testing.T) {
	f := setupOrderServiceTest(t)
	address := f.createAddress(t, 2)
	f.fillCart(t, 1, map[uint]struct {
		qty   int
		price int64
	}{11: {qty: 1, price: 100}})

	_, err := f.orders.PlaceOrder(context.Background(), 1, PlaceOrderInput{AddressID: address.ID})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("want ErrAddressNotFound got %v", err)
	}
}

func TestConfirmPaymentSuccessMovesOrderToConfirmed(t *testing.T) {
	f := setupOrderServiceTest(t)
	address := f.createAddress(t, 1)
	f.fillCart(t, 1, map[uint]struct {
		qty   int
		price int64
	}{11: {qty: 1, price: 100}})

	order, err := f.orders.PlaceOrder(context.Background(), 1, PlaceOrderInput{AddressID: address.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	updated, err := f.orders.ConfirmPayment(1, order.ID, true, "pay_ref_123")
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", updated.PaymentStatus)
	}
	if updated.OrderStatus != constants.OrderStatusConfirmed {
		t.Fatalf("order status want confirmed got %s", updated.OrderStatus)
	}
	if updated.PaymentReference != "pay_ref_123" {
		t.Fatalf("payment reference want pay_ref_123 got %s", updated.PaymentReference)
	}
}

func TestOrdersAreOwnerScoped(t *testing.T) {
	f := setupOrderServiceTest(t)
	address := f.createAddress(t, 1)
	f.fillCart(t, 1, map[uint]struct {
		qty   int
		price int64
	}{11: {qty: 1, price: 100}})

	order, err := f.orders.PlaceOrder(context.Background(), 1, PlaceOrderInput{AddressID: address.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := f.orders.Get(2, order.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner got %v", err)
	}
}
