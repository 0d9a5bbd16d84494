package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceOrderInput describes one checkout request. Payment capture happens
// in the external checkout widget; only its outcome is reported back.
type PlaceOrderInput struct {
	AddressID      uint
	PaymentMethod  string
	ShippingMethod string
}

// OrderService turns carts into orders.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	pricing     CartPricing
	tasks       *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, addressRepo repository.AddressRepository, pricing CartPricing, tasks *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		pricing:     pricing,
		tasks:       tasks,
	}
}

// PlaceOrder snapshots the profile's cart into an order and clears the
// cart, both inside one transaction. Totals are recomputed server-side
// from the snapshotted line prices, never taken from the client.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, input PlaceOrderInput) (*models.Order, error) {
	address, err := s.addressRepo.GetByID(input.AddressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := models.Money{}
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		subtotal = models.NewMoneyFromDecimal(subtotal.Decimal.Add(item.LineTotal().Decimal))
		orderItems = append(orderItems, models.OrderItem{
			VariantID:         item.VariantID,
			ASIN:              item.ASIN,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			PriceAtTime:       item.PriceAtTime,
			VariantWeight:     item.VariantWeight,
			VariantWeightUnit: item.VariantWeightUnit,
		})
	}
	shipping := models.NewMoneyFromDecimal(s.pricing.ShippingFor(subtotal.Decimal))
	total := models.NewMoneyFromDecimal(subtotal.Decimal.Add(shipping.Decimal))

	order := &models.Order{
		OrderNo:        newOrderNo(),
		UserID:         userID,
		AddressID:      address.ID,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		TotalAmount:    total,
		Currency:       s.pricing.Currency,
		ShippingMethod: normalizeShippingMethod(input.ShippingMethod),
		OrderStatus:    constants.OrderStatusProcessing,
		PaymentMethod:  normalizePaymentMethod(input.PaymentMethod),
		PaymentStatus:  constants.PaymentStatusPending,
		Items:          orderItems,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByCart(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueFollowUp(order)
	return order, nil
}

func (s *OrderService) enqueueFollowUp(order *models.Order) {
	task, err := queue.NewOrderPlacedTask(queue.OrderPlacedPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
	})
	if err != nil {
		logger.Errorw("order_task_build_failed", "order_no", order.OrderNo, "error", err)
		return
	}
	if err := s.tasks.Enqueue(task); err != nil {
		logger.Errorw("order_task_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}
}

// ConfirmPayment records the checkout widget's reported outcome. Success
// moves the order to confirmed; failure leaves it processing with a
// failed payment so the shopper can retry.
func (s *OrderService) ConfirmPayment(userID, orderID uint, succeeded bool, reference string) (*models.Order, error) {
	order, err := s.Get(userID, orderID)
	if err != nil {
		return nil, err
	}

	paymentStatus := constants.PaymentStatusFailed
	orderStatus := ""
	if succeeded {
		paymentStatus = constants.PaymentStatusCompleted
		orderStatus = constants.OrderStatusConfirmed
	}
	if err := s.orderRepo.UpdatePayment(order.ID, paymentStatus, strings.TrimSpace(reference), orderStatus); err != nil {
		return nil, err
	}
	return s.Get(userID, orderID)
}

// Get returns one order owned by the given profile.
func (s *OrderService) Get(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	return order, nil
}

// List returns the profile's orders, newest first.
func (s *OrderService) List(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(status),
	})
}

func newOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("SF%s%s", time.Now().Format("20060102150405"), suffix)
}

func normalizePaymentMethod(method string) string {
	if strings.TrimSpace(method) == constants.PaymentMethodCashOnDelivery {
		return constants.PaymentMethodCashOnDelivery
	}
	return constants.PaymentMethodOnline
}

func normalizeShippingMethod(method string) string {
	if strings.TrimSpace(method) == constants.ShippingMethodExpress {
		return constants.ShippingMethodExpress
	}
	return constants.ShippingMethodStandard
}
