package service

import (
	"strings"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ItemSnapshot carries the price and display fields captured at add time.
// The cart stores these verbatim so later catalog edits never rewrite an
// existing line.
type ItemSnapshot struct {
	Price      models.Money
	Name       string
	Image      string
	Weight     float64
	WeightUnit string
}

// AddItemInput describes one add-to-cart request.
type AddItemInput struct {
	VariantID uint
	ASIN      string
	Quantity  int
	Snapshot  ItemSnapshot
}

// CartService owns the authoritative cart rows. It is stateless; the
// per-principal projection lives in CartSession.
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// ResolveCart returns the cart owned by a profile, creating it on first
// access. Safe under concurrent calls: both resolve to the same row.
func (s *CartService) ResolveCart(profileID uint) (*models.Cart, error) {
	if profileID == 0 {
		return nil, ErrProfileNotFound
	}
	return s.cartRepo.Resolve(profileID)
}

// ListItems returns the items of a cart, newest first.
func (s *CartService) ListItems(cartID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListItems(cartID)
}

// AddItem merges a variant into the cart: quantity adds onto an existing
// line for the same variant, otherwise a new line is inserted with the
// given snapshot.
func (s *CartService) AddItem(cartID uint, input AddItemInput) error {
	if input.VariantID == 0 {
		return ErrVariantNotFound
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	item := &models.CartItem{
		CartID:            cartID,
		VariantID:         input.VariantID,
		ASIN:              strings.TrimSpace(input.ASIN),
		Quantity:          input.Quantity,
		PriceAtTime:       input.Snapshot.Price,
		ProductName:       input.Snapshot.Name,
		ProductImage:      input.Snapshot.Image,
		VariantWeight:     input.Snapshot.Weight,
		VariantWeightUnit: input.Snapshot.WeightUnit,
	}
	return s.cartRepo.AddOrIncrementItem(item)
}

// GetItem returns one cart item, ErrCartItemNotFound if absent.
func (s *CartService) GetItem(itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// UpdateQuantity sets an item's quantity to exactly the given value. This
// is an overwrite for UI steppers, not a merge. Stock checks belong to
// ordering, not here.
func (s *CartService) UpdateQuantity(itemID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	affected, err := s.cartRepo.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem deletes one cart line.
func (s *CartService) RemoveItem(itemID uint) error {
	return s.cartRepo.DeleteItem(itemID)
}

// Clear empties the cart; the cart row itself is kept.
func (s *CartService) Clear(cartID uint) error {
	return s.cartRepo.ClearByCart(cartID)
}
