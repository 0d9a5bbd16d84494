package service

import (
	"context"
	"errors"
	"sync"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// Principal identifies the caller of a cart session. AuthID is the
// subject claim of the identity provider's token; SignedIn is false for
// anonymous visitors.
type Principal struct {
	AuthID   string
	SignedIn bool
}

// CartSession is a per-principal projection over the authoritative cart
// rows. Writes go through CartService and are followed by a refresh, so
// the projection always reflects what the database accepted rather than
// what the caller optimistically sent. Safe for concurrent use.
type CartSession struct {
	mu sync.Mutex

	principal Principal
	profiles  *ProfileService
	carts     *CartService
	pricing   CartPricing

	profileID uint
	cartID    uint
	items     []models.CartItem
}

// NewCartSession creates a session for one principal. The projection
// starts empty; call Refresh to hydrate it.
func NewCartSession(profiles *ProfileService, carts *CartService, pricing CartPricing, principal Principal) *CartSession {
	return &CartSession{
		principal: principal,
		profiles:  profiles,
		carts:     carts,
		pricing:   pricing,
	}
}

// Refresh reloads the projection from the database. Refresh is
// best-effort: failures are logged and the previous projection is kept,
// since a read miss should not break a page render. Anonymous principals
// and principals without a profile row resolve to an empty projection.
func (s *CartSession) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
}

func (s *CartSession) refreshLocked(ctx context.Context) {
	if !s.principal.SignedIn {
		s.items = nil
		return
	}

	if err := s.ensureCartLocked(ctx); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			s.items = nil
			return
		}
		logger.Warnw("cart_refresh_failed", "auth_id", s.principal.AuthID, "error", err)
		return
	}

	items, err := s.carts.ListItems(s.cartID)
	if err != nil {
		logger.Warnw("cart_refresh_failed", "auth_id", s.principal.AuthID, "cart_id", s.cartID, "error", err)
		return
	}
	s.items = items
}

// ensureCartLocked resolves the principal's profile and cart once and
// caches both ids for the session's lifetime.
func (s *CartSession) ensureCartLocked(ctx context.Context) error {
	if !s.principal.SignedIn {
		return ErrNotAuthenticated
	}
	if s.cartID != 0 {
		return nil
	}
	if s.profileID == 0 {
		user, err := s.profiles.Resolve(ctx, s.principal.AuthID)
		if err != nil {
			return err
		}
		s.profileID = user.ID
	}
	cart, err := s.carts.ResolveCart(s.profileID)
	if err != nil {
		return err
	}
	s.cartID = cart.ID
	return nil
}

// AddItem merges a variant into the principal's cart and refreshes the
// projection. Unlike Refresh, write failures propagate to the caller.
func (s *CartSession) AddItem(ctx context.Context, input AddItemInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartLocked(ctx); err != nil {
		return err
	}
	if err := s.carts.AddItem(s.cartID, input); err != nil {
		return err
	}
	s.refreshLocked(ctx)
	return nil
}

// UpdateQuantity sets an item's quantity to exactly the given value and
// refreshes the projection. The item must belong to this session's cart.
func (s *CartSession) UpdateQuantity(ctx context.Context, itemID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartLocked(ctx); err != nil {
		return err
	}
	if err := s.checkOwnershipLocked(itemID); err != nil {
		return err
	}
	if err := s.carts.UpdateQuantity(itemID, quantity); err != nil {
		return err
	}
	s.refreshLocked(ctx)
	return nil
}

// RemoveItem deletes one cart line and refreshes the projection. The
// item must belong to this session's cart.
func (s *CartSession) RemoveItem(ctx context.Context, itemID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartLocked(ctx); err != nil {
		return err
	}
	if err := s.checkOwnershipLocked(itemID); err != nil {
		return err
	}
	if err := s.carts.RemoveItem(itemID); err != nil {
		return err
	}
	s.refreshLocked(ctx)
	return nil
}

// Clear empties the cart. On success the local projection is emptied
// directly instead of refetched; the cart row itself survives.
func (s *CartSession) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartLocked(ctx); err != nil {
		return err
	}
	if err := s.carts.Clear(s.cartID); err != nil {
		return err
	}
	s.items = nil
	return nil
}

func (s *CartSession) checkOwnershipLocked(itemID uint) error {
	item, err := s.carts.GetItem(itemID)
	if err != nil {
		return err
	}
	if item.CartID != s.cartID {
		return ErrNotOwner
	}
	return nil
}

// Items returns a copy of the projected cart lines.
func (s *CartSession) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the total quantity across all lines.
func (s *CartSession) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of line totals at snapshotted prices.
func (s *CartSession) Subtotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *CartSession) subtotalLocked() models.Money {
	sum := decimal.Zero
	for _, item := range s.items {
		sum = sum.Add(item.LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(sum)
}

// Total is an alias for Subtotal, the merchandise total before shipping.
func (s *CartSession) Total() models.Money {
	return s.Subtotal()
}

// ShippingFee returns the shipping cost for the current subtotal.
func (s *CartSession) ShippingFee() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewMoneyFromDecimal(s.pricing.ShippingFor(s.subtotalLocked().Decimal))
}

// GrandTotal returns subtotal plus shipping.
func (s *CartSession) GrandTotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotalLocked()
	shipping := s.pricing.ShippingFor(subtotal.Decimal)
	return models.NewMoneyFromDecimal(subtotal.Decimal.Add(shipping))
}

// CartID returns the resolved cart id, 0 before first resolution.
func (s *CartSession) CartID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}
