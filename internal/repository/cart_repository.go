package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository provides cart and cart-item row access. Get-or-create and
// add-or-merge both ride on unique indexes so concurrent callers converge
// on a single row instead of racing into duplicates.
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	Resolve(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItemByID(itemID uint) (*models.CartItem, error)
	AddOrIncrementItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) (int64, error)
	DeleteItem(itemID uint) error
	ClearByCart(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser returns the cart owned by a profile, nil if none exists.
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Resolve returns the profile's cart, creating it when absent. The insert
// is ON CONFLICT DO NOTHING against the user_id unique index, so two
// concurrent first accesses both end up reading the same row.
func (r *GormCartRepository) Resolve(userID uint) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(cart).Error; err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert assigns no primary key.
	var existing models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// ListItems returns all items of a cart, newest first.
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_id = ?", cartID).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByID returns a cart item by primary key, nil if absent.
func (r *GormCartRepository) GetItemByID(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddOrIncrementItem inserts a cart item or, when the (cart_id, variant_id)
// row already exists, atomically adds the incoming quantity to it. The
// price snapshot and display fields of the existing row are kept.
func (r *GormCartRepository) AddOrIncrementItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

// UpdateItemQuantity overwrites an item's quantity unconditionally and
// reports the number of rows touched.
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	})
	return result.RowsAffected, result.Error
}

// DeleteItem removes one cart item by id.
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearByCart removes every item of a cart; the cart row stays.
func (r *GormCartRepository) ClearByCart(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
