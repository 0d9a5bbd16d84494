package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. The unique index on (cart_id, variant_id)
// guarantees at most one row per variant; concurrent adds of the same
// variant resolve to an atomic quantity increment instead of a duplicate.
// PriceAtTime and the display fields are snapshotted at add time so later
// catalog changes do not alter existing lines.
type CartItem struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CartID            uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant" json:"cart_id"`
	VariantID         uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant" json:"variant_id"`
	ASIN              string    `gorm:"type:varchar(20);not null" json:"asin"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	PriceAtTime       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_time"`
	ProductName       string    `gorm:"not null" json:"product_name"`
	ProductImage      string    `gorm:"default:''" json:"product_image"`
	VariantWeight     float64   `gorm:"not null;default:0" json:"variant_weight"`
	VariantWeightUnit string    `gorm:"type:varchar(10);default:'g'" json:"variant_weight_unit"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal returns price_at_time multiplied by quantity.
func (i CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.PriceAtTime.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity))))
}
