package models

import "time"

// ProductVariant is a purchasable configuration of a product. The variant,
// not the bare product, is the unit of cart identity.
type ProductVariant struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Weight     float64   `gorm:"not null" json:"weight"`
	WeightUnit string    `gorm:"type:varchar(10);not null;default:'g'" json:"weight_unit"`
	SKU        string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"sku"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt  time.Time `json:"created_at"`

	Pricing *ProductPricing `gorm:"foreignKey:VariantID" json:"pricing,omitempty"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductPricing holds per-variant pricing. EffectiveAmount is the price
// the storefront charges; MRP and the discount are display values.
type ProductPricing struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	VariantID       uint      `gorm:"not null;uniqueIndex" json:"variant_id"`
	MRP             Money     `gorm:"type:decimal(20,2);not null;default:0" json:"mrp"`
	DiscountPercent int       `gorm:"not null;default:0" json:"discount_percent"`
	EffectivePrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"effective_price"`
	CostPerGram     Money     `gorm:"type:decimal(20,4);not null;default:0" json:"cost_per_gram"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName sets the table name.
func (ProductPricing) TableName() string {
	return "product_pricing"
}
