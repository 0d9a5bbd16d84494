package models

import "time"

// OrderItem snapshots one cart line at order placement.
type OrderItem struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	OrderID           uint      `gorm:"not null;index" json:"order_id"`
	VariantID         uint      `gorm:"not null" json:"variant_id"`
	ASIN              string    `gorm:"type:varchar(20);not null" json:"asin"`
	ProductName       string    `gorm:"not null" json:"product_name"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	PriceAtTime       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_time"`
	VariantWeight     float64   `gorm:"not null;default:0" json:"variant_weight"`
	VariantWeightUnit string    `gorm:"type:varchar(10);default:'g'" json:"variant_weight_unit"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
