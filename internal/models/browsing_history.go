package models

import "time"

// BrowsingHistory records the latest product-detail view per user/product
// pair. Rows are written by the background worker, not the request path.
type BrowsingHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_history_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_history_user_product" json:"product_id"`
	ViewedAt  time.Time `gorm:"not null;index" json:"viewed_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (BrowsingHistory) TableName() string {
	return "browsing_history"
}
