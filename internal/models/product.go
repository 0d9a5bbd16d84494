package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog product. Purchasable configurations live in
// ProductVariant; the product row carries display copy only.
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ASIN            string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"asin"`
	Name            string         `gorm:"not null;index" json:"name"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	Brand           string         `gorm:"default:''" json:"brand"`
	Region          string         `gorm:"default:''" json:"region"`
	Description     string         `gorm:"type:text" json:"description"`
	AboutItem1      string         `gorm:"default:''" json:"about_item_1"`
	AboutItem2      string         `gorm:"default:''" json:"about_item_2"`
	AboutItem3      string         `gorm:"default:''" json:"about_item_3"`
	AboutItem4      string         `gorm:"default:''" json:"about_item_4"`
	AboutItem5      string         `gorm:"default:''" json:"about_item_5"`
	ExpiryDate      *time.Time     `json:"expiry_date,omitempty"`
	CountryOfOrigin string         `gorm:"default:''" json:"country_of_origin"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
