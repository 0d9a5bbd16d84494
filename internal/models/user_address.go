package models

import "time"

// UserAddress is a delivery address belonging to a profile.
type UserAddress struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Label        string    `gorm:"type:varchar(40);default:'Home'" json:"label"`
	AddressLine1 string    `gorm:"not null" json:"address_line1"`
	AddressLine2 string    `gorm:"default:''" json:"address_line2"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	Country      string    `gorm:"default:'India'" json:"country"`
	Pincode      string    `gorm:"type:varchar(12);not null" json:"pincode"`
	IsDefault    bool      `gorm:"default:false;index" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (UserAddress) TableName() string {
	return "user_addresses"
}
