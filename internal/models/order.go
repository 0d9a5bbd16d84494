package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order. Amounts are computed server-side from the cart
// at placement time; payment capture happens in the external checkout
// widget and only its reference is recorded here.
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrderNo          string         `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_no"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	AddressID        uint           `gorm:"not null" json:"address_id"`
	Subtotal         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	ShippingCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	Currency         string         `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	ShippingMethod   string         `gorm:"type:varchar(20);not null;default:'standard'" json:"shipping_method"`
	OrderStatus      string         `gorm:"type:varchar(20);not null;default:'processing';index" json:"order_status"`
	PaymentMethod    string         `gorm:"type:varchar(20);not null;default:'online'" json:"payment_method"`
	PaymentStatus    string         `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentReference string         `gorm:"default:''" json:"payment_reference"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Items   []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Address *UserAddress `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
