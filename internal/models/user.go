package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the application profile row. Authentication lives with the
// external identity provider; AuthID is the stable reference to it.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	AuthID    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"auth_id"`
	FirstName string         `gorm:"not null" json:"first_name"`
	LastName  string         `gorm:"default:''" json:"last_name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Mobile    string         `gorm:"default:''" json:"mobile"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
