package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// AddressRepository provides delivery address row access.
type AddressRepository interface {
	ListByUser(userID uint) ([]models.UserAddress, error)
	GetByID(id uint) (*models.UserAddress, error)
	Create(address *models.UserAddress) error
	Update(address *models.UserAddress) error
	Delete(userID, id uint) error
}

// GormAddressRepository is the GORM implementation.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates an address repository.
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByUser returns addresses with the default first.
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByID returns one address, nil if absent.
func (r *GormAddressRepository) GetByID(id uint) (*models.UserAddress, error) {
	var address models.UserAddress
	err := r.db.First(&address, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Create inserts an address. Marking it default clears the previous
// default inside the same transaction.
func (r *GormAddressRepository) Create(address *models.UserAddress) error {
	if address == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

// Update saves an address, keeping the single-default rule.
func (r *GormAddressRepository) Update(address *models.UserAddress) error {
	if address == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

// Delete removes an address owned by the given profile.
func (r *GormAddressRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.UserAddress{}).Error
}

func clearDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.UserAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
