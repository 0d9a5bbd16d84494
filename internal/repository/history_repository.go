package repository

import (
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository provides browsing-history row access.
type HistoryRepository interface {
	UpsertView(userID, productID uint, viewedAt time.Time) error
	ListRecent(userID uint, limit int) ([]models.BrowsingHistory, error)
	ClearByUser(userID uint) error
}

// GormHistoryRepository is the GORM implementation.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a history repository.
func NewHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// UpsertView records a product view, keeping one row per user/product with
// the latest timestamp.
func (r *GormHistoryRepository) UpsertView(userID, productID uint, viewedAt time.Time) error {
	entry := &models.BrowsingHistory{
		UserID:    userID,
		ProductID: productID,
		ViewedAt:  viewedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"viewed_at": viewedAt,
		}),
	}).Create(entry).Error
}

// ListRecent returns the most recently viewed products.
func (r *GormHistoryRepository) ListRecent(userID uint, limit int) ([]models.BrowsingHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.BrowsingHistory
	err := r.db.Preload("Product").
		Preload("Product.Variants").
		Preload("Product.Variants.Pricing").
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearByUser removes a profile's entire history.
func (r *GormHistoryRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.BrowsingHistory{}).Error
}
