package repository

import (
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewAggregate summarizes the reviews of one product.
type ReviewAggregate struct {
	Average float64
	Total   int64
}

// ReviewRepository provides review row access.
type ReviewRepository interface {
	Upsert(review *models.Review) error
	ListByProduct(productID uint) ([]models.Review, error)
	AggregateByProduct(productID uint) (ReviewAggregate, error)
	DeleteByUserAndProduct(userID, productID uint) error
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Upsert inserts a review or overwrites the caller's previous one for the
// same product.
func (r *GormReviewRepository) Upsert(review *models.Review) error {
	if review == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     review.Rating,
			"title":      review.Title,
			"comment":    review.Comment,
			"updated_at": time.Now(),
		}),
	}).Create(review).Error
}

// ListByProduct returns reviews newest-first with reviewer names.
func (r *GormReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AggregateByProduct computes the average rating and review count.
func (r *GormReviewRepository) AggregateByProduct(productID uint) (ReviewAggregate, error) {
	var agg ReviewAggregate
	row := struct {
		Average float64
		Total   int64
	}{}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return agg, err
	}
	agg.Average = row.Average
	agg.Total = row.Total
	return agg, nil
}

// DeleteByUserAndProduct removes the caller's review of a product.
func (r *GormReviewRepository) DeleteByUserAndProduct(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Review{}).Error
}
