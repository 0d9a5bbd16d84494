package service

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// SubmitReviewInput describes one review submission.
type SubmitReviewInput struct {
	ProductID uint
	Rating    int
	Title     string
	Comment   string
}

// ReviewService manages product reviews. One review per user per product;
// resubmitting overwrites the previous one.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Submit saves the caller's review of a product.
func (s *ReviewService) Submit(userID uint, input SubmitReviewInput) error {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.reviewRepo.Upsert(&models.Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Comment:   strings.TrimSpace(input.Comment),
	})
}

// ListByProduct returns a product's reviews plus the aggregate.
func (s *ReviewService) ListByProduct(productID uint) ([]models.Review, repository.ReviewAggregate, error) {
	reviews, err := s.reviewRepo.ListByProduct(productID)
	if err != nil {
		return nil, repository.ReviewAggregate{}, err
	}
	aggregate, err := s.reviewRepo.AggregateByProduct(productID)
	if err != nil {
		return nil, repository.ReviewAggregate{}, err
	}
	return reviews, aggregate, nil
}

// Delete removes the caller's review of a product.
func (s *ReviewService) Delete(userID, productID uint) error {
	return s.reviewRepo.DeleteByUserAndProduct(userID, productID)
}
