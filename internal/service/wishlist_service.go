package service

import (
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// WishlistService manages saved products.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// Add saves a product to the caller's wishlist. Saving twice is a no-op.
func (s *WishlistService) Add(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.wishlistRepo.Add(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// Remove drops a product from the caller's wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Remove(userID, productID)
}

// List returns the caller's wishlist, newest first.
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}
