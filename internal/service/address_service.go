package service

import (
	"strings"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// AddressInput describes one delivery address.
type AddressInput struct {
	Label        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Country      string
	Pincode      string
	IsDefault    bool
}

// AddressService manages delivery addresses.
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates an address service.
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List returns the caller's addresses, default first.
func (s *AddressService) List(userID uint) ([]models.UserAddress, error) {
	return s.addressRepo.ListByUser(userID)
}

// Get returns one address owned by the caller.
func (s *AddressService) Get(userID, addressID uint) (*models.UserAddress, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create inserts a new address for the caller.
func (s *AddressService) Create(userID uint, input AddressInput) (*models.UserAddress, error) {
	address := &models.UserAddress{UserID: userID}
	applyAddressInput(address, input)
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update saves changes to an address owned by the caller.
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.UserAddress, error) {
	address, err := s.Get(userID, addressID)
	if err != nil {
		return nil, err
	}
	applyAddressInput(address, input)
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes an address owned by the caller.
func (s *AddressService) Delete(userID, addressID uint) error {
	if _, err := s.Get(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(userID, addressID)
}

func applyAddressInput(address *models.UserAddress, input AddressInput) {
	address.Label = strings.TrimSpace(input.Label)
	if address.Label == "" {
		address.Label = "Home"
	}
	address.AddressLine1 = strings.TrimSpace(input.AddressLine1)
	address.AddressLine2 = strings.TrimSpace(input.AddressLine2)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.Country = strings.TrimSpace(input.Country)
	if address.Country == "" {
		address.Country = "India"
	}
	address.Pincode = strings.TrimSpace(input.Pincode)
	address.IsDefault = input.IsDefault
}
