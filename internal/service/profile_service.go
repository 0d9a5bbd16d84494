package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileService resolves identity-provider principals to profile rows.
// Profiles are created by the identity/profile subsystem upstream; this
// service never creates them.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a profile service.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Resolve maps an auth id to its profile. Returns ErrNotAuthenticated for
// an empty principal and ErrProfileNotFound when the identity has no
// profile row yet. Cache failures fall through to the database.
func (s *ProfileService) Resolve(ctx context.Context, authID string) (*models.User, error) {
	authID = strings.TrimSpace(authID)
	if authID == "" {
		return nil, ErrNotAuthenticated
	}

	cacheKey := fmt.Sprintf("profile:auth:%s", authID)
	var cached models.User
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("profile_cache_read_failed", "error", err)
	} else if hit && cached.ID != 0 {
		return &cached, nil
	}

	user, err := s.userRepo.GetByAuthID(authID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	if err := cache.SetJSON(ctx, cacheKey, user, profileCacheTTL); err != nil {
		logger.Warnw("profile_cache_write_failed", "error", err)
	}
	return user, nil
}

// GetByID returns a profile by primary key.
func (s *ProfileService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return user, nil
}

// UpdateProfileInput carries editable profile fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Mobile    string
}

// UpdateProfile saves editable fields and drops the cached entry.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if first := strings.TrimSpace(input.FirstName); first != "" {
		user.FirstName = first
	}
	user.LastName = strings.TrimSpace(input.LastName)
	user.Mobile = strings.TrimSpace(input.Mobile)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.Del(ctx, fmt.Sprintf("profile:auth:%s", user.AuthID)); err != nil {
		logger.Warnw("profile_cache_invalidate_failed", "error", err)
	}
	return user, nil
}
