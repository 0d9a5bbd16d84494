package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.ProfileService.GetByID(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"profile": user})
}

// UpdateProfile saves editable profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	user, err := h.ProfileService.UpdateProfile(c.Request.Context(), uid, service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"profile": user})
}
