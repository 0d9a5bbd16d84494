package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// getPrincipal reads the identity established by the auth middleware.
// Absent values mean an anonymous visitor, not an error.
func getPrincipal(c *gin.Context) service.Principal {
	value, exists := c.Get("auth_id")
	if !exists {
		return service.Principal{}
	}
	authID, ok := value.(string)
	if !ok || authID == "" {
		return service.Principal{}
	}
	return service.Principal{AuthID: authID, SignedIn: true}
}
