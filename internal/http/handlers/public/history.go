package public

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListHistory returns the caller's recently viewed products.
func (h *Handler) ListHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	entries, err := h.HistoryService.ListRecent(uid, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "history fetch failed", err)
		return
	}
	response.Success(c, gin.H{"entries": entries})
}

// ClearHistory removes the caller's entire browsing history.
func (h *Handler) ClearHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.HistoryService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "history clear failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// ListRecommendations returns products drawn from recently viewed
// categories.
func (h *Handler) ListRecommendations(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	products, err := h.HistoryService.Recommendations(uid, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "recommendation fetch failed", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}
