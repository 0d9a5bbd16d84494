package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReviewRequest is one review submission.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ListReviews returns a product's reviews plus the rating aggregate.
func (h *Handler) ListReviews(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	reviews, aggregate, err := h.ReviewService.ListByProduct(productID)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, gin.H{
		"reviews": reviews,
		"summary": gin.H{
			"average": aggregate.Average,
			"total":   aggregate.Total,
		},
	})
}

// SubmitReview saves the caller's review of a product, overwriting a
// previous one.
func (h *Handler) SubmitReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.ReviewService.Submit(uid, service.SubmitReviewInput{
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	}); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"submitted": true})
}

// DeleteReview removes the caller's review of a product.
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(uid, productID); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
