package public

import (
	"strconv"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProducts returns a catalog page. Supports category and search
// filters plus pagination.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		Search:     c.Query("q"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"products": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct returns a product detail page by slug. Signed-in views are
// recorded into browsing history off the request path.
func (h *Handler) GetProduct(c *gin.Context) {
	detail, err := h.ProductService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondCartError(c, err)
		return
	}

	if principal := getPrincipal(c); principal.SignedIn {
		if user, err := h.ProfileService.Resolve(c.Request.Context(), principal.AuthID); err == nil {
			h.HistoryService.RecordView(user.ID, detail.Product.ID)
		}
	}

	response.Success(c, detail)
}

// ListRelatedProducts returns products from the same category.
func (h *Handler) ListRelatedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	related, err := h.ProductService.RelatedProducts(c.Param("slug"), limit)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"products": related})
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
