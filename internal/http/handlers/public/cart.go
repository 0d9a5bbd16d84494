package public

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is one add-to-cart request.
type AddCartItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest overwrites a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func cartPayload(session *service.CartSession) gin.H {
	return gin.H{
		"cart_id":      session.CartID(),
		"items":        session.Items(),
		"count":        session.Count(),
		"subtotal":     session.Subtotal(),
		"shipping_fee": session.ShippingFee(),
		"total":        session.GrandTotal(),
	}
}

// GetCart returns the caller's cart projection.
func (h *Handler) GetCart(c *gin.Context) {
	session := h.NewCartSession(getPrincipal(c))
	session.Refresh(c.Request.Context())
	response.Success(c, cartPayload(session))
}

// AddCartItem merges a variant into the cart. The price and display
// fields are snapshotted from the catalog at this moment.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	asin, snapshot, err := h.ProductService.SnapshotForVariant(req.VariantID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	session := h.NewCartSession(getPrincipal(c))
	if err := session.AddItem(c.Request.Context(), service.AddItemInput{
		VariantID: req.VariantID,
		ASIN:      asin,
		Quantity:  req.Quantity,
		Snapshot:  snapshot,
	}); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cartPayload(session))
}

// UpdateCartItem sets a line's quantity to exactly the given value.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	session := h.NewCartSession(getPrincipal(c))
	if err := session.UpdateQuantity(c.Request.Context(), itemID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cartPayload(session))
}

// DeleteCartItem removes one line from the cart.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	session := h.NewCartSession(getPrincipal(c))
	if err := session.RemoveItem(c.Request.Context(), itemID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cartPayload(session))
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	session := h.NewCartSession(getPrincipal(c))
	if err := session.Clear(c.Request.Context()); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cartPayload(session))
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
