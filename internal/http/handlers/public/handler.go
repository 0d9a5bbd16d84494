package public

import "github.com/storefront-next/internal/provider"

// Handler serves the storefront API: catalog, cart, checkout and the
// signed-in account surfaces.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
