package repository

// ProductListFilter filters catalog listings.
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}
