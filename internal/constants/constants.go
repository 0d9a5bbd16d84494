package constants

// Order status constants
const (
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment method constants
const (
	PaymentMethodOnline         = "online"
	PaymentMethodCashOnDelivery = "cod"
)

// Shipping method constants
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// Variant weight unit constants
const (
	WeightUnitGram       = "g"
	WeightUnitKilogram   = "kg"
	WeightUnitMilliliter = "ml"
	WeightUnitLiter      = "l"
)

// Queue names
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Review rating bounds
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)
