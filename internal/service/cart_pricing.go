package service

import (
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"

	"github.com/shopspring/decimal"
)

var (
	defaultFreeShippingThreshold = decimal.NewFromInt(500)
	defaultFlatShippingFee       = decimal.NewFromInt(50)
)

// CartPricing holds the shipping rule applied to cart and order totals:
// shipping is free above the threshold, otherwise a flat fee.
type CartPricing struct {
	Currency              string
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// NewCartPricingFromConfig parses the configured amounts, falling back to
// defaults on malformed values.
func NewCartPricingFromConfig(cfg config.CartConfig) CartPricing {
	currency := strings.TrimSpace(cfg.Currency)
	if currency == "" {
		currency = "INR"
	}
	return CartPricing{
		Currency:              currency,
		FreeShippingThreshold: parseAmount(cfg.FreeShippingThreshold, defaultFreeShippingThreshold),
		FlatShippingFee:       parseAmount(cfg.FlatShippingFee, defaultFlatShippingFee),
	}
}

// ShippingFor returns the shipping cost for a subtotal. The threshold is
// exclusive: a subtotal exactly at the threshold still pays the flat fee.
func (p CartPricing) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

func parseAmount(raw string, fallback decimal.Decimal) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		logger.Warnw("cart_pricing_amount_invalid", "value", raw, "error", err)
		return fallback
	}
	return amount
}
