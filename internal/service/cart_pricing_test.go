package service

import (
	"testing"

	"github.com/storefront-next/internal/config"

	"github.com/shopspring/decimal"
)

func TestShippingIsFreeOnlyAboveThreshold(t *testing.T) {
	pricing := CartPricing{
		Currency:              "INR",
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(50),
	}

	cases := []struct {
		subtotal int64
		want     string
	}{
		{subtotal: 0, want: "50"},
		{subtotal: 450, want: "50"},
		{subtotal: 500, want: "50"}, // exactly at threshold still pays
		{subtotal: 501, want: "0"},
		{subtotal: 597, want: "0"},
	}
	for _, tc := range cases {
		got := pricing.ShippingFor(decimal.NewFromInt(tc.subtotal))
		if got.String() != tc.want {
			t.Fatalf("subtotal %d: shipping want %s got %s", tc.subtotal, tc.want, got.String())
		}
	}
}

func TestNewCartPricingFromConfigParsesAmounts(t *testing.T) {
	pricing := NewCartPricingFromConfig(config.CartConfig{
		Currency:              "EUR",
		FreeShippingThreshold: "750.50",
		FlatShippingFee:       "25",
	})
	if pricing.Currency != "EUR" {
		t.Fatalf("currency want EUR got %s", pricing.Currency)
	}
	if pricing.FreeShippingThreshold.String() != "750.5" {
		t.Fatalf("threshold want 750.5 got %s", pricing.FreeShippingThreshold.String())
	}
	if pricing.FlatShippingFee.String() != "25" {
		t.Fatalf("fee want 25 got %s", pricing.FlatShippingFee.String())
	}
}

func TestNewCartPricingFromConfigFallsBackOnGarbage(t *testing.T) {
	pricing := NewCartPricingFromConfig(config.CartConfig{
		FreeShippingThreshold: "not-a-number",
		FlatShippingFee:       "-10",
	})
	if pricing.Currency != "INR" {
		t.Fatalf("currency want INR got %s", pricing.Currency)
	}
	if pricing.FreeShippingThreshold.String() != "500" {
		t.Fatalf("threshold fallback want 500 got %s", pricing.FreeShippingThreshold.String())
	}
	if pricing.FlatShippingFee.String() != "50" {
		t.Fatalf("fee fallback want 50 got %s", pricing.FlatShippingFee.String())
	}
}
