package service

import (
	"math"

	"github.com/rowanhale/vitrine/internal/domain"
)

// Pricing constants. The cart preview and the checkout flow intentionally
// apply different formulas to the same subtotal; both are kept as distinct
// display paths rather than unified (the divergence is a product decision).
const (
	checkoutShippingFee = 15.0
	checkoutTaxRate     = 0.08

	cartPreviewDiscountRate = 0.20
	cartPreviewDeliveryFee  = 15.0
)

// CartPreviewTotals is the promotional breakdown shown on the standalone
// cart page: subtotal - 20% discount + flat delivery fee.
type CartPreviewTotals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	DeliveryFee float64 `json:"deliveryFee"`
	FinalTotal  float64 `json:"finalTotal"`
}

// CheckoutTotals computes the totals used identically at every checkout
// stage summary and frozen onto the order at confirmation:
// subtotal + flat shipping + tax rounded to the nearest currency unit.
func CheckoutTotals(subtotal float64) domain.OrderTotals {
	tax := math.Round(subtotal * checkoutTaxRate)
	return domain.OrderTotals{
		Subtotal:    subtotal,
		ShippingFee: checkoutShippingFee,
		Tax:         tax,
		GrandTotal:  subtotal + checkoutShippingFee + tax,
	}
}

// PreviewTotals computes the cart page's promotional breakdown.
func PreviewTotals(subtotal float64) CartPreviewTotals {
	discount := subtotal * cartPreviewDiscountRate
	return CartPreviewTotals{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: cartPreviewDeliveryFee,
		FinalTotal:  subtotal - discount + cartPreviewDeliveryFee,
	}
}
