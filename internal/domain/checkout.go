package domain

import (
	"context"
	"time"
)

// Checkout-specific errors.
var (
	ErrCartEmpty       = &Error{Code: ECONFLICT, Message: "Cart is empty"}
	ErrOrderInProgress = &Error{Code: ECONFLICT, Message: "An order is already being processed"}
	ErrStageNotReached = &Error{Code: ECONFLICT, Message: "Previous checkout step has not been completed"}
)

// Stage is one of the linear checkout steps. Each stage has its own
// validation gate; advancing past Review is terminal.
type Stage string

const (
	StageShipping  Stage = "shipping"
	StagePayment   Stage = "payment"
	StageReview    Stage = "review"
	StageCompleted Stage = "completed"
)

// PaymentMethod discriminates the payment record.
type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodPayPal   PaymentMethod = "paypal"
	MethodApplePay PaymentMethod = "applepay"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == MethodCard || m == MethodPayPal || m == MethodApplePay
}

// ShippingInfo is the contact and address record collected at the first
// checkout stage. Validation tags gate stage advancement; the email rule is
// registered by the checkout service.
type ShippingInfo struct {
	Email      string `json:"email" validate:"required,contact_email"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Apartment  string `json:"apartment"`
	City       string `json:"city" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	SaveInfo   bool   `json:"saveInfo"`
	Newsletter bool   `json:"newsletter"`
}

// PaymentInfo is the discriminated payment record. Card fields are only
// shape-validated and never leave the pipeline's transient storage.
type PaymentInfo struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber,omitempty"`
	ExpiryDate string        `json:"expiryDate,omitempty"`
	CVV        string        `json:"cvv,omitempty"`
	CardName   string        `json:"cardName,omitempty"`
}

// PaymentSnapshot is the display-safe projection stored on a completed
// order. The card number is masked to its last four digits and the brand
// is carried for the payment-method badge.
type PaymentSnapshot struct {
	Method           PaymentMethod `json:"method"`
	CardNumberMasked string        `json:"cardNumberMasked,omitempty"`
	CardBrand        string        `json:"cardBrand,omitempty"`
	CardName         string        `json:"cardName,omitempty"`
}

// OrderTotals is the totals snapshot frozen onto an order at confirmation.
type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingFee"`
	Tax         float64 `json:"tax"`
	GrandTotal  float64 `json:"grandTotal"`
}

// Order is the terminal artifact of a checkout flow. Created only at the
// final stage and immutable thereafter; the cart is cleared in the same
// transition.
type Order struct {
	ID       string          `json:"id"`
	Totals   OrderTotals     `json:"totals"`
	Items    []LineItem      `json:"items"`
	Shipping ShippingInfo    `json:"shipping"`
	Payment  PaymentSnapshot `json:"payment"`
	PlacedAt time.Time       `json:"placedAt"`
}

// CheckoutService threads a session's checkout draft through the
// Shipping -> Payment -> Review -> Completed pipeline. Drafts persist in
// ephemeral step storage so revisiting an earlier stage re-hydrates the
// form instead of rolling anything back.
type CheckoutService interface {
	// SubmitShipping validates the shipping record. On failure it returns
	// a *ValidationError with one message per invalid field and persists
	// nothing; on success it stores the draft and advances to Payment.
	SubmitShipping(sessionToken string, info ShippingInfo) error

	// SubmitPayment validates the payment record (card method only; other
	// methods pass through). Same gating contract as SubmitShipping.
	SubmitPayment(sessionToken string, info PaymentInfo) error

	// PlaceOrder runs the final stage: it requires a non-empty cart and a
	// completed Payment stage, simulates order processing, then generates
	// the order, clears the cart and discards both drafts. A concurrent
	// call while processing returns ErrOrderInProgress.
	PlaceOrder(ctx context.Context, sessionToken string) (*Order, error)

	// Stage reports the session's current pipeline stage.
	Stage(sessionToken string) Stage

	// ShippingDraft re-hydrates the stored shipping record, if any.
	ShippingDraft(sessionToken string) (*ShippingInfo, bool)

	// PaymentDraft re-hydrates the stored payment record, if any.
	PaymentDraft(sessionToken string) (*PaymentInfo, bool)
}
