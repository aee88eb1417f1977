package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rowanhale/vitrine/internal/domain"
	"github.com/rowanhale/vitrine/internal/stepstore"
)

// Step storage keys for the two draft records.
const (
	shippingDraftKey = "checkoutData"
	paymentDraftKey  = "paymentData"
)

var (
	// contactEmailRe is deliberately loose: anything of the local@domain.tld
	// shape passes. Deliverability is not this form's problem.
	contactEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	expiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

// shippingFieldNames maps the struct's Go field names to the form field
// names surfaced in validation errors.
var shippingFieldNames = map[string]string{
	"Email":      "email",
	"FirstName":  "firstName",
	"LastName":   "lastName",
	"Address":    "address",
	"City":       "city",
	"Country":    "country",
	"PostalCode": "postalCode",
	"Phone":      "phone",
}

// shippingMessages maps "field.tag" to the user-facing message.
var shippingMessages = map[string]string{
	"email.required":      "Email is required",
	"email.contact_email": "Please enter a valid email address",
	"firstName.required":  "First name is required",
	"lastName.required":   "Last name is required",
	"address.required":    "Address is required",
	"city.required":       "City is required",
	"country.required":    "Country is required",
	"postalCode.required": "Postal code is required",
	"phone.required":      "Phone number is required",
}

// pipelineState tracks one session's progress through the stages.
type pipelineState struct {
	stage      domain.Stage
	processing bool
}

// checkoutService implements domain.CheckoutService. It reads the cart
// through its public snapshot only and never mutates it until the final
// stage, where it clears it.
type checkoutService struct {
	cart     domain.CartService
	steps    stepstore.Store
	validate *validator.Validate
	delay    time.Duration
	orderIDs *orderIDGenerator

	mu     sync.Mutex
	states map[string]*pipelineState
}

// NewCheckoutService creates the checkout pipeline. processingDelay stands
// in for the order-submission round trip; pass zero in tests.
func NewCheckoutService(cart domain.CartService, steps stepstore.Store, processingDelay time.Duration) (domain.CheckoutService, error) {
	v := validator.New()
	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return contactEmailRe.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register email validation: %w", err)
	}

	return &checkoutService{
		cart:     cart,
		steps:    steps,
		validate: v,
		delay:    processingDelay,
		orderIDs: &orderIDGenerator{},
		states:   make(map[string]*pipelineState),
	}, nil
}

// SubmitShipping validates the shipping record, persists it and advances
// the session to the Payment stage. Shipping is the pipeline entry, so a
// completed flow restarts here.
func (s *checkoutService) SubmitShipping(sessionToken string, info domain.ShippingInfo) error {
	if err := s.guardProcessing(sessionToken); err != nil {
		return err
	}
	if len(s.cart.Snapshot(sessionToken).Items) == 0 {
		return domain.ErrCartEmpty
	}

	if err := s.validateShipping(info); err != nil {
		return err
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return domain.Internal(err, "checkout.submitShipping", "failed to store shipping details")
	}
	s.steps.Set(sessionToken, shippingDraftKey, payload)

	s.advance(sessionToken, domain.StagePayment)
	return nil
}

// SubmitPayment validates the payment record, persists it and advances the
// session to the Review stage. The Shipping stage must be completed first.
func (s *checkoutService) SubmitPayment(sessionToken string, info domain.PaymentInfo) error {
	if err := s.guardProcessing(sessionToken); err != nil {
		return err
	}

	stage := s.Stage(sessionToken)
	if stage != domain.StagePayment && stage != domain.StageReview {
		return domain.ErrStageNotReached
	}

	if len(s.cart.Snapshot(sessionToken).Items) == 0 {
		return domain.ErrCartEmpty
	}

	if err := validatePayment(info); err != nil {
		return err
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return domain.Internal(err, "checkout.submitPayment", "failed to store payment details")
	}
	s.steps.Set(sessionToken, paymentDraftKey, payload)

	s.advance(sessionToken, domain.StageReview)
	return nil
}

// PlaceOrder runs the final stage transition. While processing, repeat
// calls are rejected so the cart cannot be double-cleared and no second
// order ID is minted.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionToken string) (*domain.Order, error) {
	s.mu.Lock()
	state, ok := s.states[sessionToken]
	if !ok || state.stage != domain.StageReview {
		s.mu.Unlock()
		return nil, domain.ErrStageNotReached
	}
	if state.processing {
		s.mu.Unlock()
		return nil, domain.ErrOrderInProgress
	}

	snapshot := s.cart.Snapshot(sessionToken)
	if len(snapshot.Items) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrCartEmpty
	}

	state.processing = true
	s.mu.Unlock()

	// Simulated order-submission round trip. Nothing external depends on
	// it, so an abandoned wait just leaves the flow on Review.
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.mu.Lock()
			state.processing = false
			s.mu.Unlock()
			return nil, domain.WrapError(ctx.Err(), domain.EINTERNAL, "checkout.placeOrder", "order processing interrupted")
		case <-timer.C:
		}
	}

	shipping, ok := s.shippingDraft(sessionToken)
	if !ok {
		s.mu.Lock()
		state.processing = false
		s.mu.Unlock()
		return nil, domain.ErrStageNotReached
	}
	payment, ok := s.paymentDraft(sessionToken)
	if !ok {
		s.mu.Lock()
		state.processing = false
		s.mu.Unlock()
		return nil, domain.ErrStageNotReached
	}

	paymentSnap := domain.PaymentSnapshot{Method: payment.Method}
	if payment.Method == domain.MethodCard {
		paymentSnap.CardNumberMasked = MaskCardNumber(payment.CardNumber)
		paymentSnap.CardBrand = CardBrand(payment.CardNumber)
		paymentSnap.CardName = payment.CardName
	}

	order := &domain.Order{
		ID:       s.orderIDs.Next(),
		Totals:   CheckoutTotals(snapshot.Aggregate.Subtotal),
		Items:    snapshot.Items,
		Shipping: *shipping,
		Payment:  paymentSnap,
		PlacedAt: time.Now(),
	}

	s.cart.Clear(sessionToken)
	s.steps.Delete(sessionToken, shippingDraftKey)
	s.steps.Delete(sessionToken, paymentDraftKey)

	s.mu.Lock()
	state.processing = false
	state.stage = domain.StageCompleted
	s.mu.Unlock()

	return order, nil
}

// guardProcessing rejects stage submissions while an order is in flight.
// Editing a draft mid-confirmation would let the order freeze state the
// customer never reviewed.
func (s *checkoutService) guardProcessing(sessionToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[sessionToken]; ok && state.processing {
		return domain.ErrOrderInProgress
	}
	return nil
}

// advance moves the session to the given stage. The state object held by
// the map is mutated in place so the processing flag checked by PlaceOrder
// always lives on the same object the map points at.
func (s *checkoutService) advance(sessionToken string, stage domain.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[sessionToken]; ok {
		state.stage = stage
		return
	}
	s.states[sessionToken] = &pipelineState{stage: stage}
}

// Stage reports the session's current pipeline stage.
func (s *checkoutService) Stage(sessionToken string) domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[sessionToken]; ok {
		return state.stage
	}
	return domain.StageShipping
}

// ShippingDraft re-hydrates the stored shipping record, if any. Revisiting
// the Shipping page edits the draft in place; nothing is rolled back.
func (s *checkoutService) ShippingDraft(sessionToken string) (*domain.ShippingInfo, bool) {
	return s.shippingDraft(sessionToken)
}

// PaymentDraft re-hydrates the stored payment record, if any.
func (s *checkoutService) PaymentDraft(sessionToken string) (*domain.PaymentInfo, bool) {
	return s.paymentDraft(sessionToken)
}

func (s *checkoutService) shippingDraft(sessionToken string) (*domain.ShippingInfo, bool) {
	payload, ok := s.steps.Get(sessionToken, shippingDraftKey)
	if !ok {
		return nil, false
	}
	var info domain.ShippingInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, false
	}
	return &info, true
}

func (s *checkoutService) paymentDraft(sessionToken string) (*domain.PaymentInfo, bool) {
	payload, ok := s.steps.Get(sessionToken, paymentDraftKey)
	if !ok {
		return nil, false
	}
	var info domain.PaymentInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, false
	}
	return &info, true
}

// validateShipping runs the struct tags and translates failures into the
// form's per-field messages.
func (s *checkoutService) validateShipping(info domain.ShippingInfo) error {
	err := s.validate.Struct(info)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Internal(err, "checkout.submitShipping", "shipping validation failed")
	}

	var result error
	for _, fieldErr := range invalid {
		field, ok := shippingFieldNames[fieldErr.Field()]
		if !ok {
			field = fieldErr.Field()
		}
		msg, ok := shippingMessages[field+"."+fieldErr.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		result = domain.AddFieldError(result, field, msg)
	}
	return result
}

// validatePayment shape-checks the card fields. Non-card methods need no
// further validation.
func validatePayment(info domain.PaymentInfo) error {
	if !info.Method.Valid() {
		return domain.Invalid("checkout.submitPayment", fmt.Sprintf("unsupported payment method: %s", info.Method))
	}
	if info.Method != domain.MethodCard {
		return nil
	}

	var result error
	if len(stripSpaces(info.CardNumber)) < 16 {
		result = domain.AddFieldError(result, "cardNumber", "Please enter a valid card number")
	}
	if !expiryRe.MatchString(info.ExpiryDate) {
		result = domain.AddFieldError(result, "expiryDate", "Please enter a valid expiry date (MM/YY)")
	}
	if len(info.CVV) < 3 {
		result = domain.AddFieldError(result, "cvv", "Please enter a valid CVV")
	}
	if info.CardName == "" {
		result = domain.AddFieldError(result, "cardName", "Please enter the cardholder name")
	}
	return result
}

// orderIDGenerator mints wall-clock order IDs. The guard keeps IDs unique
// within the process even when two orders land in the same millisecond.
type orderIDGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *orderIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return fmt.Sprintf("ORD-%d", now)
}
