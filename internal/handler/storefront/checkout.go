package storefront

import (
	"net/http"

	"github.com/rowanhale/vitrine/internal/domain"
	"github.com/rowanhale/vitrine/internal/service"
)

// CheckoutHandler drives the three-stage checkout flow over HTTP.
type CheckoutHandler struct {
	checkoutService domain.CheckoutService
	cartService     domain.CartService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkoutService domain.CheckoutService, cartService domain.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
	}
}

// paymentDraftView is the re-hydration shape for the payment form. The
// card number is masked; raw card data stays in the pipeline's storage.
type paymentDraftView struct {
	Method           domain.PaymentMethod `json:"method"`
	CardNumberMasked string               `json:"cardNumberMasked,omitempty"`
	CardBrand        string               `json:"cardBrand,omitempty"`
	ExpiryDate       string               `json:"expiryDate,omitempty"`
	CardName         string               `json:"cardName,omitempty"`
}

// stateResponse describes the session's checkout progress, the stored
// drafts for form re-hydration, and the checkout totals.
type stateResponse struct {
	Stage         domain.Stage         `json:"stage"`
	Totals        domain.OrderTotals   `json:"totals"`
	ShippingDraft *domain.ShippingInfo `json:"shippingDraft,omitempty"`
	PaymentDraft  *paymentDraftView    `json:"paymentDraft,omitempty"`
}

// State handles GET /api/checkout
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	snapshot := h.cartService.Snapshot(token)
	resp := stateResponse{
		Stage:  h.checkoutService.Stage(token),
		Totals: service.CheckoutTotals(snapshot.Aggregate.Subtotal),
	}

	if draft, ok := h.checkoutService.ShippingDraft(token); ok {
		resp.ShippingDraft = draft
	}
	if draft, ok := h.checkoutService.PaymentDraft(token); ok {
		view := &paymentDraftView{Method: draft.Method}
		if draft.Method == domain.MethodCard {
			view.CardNumberMasked = service.MaskCardNumber(draft.CardNumber)
			view.CardBrand = service.CardBrand(draft.CardNumber)
			view.ExpiryDate = draft.ExpiryDate
			view.CardName = draft.CardName
		}
		resp.PaymentDraft = view
	}

	respondJSON(w, http.StatusOK, resp)
}

// SubmitShipping handles POST /api/checkout/shipping
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var info domain.ShippingInfo
	if err := decodeJSON(r, &info); err != nil {
		respondError(w, r, err)
		return
	}

	token := sessionToken(r)
	if err := h.checkoutService.SubmitShipping(token, info); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"stage": h.checkoutService.Stage(token)})
}

// paymentRequest accepts the formatted-or-raw card fields; keystroke
// formatting is applied server-side before validation so that both paths
// see identical shapes.
type paymentRequest struct {
	Method     domain.PaymentMethod `json:"method"`
	CardNumber string               `json:"cardNumber"`
	ExpiryDate string               `json:"expiryDate"`
	CVV        string               `json:"cvv"`
	CardName   string               `json:"cardName"`
}

// SubmitPayment handles POST /api/checkout/payment
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	info := domain.PaymentInfo{Method: req.Method}
	if req.Method == domain.MethodCard {
		info.CardNumber = service.FormatCardNumber(req.CardNumber)
		info.ExpiryDate = service.FormatExpiry(req.ExpiryDate)
		info.CVV = service.FormatCVV(req.CVV)
		info.CardName = req.CardName
	}

	token := sessionToken(r)
	if err := h.checkoutService.SubmitPayment(token, info); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"stage": h.checkoutService.Stage(token)})
}

// PlaceOrder handles POST /api/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkoutService.PlaceOrder(r.Context(), sessionToken(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
