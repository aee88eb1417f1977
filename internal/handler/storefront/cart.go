package storefront

import (
	"net/http"

	"github.com/rowanhale/vitrine/internal/domain"
	"github.com/rowanhale/vitrine/internal/service"
)

// CartHandler handles all cart-related storefront routes.
type CartHandler struct {
	cartService    domain.CartService
	catalogService domain.CatalogService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService domain.CartService, catalogService domain.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// AddItemRequest identifies the product and variant being added. The
// authoritative title, price and image come from the catalog, not the
// client.
type AddItemRequest struct {
	CatalogID int64                 `json:"catalogId"`
	Source    domain.ProviderSource `json:"source"`
	Size      string                `json:"size,omitempty"`
	Color     string                `json:"color,omitempty"`
}

// LineKeyRequest addresses an existing cart line.
type LineKeyRequest struct {
	CatalogID int64                 `json:"catalogId"`
	Source    domain.ProviderSource `json:"source"`
	Size      string                `json:"size,omitempty"`
	Color     string                `json:"color,omitempty"`
	Quantity  int                   `json:"quantity,omitempty"`
}

func (req LineKeyRequest) key() domain.LineKey {
	return domain.LineKey{
		CatalogID: req.CatalogID,
		Size:      req.Size,
		Color:     req.Color,
		Source:    req.Source,
	}
}

// cartResponse is the cart view plus the session token the state lives
// under, so a fresh browser can pick its token up from the first mutation.
type cartResponse struct {
	SessionToken string              `json:"sessionToken"`
	Cart         *domain.CartSummary `json:"cart"`
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	respondJSON(w, http.StatusOK, cartResponse{
		SessionToken: token,
		Cart:         h.cartService.Snapshot(token),
	})
}

// Summary handles GET /api/cart/summary — the cart page's promotional
// totals breakdown, distinct from checkout's.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snapshot := h.cartService.Snapshot(sessionToken(r))
	respondJSON(w, http.StatusOK, service.PreviewTotals(snapshot.Aggregate.Subtotal))
}

// Add handles POST /api/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if !req.Source.Valid() {
		respondError(w, r, domain.Invalid("cart.add", "unknown catalog source"))
		return
	}

	item, err := h.catalogService.Get(r.Context(), req.Source, req.CatalogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token := sessionToken(r)
	if token == "" {
		minted, err := service.GenerateSessionToken()
		if err != nil {
			respondError(w, r, domain.Internal(err, "cart.add", "failed to create session"))
			return
		}
		token = minted
	}
	w.Header().Set(SessionTokenHeader, token)

	summary := h.cartService.AddItem(token, domain.NewLineItem{
		CatalogID: item.ID,
		Title:     item.Title,
		UnitPrice: item.Price,
		ImageURL:  item.ImageURL,
		Size:      req.Size,
		Color:     req.Color,
		Source:    item.Source,
	})

	respondJSON(w, http.StatusCreated, cartResponse{SessionToken: token, Cart: summary})
}

// Update handles PATCH /api/cart/items — absolute quantity set; zero or
// negative removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req LineKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	token := sessionToken(r)
	summary := h.cartService.SetQuantity(token, req.key(), req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse{SessionToken: token, Cart: summary})
}

// Remove handles DELETE /api/cart/items
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req LineKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	token := sessionToken(r)
	summary := h.cartService.RemoveItem(token, req.key())
	respondJSON(w, http.StatusOK, cartResponse{SessionToken: token, Cart: summary})
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	h.cartService.Clear(token)
	respondJSON(w, http.StatusOK, cartResponse{SessionToken: token, Cart: h.cartService.Snapshot(token)})
}
