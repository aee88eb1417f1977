package domain

// LineKey is the composite identity of a cart line. Two items with the same
// key are the same line; differing in any field makes them distinct lines
// even when the catalog ID matches.
type LineKey struct {
	CatalogID int64          `json:"catalogId"`
	Size      string         `json:"size,omitempty"`
	Color     string         `json:"color,omitempty"`
	Source    ProviderSource `json:"source"`
}

// LineItem is one purchasable unit held in the cart with a quantity.
// Quantity is always >= 1 while the line exists; a transition that would
// drive it to zero removes the line instead.
type LineItem struct {
	LineKey
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// LineSubtotal returns the extended price of the line.
func (li LineItem) LineSubtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// NewLineItem is the candidate passed to AddItem. Quantity is implicit:
// a first add creates the line with quantity 1, repeats increment it.
type NewLineItem struct {
	CatalogID int64
	Title     string
	UnitPrice float64
	ImageURL  string
	Size      string
	Color     string
	Source    ProviderSource
}

// Key returns the composite identity of the candidate.
func (n NewLineItem) Key() LineKey {
	return LineKey{
		CatalogID: n.CatalogID,
		Size:      n.Size,
		Color:     n.Color,
		Source:    n.Source,
	}
}

// CartAggregate is derived from the line items and never independently
// mutated. It is recomputed by a full fold after every mutation.
type CartAggregate struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSummary is a read-only view of a cart's lines and aggregate.
type CartSummary struct {
	Items     []LineItem    `json:"items"`
	Aggregate CartAggregate `json:"aggregate"`
}

// CartService owns the authoritative set of line items for each browsing
// session and exposes deterministic transitions. Carts are created lazily:
// an unknown session token behaves as an empty cart. The in-memory store
// has no failure modes, so transitions return the updated summary directly.
type CartService interface {
	// AddItem merges the candidate into an existing line with the same
	// composite key (incrementing quantity by 1) or appends a new line
	// with quantity 1. Malformed catalog data is accepted as-is.
	AddItem(sessionToken string, candidate NewLineItem) *CartSummary

	// RemoveItem deletes the matching line. No-op if absent.
	RemoveItem(sessionToken string, key LineKey) *CartSummary

	// SetQuantity overwrites the line's quantity (absolute set, not delta).
	// Quantity <= 0 behaves as RemoveItem. No-op if the key is not present.
	SetQuantity(sessionToken string, key LineKey, quantity int) *CartSummary

	// Clear empties the cart. Idempotent.
	Clear(sessionToken string)

	// Snapshot returns a read-only copy of the current lines and aggregate.
	Snapshot(sessionToken string) *CartSummary
}
