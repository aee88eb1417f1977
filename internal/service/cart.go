package service

import (
	"sync"

	"github.com/rowanhale/vitrine/internal/domain"
)

// cartService implements domain.CartService with per-session in-memory
// carts. Carts are created lazily; an unknown session token behaves as an
// empty cart. Mutations serialize through one mutex, which is sufficient
// because transitions are cheap and the aggregate must be refolded under
// the same critical section as the line mutation anyway.
type cartService struct {
	mu    sync.Mutex
	carts map[string][]domain.LineItem
}

// NewCartService creates the cart store for the process.
func NewCartService() domain.CartService {
	return &cartService{
		carts: make(map[string][]domain.LineItem),
	}
}

// AddItem merges the candidate into an existing line with the same
// composite key or appends a new line with quantity 1.
func (s *cartService) AddItem(sessionToken string, candidate domain.NewLineItem) *domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionToken]
	key := candidate.Key()

	merged := false
	for i := range items {
		if items[i].LineKey == key {
			items[i].Quantity++
			merged = true
			break
		}
	}

	if !merged {
		items = append(items, domain.LineItem{
			LineKey:   key,
			Title:     candidate.Title,
			UnitPrice: candidate.UnitPrice,
			ImageURL:  candidate.ImageURL,
			Quantity:  1,
		})
	}

	s.carts[sessionToken] = items
	return summarize(items)
}

// RemoveItem deletes the matching line. No-op if absent.
func (s *cartService) RemoveItem(sessionToken string, key domain.LineKey) *domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := removeLine(s.carts[sessionToken], key)
	s.carts[sessionToken] = items
	return summarize(items)
}

// SetQuantity overwrites the line's quantity. Quantity <= 0 removes the
// line; an absent key is a no-op.
func (s *cartService) SetQuantity(sessionToken string, key domain.LineKey, quantity int) *domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionToken]

	if quantity <= 0 {
		items = removeLine(items, key)
	} else {
		for i := range items {
			if items[i].LineKey == key {
				items[i].Quantity = quantity
				break
			}
		}
	}

	s.carts[sessionToken] = items
	return summarize(items)
}

// Clear empties the cart. Idempotent.
func (s *cartService) Clear(sessionToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionToken)
}

// Snapshot returns a read-only copy of the current lines and aggregate.
func (s *cartService) Snapshot(sessionToken string) *domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return summarize(s.carts[sessionToken])
}

// summarize copies the lines and refolds the aggregate from scratch.
// The aggregate is never updated incrementally; recomputing the full fold
// keeps it impossible to desync from the line items.
func summarize(items []domain.LineItem) *domain.CartSummary {
	copied := make([]domain.LineItem, len(items))
	copy(copied, items)

	var agg domain.CartAggregate
	for _, item := range copied {
		agg.ItemCount += item.Quantity
		agg.Subtotal += item.UnitPrice * float64(item.Quantity)
	}

	return &domain.CartSummary{
		Items:     copied,
		Aggregate: agg,
	}
}

func removeLine(items []domain.LineItem, key domain.LineKey) []domain.LineItem {
	kept := items[:0]
	for _, item := range items {
		if item.LineKey != key {
			kept = append(kept, item)
		}
	}
	return kept
}
