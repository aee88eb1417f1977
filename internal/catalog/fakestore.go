package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rowanhale/vitrine/internal/domain"
)

// FakeStore has no remote search and no paging; search is a client-side
// substring filter over the full listing, and these defaults fill the
// fields its schema lacks. The markup derives the struck-through original
// price, which the schema also lacks.
const (
	fakeStoreDefaultDiscount = 15
	fakeStoreDefaultRating   = 4
	fakeStoreMarkup          = 1.15
)

// FakeStoreProvider is the client for fakestoreapi.com.
type FakeStoreProvider struct {
	client *client
}

// NewFakeStoreProvider creates the FakeStore catalog client.
func NewFakeStoreProvider(baseURL string, timeout time.Duration) *FakeStoreProvider {
	return &FakeStoreProvider{
		client: newClient("fakestore", baseURL, timeout),
	}
}

// fakeStoreProduct is the provider's raw product schema.
type fakeStoreProduct struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// Source implements Provider.
func (p *FakeStoreProvider) Source() domain.ProviderSource {
	return domain.SourceFakeStore
}

// List returns the full listing, optionally scoped to a category. The
// upstream has no paging; limit and skip are applied locally.
func (p *FakeStoreProvider) List(ctx context.Context, limit, skip int, category string) ([]domain.CatalogItem, error) {
	path := "/products"
	if category != "" {
		path = "/products/category/" + url.PathEscape(category)
	}

	var raws []fakeStoreProduct
	if err := p.client.getJSON(ctx, path, &raws); err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, raw.normalize())
	}

	if skip > 0 {
		if skip >= len(items) {
			return []domain.CatalogItem{}, nil
		}
		items = items[skip:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// Get returns a single product by ID. The upstream answers unknown IDs
// with an empty 200 body, so a zero-valued record is treated as missing.
func (p *FakeStoreProvider) Get(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	var raw fakeStoreProduct
	if err := p.client.getJSON(ctx, fmt.Sprintf("/products/%d", id), &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.NotFound("catalog.get", "product", fmt.Sprintf("%d", id))
		}
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.NotFound("catalog.get", "product", fmt.Sprintf("%d", id))
	}

	item := raw.normalize()
	return &item, nil
}

// Search filters the full listing by a case-insensitive title substring.
func (p *FakeStoreProvider) Search(ctx context.Context, term string) ([]domain.CatalogItem, error) {
	items, err := p.List(ctx, 0, 0, "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := items[:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Categories returns the provider's category names.
func (p *FakeStoreProvider) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := p.client.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// normalize converts the raw schema into the canonical item shape, filling
// the fields FakeStore does not carry.
func (raw fakeStoreProduct) normalize() domain.CatalogItem {
	rating := raw.Rating.Rate
	if rating == 0 {
		rating = fakeStoreDefaultRating
	}

	return domain.CatalogItem{
		ID:              raw.ID,
		Title:           raw.Title,
		Description:     raw.Description,
		Price:           raw.Price,
		OriginalPrice:   raw.Price * fakeStoreMarkup,
		DiscountPercent: fakeStoreDefaultDiscount,
		Rating:          rating,
		RatingCount:     raw.Rating.Count,
		Category:        raw.Category,
		ImageURL:        raw.Image,
		Source:          domain.SourceFakeStore,
	}
}
