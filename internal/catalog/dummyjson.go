package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rowanhale/vitrine/internal/domain"
)

// dummyJSONMarkup derives the struck-through original price from the sale
// price; DummyJSON carries no pre-discount price of its own.
const dummyJSONMarkup = 1.25

// DummyJSONProvider is the client for dummyjson.com. It supports paged
// listing, category filtering and remote search.
type DummyJSONProvider struct {
	client *client
}

// NewDummyJSONProvider creates the DummyJSON catalog client.
func NewDummyJSONProvider(baseURL string, timeout time.Duration) *DummyJSONProvider {
	return &DummyJSONProvider{
		client: newClient("dummyjson", baseURL, timeout),
	}
}

// dummyJSONProduct is the provider's raw product schema.
type dummyJSONProduct struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// dummyJSONPage is the provider's paged list envelope.
type dummyJSONPage struct {
	Products []dummyJSONProduct `json:"products"`
	Total    int                `json:"total"`
	Skip     int                `json:"skip"`
	Limit    int                `json:"limit"`
}

// Source implements Provider.
func (p *DummyJSONProvider) Source() domain.ProviderSource {
	return domain.SourceDummyJSON
}

// List returns a product page, optionally scoped to a category.
func (p *DummyJSONProvider) List(ctx context.Context, limit, skip int, category string) ([]domain.CatalogItem, error) {
	if limit <= 0 {
		limit = 20
	}

	path := "/products"
	if category != "" {
		path = "/products/category/" + url.PathEscape(category)
	}
	path += fmt.Sprintf("?limit=%d&skip=%d", limit, skip)

	var page dummyJSONPage
	if err := p.client.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(page.Products))
	for _, raw := range page.Products {
		items = append(items, raw.normalize())
	}
	return items, nil
}

// Get returns a single product by ID.
func (p *DummyJSONProvider) Get(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	var raw dummyJSONProduct
	if err := p.client.getJSON(ctx, fmt.Sprintf("/products/%d", id), &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.NotFound("catalog.get", "product", fmt.Sprintf("%d", id))
		}
		return nil, err
	}

	item := raw.normalize()
	return &item, nil
}

// Search runs the provider's remote full-text search.
func (p *DummyJSONProvider) Search(ctx context.Context, term string) ([]domain.CatalogItem, error) {
	var page dummyJSONPage
	path := "/products/search?q=" + url.QueryEscape(term)
	if err := p.client.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(page.Products))
	for _, raw := range page.Products {
		items = append(items, raw.normalize())
	}
	return items, nil
}

// Categories returns the provider's category slugs.
func (p *DummyJSONProvider) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := p.client.getJSON(ctx, "/products/category-list", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// normalize converts the raw schema into the canonical item shape.
func (raw dummyJSONProduct) normalize() domain.CatalogItem {
	return domain.CatalogItem{
		ID:              raw.ID,
		Title:           raw.Title,
		Description:     raw.Description,
		Price:           raw.Price,
		OriginalPrice:   raw.Price * dummyJSONMarkup,
		DiscountPercent: raw.DiscountPercentage,
		Rating:          raw.Rating,
		Category:        raw.Category,
		Brand:           raw.Brand,
		ImageURL:        raw.Thumbnail,
		Source:          domain.SourceDummyJSON,
	}
}
