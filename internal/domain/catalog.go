package domain

import "context"

// ProviderSource identifies which external catalog a product came from.
// It is part of a line item's identity and is otherwise opaque to the
// cart and checkout core.
type ProviderSource string

const (
	SourceDummyJSON ProviderSource = "dummyjson"
	SourceFakeStore ProviderSource = "fakestore"
)

// Valid reports whether s is one of the known catalog sources.
func (s ProviderSource) Valid() bool {
	return s == SourceDummyJSON || s == SourceFakeStore
}

// CatalogItem is the canonical product shape. Both providers are normalized
// into it at the catalog boundary before anything reaches the cart.
type CatalogItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	// OriginalPrice is the pre-discount display price shown struck through
	// next to the discount badge. Neither provider carries one, so each
	// derives it from the sale price with its own markup factor.
	OriginalPrice   float64        `json:"originalPrice"`
	DiscountPercent float64        `json:"discountPercent"`
	Rating          float64        `json:"rating"`
	RatingCount     int            `json:"ratingCount,omitempty"`
	Category        string         `json:"category"`
	Brand           string         `json:"brand,omitempty"`
	ImageURL        string         `json:"imageUrl"`
	Source          ProviderSource `json:"source"`
}

// ListParams narrows a catalog listing.
type ListParams struct {
	Limit    int
	Skip     int
	Category string
	// Source restricts the listing to one provider. Empty means both.
	Source ProviderSource
}

// CatalogService provides read access to the merged product catalogs.
type CatalogService interface {
	// List returns products from one or both providers.
	List(ctx context.Context, params ListParams) ([]CatalogItem, error)

	// Get returns a single product from the given provider.
	Get(ctx context.Context, source ProviderSource, id int64) (*CatalogItem, error)

	// Search merges the remote DummyJSON search with a substring filter
	// over the FakeStore listing. A failed provider degrades the merge
	// rather than failing it.
	Search(ctx context.Context, term string) ([]CatalogItem, error)

	// Categories returns the union of both providers' category lists.
	Categories(ctx context.Context) ([]string, error)
}
