package storefront

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rowanhale/vitrine/internal/domain"
)

// ProductHandler serves the merged catalog.
type ProductHandler struct {
	catalogService domain.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalogService domain.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := domain.ListParams{
		Category: q.Get("category"),
		Source:   domain.ProviderSource(q.Get("source")),
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			params.Limit = limit
		}
	}
	if v := q.Get("skip"); v != "" {
		if skip, err := strconv.Atoi(v); err == nil {
			params.Skip = skip
		}
	}

	items, err := h.catalogService.List(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"products": items,
		"total":    len(items),
	})
}

// Detail handles GET /api/products/{id}
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, domain.Invalid("catalog.get", "product id must be an integer"))
		return
	}

	source := domain.ProviderSource(r.URL.Query().Get("source"))
	if !source.Valid() {
		respondError(w, r, domain.Invalid("catalog.get", "unknown catalog source"))
		return
	}

	item, err := h.catalogService.Get(r.Context(), source, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Search handles GET /api/products/search
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		respondError(w, r, domain.Invalid("catalog.search", "search term is required"))
		return
	}

	items, err := h.catalogService.Search(r.Context(), term)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"products": items,
		"total":    len(items),
	})
}

// Categories handles GET /api/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
