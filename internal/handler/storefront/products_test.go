package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rowanhale/vitrine/internal/domain"
)

// mockCatalogService implements domain.CatalogService for testing
type mockCatalogService struct {
	listFunc       func(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error)
	getFunc        func(ctx context.Context, source domain.ProviderSource, id int64) (*domain.CatalogItem, error)
	searchFunc     func(ctx context.Context, term string) ([]domain.CatalogItem, error)
	categoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockCatalogService) List(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockCatalogService) Get(ctx context.Context, source domain.ProviderSource, id int64) (*domain.CatalogItem, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, source, id)
	}
	return nil, domain.NotFound("catalog.get", "product", "0")
}

func (m *mockCatalogService) Search(ctx context.Context, term string) ([]domain.CatalogItem, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term)
	}
	return nil, nil
}

func (m *mockCatalogService) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return nil, nil
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorResponse(t *testing.T, body string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode error response %q: %v", body, err)
	}
	return resp
}

func TestProductHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		listFunc       func(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "success passes query params through",
			url:  "/api/products?limit=5&skip=10&category=beauty&source=dummyjson",
			listFunc: func(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error) {
				if params.Limit != 5 || params.Skip != 10 || params.Category != "beauty" || params.Source != domain.SourceDummyJSON {
					t.Errorf("unexpected params: %+v", params)
				}
				return []domain.CatalogItem{{ID: 1, Title: "Essence Mascara", Source: domain.SourceDummyJSON}}, nil
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				if !strings.Contains(body, "Essence Mascara") {
					t.Errorf("expected product title in body, got %s", body)
				}
				if !strings.Contains(body, `"total":1`) {
					t.Errorf("expected total in body, got %s", body)
				}
			},
		},
		{
			name: "unknown source is a bad request",
			url:  "/api/products?source=etsy",
			listFunc: func(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error) {
				return nil, domain.Errorf(domain.EINVALID, "catalog.list", "unknown source: %s", params.Source)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "both providers down",
			url:  "/api/products",
			listFunc: func(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error) {
				return nil, domain.Unavailable(nil, "catalog.list", "Product catalog is unavailable")
			},
			expectedStatus: http.StatusServiceUnavailable,
			checkBody: func(t *testing.T, body string) {
				resp := decodeErrorResponse(t, body)
				if resp.Error != "Product catalog is unavailable" {
					t.Errorf("unexpected error message %q", resp.Error)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProductHandler(&mockCatalogService{listFunc: tt.listFunc})

			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			h.List(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.checkBody != nil {
				tt.checkBody(t, w.Body.String())
			}
		})
	}
}

func TestProductHandler_Detail(t *testing.T) {
	catalog := &mockCatalogService{
		getFunc: func(ctx context.Context, source domain.ProviderSource, id int64) (*domain.CatalogItem, error) {
			if id == 7 && source == domain.SourceFakeStore {
				return &domain.CatalogItem{ID: 7, Title: "Fjallraven Backpack", Source: source}, nil
			}
			return nil, domain.NotFound("catalog.get", "product", "9999")
		},
	}
	h := NewProductHandler(catalog)

	t.Run("success", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/7?source=fakestore", nil), "id", "7")
		w := httptest.NewRecorder()
		h.Detail(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Fjallraven Backpack") {
			t.Errorf("expected product in body, got %s", w.Body.String())
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/9999?source=fakestore", nil), "id", "9999")
		w := httptest.NewRecorder()
		h.Detail(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/abc?source=fakestore", nil), "id", "abc")
		w := httptest.NewRecorder()
		h.Detail(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/7", nil), "id", "7")
		w := httptest.NewRecorder()
		h.Detail(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestProductHandler_Search(t *testing.T) {
	h := NewProductHandler(&mockCatalogService{
		searchFunc: func(ctx context.Context, term string) ([]domain.CatalogItem, error) {
			if term != "backpack" {
				t.Errorf("expected term backpack, got %q", term)
			}
			return []domain.CatalogItem{{ID: 1, Title: "Fjallraven Backpack"}}, nil
		},
	})

	t.Run("success", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products/search?q=backpack", nil)
		w := httptest.NewRecorder()
		h.Search(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing term", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products/search", nil)
		w := httptest.NewRecorder()
		h.Search(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestProductHandler_Categories(t *testing.T) {
	h := NewProductHandler(&mockCatalogService{
		categoriesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"beauty", "jewelery"}, nil
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	h.Categories(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "jewelery") {
		t.Errorf("expected categories in body, got %s", w.Body.String())
	}
}
