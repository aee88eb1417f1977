// Package routes wires the storefront API onto the router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rowanhale/vitrine/internal/handler/storefront"
	"github.com/rowanhale/vitrine/internal/middleware"
)

// Deps contains the handlers the storefront routes dispatch to.
type Deps struct {
	Products *storefront.ProductHandler
	Cart     *storefront.CartHandler
	Checkout *storefront.CheckoutHandler
	Auth     *storefront.AuthHandler
	Metrics  *middleware.Metrics
}

// New builds the router with the global middleware chain and all
// storefront routes registered.
func New(deps Deps, mw ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	for _, m := range mw {
		r.Use(m)
	}

	r.Route("/api", func(r chi.Router) {
		// Product browsing
		r.Get("/products", deps.Products.List)
		r.Get("/products/search", deps.Products.Search)
		r.Get("/products/{id}", deps.Products.Detail)
		r.Get("/categories", deps.Products.Categories)

		// Shopping cart
		r.Get("/cart", deps.Cart.View)
		r.Get("/cart/summary", deps.Cart.Summary)
		r.Post("/cart/items", deps.Cart.Add)
		r.Patch("/cart/items", deps.Cart.Update)
		r.Delete("/cart/items", deps.Cart.Remove)
		r.Delete("/cart", deps.Cart.Clear)

		// Checkout flow
		r.Get("/checkout", deps.Checkout.State)
		r.Post("/checkout/shipping", deps.Checkout.SubmitShipping)
		r.Post("/checkout/payment", deps.Checkout.SubmitPayment)
		r.Post("/checkout/order", deps.Checkout.PlaceOrder)

		// Demo authentication
		r.Post("/auth/login", deps.Auth.Login)
		r.Post("/auth/signup", deps.Auth.Signup)
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
