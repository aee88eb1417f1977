// Package catalog provides read access to the two public demo product
// catalogs. Each provider's responses are normalized into domain.CatalogItem
// at this boundary; nothing downstream branches on provider identity except
// to carry the source tag.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/rowanhale/vitrine/internal/domain"
)

// errNotFound marks a 404 from an upstream. It must not trip the breaker:
// asking for a product that does not exist is not a provider failure.
var errNotFound = errors.New("catalog: product not found")

// Provider is the per-catalog client surface the merged service composes.
type Provider interface {
	Source() domain.ProviderSource
	List(ctx context.Context, limit, skip int, category string) ([]domain.CatalogItem, error)
	Get(ctx context.Context, id int64) (*domain.CatalogItem, error)
	Search(ctx context.Context, term string) ([]domain.CatalogItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// client wraps one upstream base URL with a circuit breaker. There is no
// retry policy: a fetch either succeeds, fails, or is short-circuited by
// an open breaker after repeated failures.
type client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newClient(name, baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNotFound)
			},
		}),
	}
}

// getJSON fetches baseURL+path through the breaker and decodes the body
// into out.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, errNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return err
		}
		return domain.Unavailable(err, "catalog.fetch", "Product catalog is unavailable")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domain.Internal(err, "catalog.fetch", "failed to decode catalog response")
	}
	return nil
}
