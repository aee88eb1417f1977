package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rowanhale/vitrine/internal/domain"
)

// Service merges the two providers behind domain.CatalogService. Listing
// and search responses are cached in a TTL'd LRU; single-product lookups
// go through the same cache keyed per ID.
type Service struct {
	dummy  Provider
	fake   Provider
	cache  *expirable.LRU[string, []domain.CatalogItem]
	logger *slog.Logger
}

// Config sizes the response cache.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// NewService composes the merged catalog from the two provider clients.
func NewService(dummy, fake Provider, cfg Config, logger *slog.Logger) *Service {
	size := cfg.CacheSize
	if size <= 0 {
		size = 256
	}

	return &Service{
		dummy:  dummy,
		fake:   fake,
		cache:  expirable.NewLRU[string, []domain.CatalogItem](size, nil, cfg.CacheTTL),
		logger: logger,
	}
}

// List returns products from one or both providers. With no source filter
// the two listings are concatenated, DummyJSON first.
func (s *Service) List(ctx context.Context, params domain.ListParams) ([]domain.CatalogItem, error) {
	switch params.Source {
	case domain.SourceDummyJSON:
		return s.cachedList(ctx, s.dummy, params)
	case domain.SourceFakeStore:
		return s.cachedList(ctx, s.fake, params)
	case "":
	default:
		return nil, domain.Errorf(domain.EINVALID, "catalog.list", "unknown source: %s", params.Source)
	}

	dummyItems, dummyErr := s.cachedList(ctx, s.dummy, params)
	fakeItems, fakeErr := s.cachedList(ctx, s.fake, params)
	return s.merge(dummyItems, dummyErr, fakeItems, fakeErr, "catalog.list")
}

// Get returns a single product from the given provider.
func (s *Service) Get(ctx context.Context, source domain.ProviderSource, id int64) (*domain.CatalogItem, error) {
	provider, err := s.provider(source)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:get:%d", source, id)
	if cached, ok := s.cache.Get(key); ok && len(cached) == 1 {
		item := cached[0]
		return &item, nil
	}

	item, err := provider.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, []domain.CatalogItem{*item})
	return item, nil
}

// Search merges DummyJSON's remote search with FakeStore's local substring
// filter. A failed provider degrades the merge instead of failing it; only
// when both providers fail does the search error.
func (s *Service) Search(ctx context.Context, term string) ([]domain.CatalogItem, error) {
	dummyItems, dummyErr := s.cachedSearch(ctx, s.dummy, term)
	fakeItems, fakeErr := s.cachedSearch(ctx, s.fake, term)
	return s.merge(dummyItems, dummyErr, fakeItems, fakeErr, "catalog.search")
}

// Categories returns the deduplicated union of both providers' categories,
// DummyJSON's first. Same degradation contract as Search.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	dummyCats, dummyErr := s.dummy.Categories(ctx)
	fakeCats, fakeErr := s.fake.Categories(ctx)

	if dummyErr != nil && fakeErr != nil {
		return nil, domain.Unavailable(dummyErr, "catalog.categories", "Product catalog is unavailable")
	}
	if dummyErr != nil {
		s.logDegraded("catalog.categories", s.dummy.Source(), dummyErr)
	}
	if fakeErr != nil {
		s.logDegraded("catalog.categories", s.fake.Source(), fakeErr)
	}

	seen := make(map[string]bool)
	union := make([]string, 0, len(dummyCats)+len(fakeCats))
	for _, cat := range append(dummyCats, fakeCats...) {
		if !seen[cat] {
			seen[cat] = true
			union = append(union, cat)
		}
	}
	return union, nil
}

func (s *Service) provider(source domain.ProviderSource) (Provider, error) {
	switch source {
	case domain.SourceDummyJSON:
		return s.dummy, nil
	case domain.SourceFakeStore:
		return s.fake, nil
	default:
		return nil, domain.Errorf(domain.EINVALID, "catalog.get", "unknown source: %s", source)
	}
}

func (s *Service) cachedList(ctx context.Context, p Provider, params domain.ListParams) ([]domain.CatalogItem, error) {
	key := fmt.Sprintf("%s:list:%d:%d:%s", p.Source(), params.Limit, params.Skip, params.Category)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	items, err := p.List(ctx, params.Limit, params.Skip, params.Category)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, items)
	return items, nil
}

func (s *Service) cachedSearch(ctx context.Context, p Provider, term string) ([]domain.CatalogItem, error) {
	key := fmt.Sprintf("%s:search:%s", p.Source(), term)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	items, err := p.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, items)
	return items, nil
}

// merge concatenates the two result sets, tolerating one failed provider.
func (s *Service) merge(dummyItems []domain.CatalogItem, dummyErr error, fakeItems []domain.CatalogItem, fakeErr error, op string) ([]domain.CatalogItem, error) {
	if dummyErr != nil && fakeErr != nil {
		return nil, domain.Unavailable(dummyErr, op, "Product catalog is unavailable")
	}
	if dummyErr != nil {
		s.logDegraded(op, s.dummy.Source(), dummyErr)
	}
	if fakeErr != nil {
		s.logDegraded(op, s.fake.Source(), fakeErr)
	}

	merged := make([]domain.CatalogItem, 0, len(dummyItems)+len(fakeItems))
	merged = append(merged, dummyItems...)
	merged = append(merged, fakeItems...)
	return merged, nil
}

func (s *Service) logDegraded(op string, source domain.ProviderSource, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("catalog provider degraded",
		slog.String("op", op),
		slog.String("source", string(source)),
		slog.String("error", err.Error()),
	)
}
