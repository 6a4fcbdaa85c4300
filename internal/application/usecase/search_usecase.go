package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/application/query"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// minQueryLength: shorter queries never reach the network and yield an empty
// result set.
const minQueryLength = 2

// SearchUseCase serves product search through the query cache. Rapid
// successive queries coalesce: every call is tagged with a generation and
// only the most recent generation's response may become the "current"
// result set, so a slow response for superseded input cannot overwrite the
// visible state.
type SearchUseCase struct {
	svc   ports.InventoryService
	cache *query.Cache
	ttl   time.Duration

	mu           sync.Mutex
	generation   uint64
	currentQuery string
	current      []domain.Product
}

// NewSearchUseCase builds the use case. ttl is the search freshness window.
func NewSearchUseCase(svc ports.InventoryService, cache *query.Cache, ttl time.Duration) *SearchUseCase {
	return &SearchUseCase{svc: svc, cache: cache, ttl: ttl}
}

// Search resolves a free-text query over product name / drug composition.
// Queries shorter than two characters are inert: no network read, empty
// result. Results are cached per query string.
func (uc *SearchUseCase) Search(ctx context.Context, q string) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minQueryLength {
		return nil, nil
	}

	uc.mu.Lock()
	uc.generation++
	gen := uc.generation
	uc.mu.Unlock()

	products, err := query.Fetch(ctx, uc.cache, query.SearchKey(q), uc.ttl, func(ctx context.Context) ([]domain.Product, error) {
		return uc.svc.SearchProducts(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	if gen == uc.generation {
		uc.currentQuery = q
		uc.current = products
	}
	uc.mu.Unlock()

	return products, nil
}

// Current returns the query and result set of the newest settled search.
// Responses for superseded generations never appear here.
func (uc *SearchUseCase) Current() (string, []domain.Product) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.currentQuery, uc.current
}
