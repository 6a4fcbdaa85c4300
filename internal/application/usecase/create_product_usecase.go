package usecase

import (
	"context"
	"errors"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/application/query"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// duplicateProductMessage is the user-facing rewrite for creation conflicts.
const duplicateProductMessage = "A product with this name already exists"

// CreateProductUseCase registers new products and keeps the search index
// cache consistent afterwards.
type CreateProductUseCase struct {
	svc   ports.InventoryService
	cache *query.Cache
}

// NewCreateProductUseCase builds the use case.
func NewCreateProductUseCase(svc ports.InventoryService, cache *query.Cache) *CreateProductUseCase {
	return &CreateProductUseCase{svc: svc, cache: cache}
}

// Create submits the product. On success the search cache is invalidated so
// the new product shows up in subsequent searches. Duplicate conflicts are
// rewritten to a user-facing message; every other error passes through raw.
func (uc *CreateProductUseCase) Create(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error) {
	prod, err := uc.svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errors.New(duplicateProductMessage)
		}
		return nil, err
	}
	uc.cache.InvalidatePrefix(query.SearchPrefix)
	return prod, nil
}
