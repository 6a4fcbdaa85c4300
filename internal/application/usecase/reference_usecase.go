package usecase

import (
	"context"
	"time"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/application/query"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// ReferenceDataUseCase serves the slow-moving lookup entities (suppliers,
// locations) with a long freshness window.
type ReferenceDataUseCase struct {
	svc   ports.InventoryService
	cache *query.Cache
	ttl   time.Duration
}

// NewReferenceDataUseCase builds the use case.
func NewReferenceDataUseCase(svc ports.InventoryService, cache *query.Cache, ttl time.Duration) *ReferenceDataUseCase {
	return &ReferenceDataUseCase{svc: svc, cache: cache, ttl: ttl}
}

// Suppliers returns the supplier reference list.
func (uc *ReferenceDataUseCase) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	return query.Fetch(ctx, uc.cache, query.SuppliersKey, uc.ttl, func(ctx context.Context) ([]domain.Supplier, error) {
		return uc.svc.GetSuppliers(ctx)
	})
}

// Locations returns the location reference list.
func (uc *ReferenceDataUseCase) Locations(ctx context.Context) ([]domain.Location, error) {
	return query.Fetch(ctx, uc.cache, query.LocationsKey, uc.ttl, func(ctx context.Context) ([]domain.Location, error) {
		return uc.svc.GetLocations(ctx)
	})
}
