package usecase

import (
	"context"
	"time"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/application/query"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// ProductDataTTLs are the freshness windows for product-scoped reads.
type ProductDataTTLs struct {
	Stock time.Duration // stock and audits
	Sales time.Duration
}

// ProductDataUseCase serves the product-scoped reads (stock, audits, sales)
// and dispatches the stock mutations. On mutation success it invalidates
// every cache entry scoped to the affected product plus the search index, so
// the next read reflects the write. On failure nothing is invalidated.
type ProductDataUseCase struct {
	svc   ports.InventoryService
	cache *query.Cache
	ttls  ProductDataTTLs
}

// NewProductDataUseCase builds the use case.
func NewProductDataUseCase(svc ports.InventoryService, cache *query.Cache, ttls ProductDataTTLs) *ProductDataUseCase {
	return &ProductDataUseCase{svc: svc, cache: cache, ttls: ttls}
}

// Stock returns the per-location/batch snapshots for a product. Reads
// require a selected product: a non-positive id is inert.
func (uc *ProductDataUseCase) Stock(ctx context.Context, productID int64) ([]domain.StockInfo, error) {
	if productID <= 0 {
		return nil, nil
	}
	return query.Fetch(ctx, uc.cache, query.StockKey(productID), uc.ttls.Stock, func(ctx context.Context) ([]domain.StockInfo, error) {
		return uc.svc.GetProductStock(ctx, productID)
	})
}

// Audits returns the audit trail for a product.
func (uc *ProductDataUseCase) Audits(ctx context.Context, productID int64) ([]domain.Audit, error) {
	if productID <= 0 {
		return nil, nil
	}
	return query.Fetch(ctx, uc.cache, query.AuditsKey(productID), uc.ttls.Stock, func(ctx context.Context) ([]domain.Audit, error) {
		return uc.svc.GetProductAudits(ctx, productID)
	})
}

// Sales returns the monthly sales summary for a product.
func (uc *ProductDataUseCase) Sales(ctx context.Context, productID int64) ([]domain.MonthlySales, error) {
	if productID <= 0 {
		return nil, nil
	}
	return query.Fetch(ctx, uc.cache, query.SalesKey(productID), uc.ttls.Sales, func(ctx context.Context) ([]domain.MonthlySales, error) {
		return uc.svc.GetMonthlySales(ctx, productID)
	})
}

// RecordDelivery submits a delivery and invalidates the affected caches.
func (uc *ProductDataUseCase) RecordDelivery(ctx context.Context, req domain.DeliveryRequest) error {
	if err := uc.svc.SubmitDelivery(ctx, req); err != nil {
		return err
	}
	uc.invalidateProduct(req.ProductID)
	return nil
}

// RecordPhysicalAudit submits a physical count and invalidates the affected
// caches.
func (uc *ProductDataUseCase) RecordPhysicalAudit(ctx context.Context, req domain.PhysicalAuditRequest) error {
	if err := uc.svc.SubmitPhysicalAudit(ctx, req); err != nil {
		return err
	}
	uc.invalidateProduct(req.ProductID)
	return nil
}

// MoveStock submits a stock transfer and invalidates the affected caches.
func (uc *ProductDataUseCase) MoveStock(ctx context.Context, req domain.StockMovementRequest) error {
	if err := uc.svc.SubmitStockMovement(ctx, req); err != nil {
		return err
	}
	uc.invalidateProduct(req.ProductID)
	return nil
}

func (uc *ProductDataUseCase) invalidateProduct(productID int64) {
	uc.cache.InvalidatePrefix(query.ProductPrefix(productID))
	uc.cache.InvalidatePrefix(query.SearchPrefix)
}
