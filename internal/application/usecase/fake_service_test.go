package usecase_test

import (
	"context"
	"sync"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/domain"
)

// fakeInventory is an in-memory InventoryService double with per-operation
// call counters and overridable behavior.
type fakeInventory struct {
	mu sync.Mutex

	searchCalls int
	stockCalls  int
	auditCalls  int
	salesCalls  int

	searchFn func(ctx context.Context, q string) ([]domain.Product, error)
	stockFn  func(ctx context.Context, id int64) ([]domain.StockInfo, error)

	deliveryErr error
	auditErr    error
	moveErr     error

	createFn func(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error)

	submittedDeliveries []domain.DeliveryRequest
	submittedAudits     []domain.PhysicalAuditRequest
	submittedMoves      []domain.StockMovementRequest
}

var _ ports.InventoryService = (*fakeInventory)(nil)

func (f *fakeInventory) SearchProducts(ctx context.Context, q string) ([]domain.Product, error) {
	f.mu.Lock()
	f.searchCalls++
	fn := f.searchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, q)
	}
	return nil, nil
}

func (f *fakeInventory) GetProductStock(ctx context.Context, id int64) ([]domain.StockInfo, error) {
	f.mu.Lock()
	f.stockCalls++
	fn := f.stockFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil, nil
}

func (f *fakeInventory) GetProductAudits(ctx context.Context, id int64) ([]domain.Audit, error) {
	f.mu.Lock()
	f.auditCalls++
	f.mu.Unlock()
	return nil, nil
}

func (f *fakeInventory) GetMonthlySales(ctx context.Context, id int64) ([]domain.MonthlySales, error) {
	f.mu.Lock()
	f.salesCalls++
	f.mu.Unlock()
	return nil, nil
}

func (f *fakeInventory) GetSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return []domain.Supplier{{SupplierID: 1, SupplierName: "MedLine"}}, nil
}

func (f *fakeInventory) GetLocations(ctx context.Context) ([]domain.Location, error) {
	return []domain.Location{
		{LocationID: 1, LocationName: "Main Store"},
		{LocationID: 2, LocationName: "Cold Room"},
	}, nil
}

func (f *fakeInventory) SubmitDelivery(ctx context.Context, req domain.DeliveryRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deliveryErr != nil {
		return f.deliveryErr
	}
	f.submittedDeliveries = append(f.submittedDeliveries, req)
	return nil
}

func (f *fakeInventory) SubmitPhysicalAudit(ctx context.Context, req domain.PhysicalAuditRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.auditErr != nil {
		return f.auditErr
	}
	f.submittedAudits = append(f.submittedAudits, req)
	return nil
}

func (f *fakeInventory) SubmitStockMovement(ctx context.Context, req domain.StockMovementRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.submittedMoves = append(f.submittedMoves, req)
	return nil
}

func (f *fakeInventory) CreateProduct(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return &domain.Product{ProductID: 99, ProductName: req.ProductName}, nil
}

func (f *fakeInventory) counts() (search, stock, audits, sales int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.stockCalls, f.auditCalls, f.salesCalls
}
