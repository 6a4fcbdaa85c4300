package ports

import (
	"context"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// InventoryService is the outbound port to the remote inventory API. Any
// adapter (HTTP client, test fake) must implement this contract; the
// application layer only knows the port, never the concrete transport.
// Calls are single-shot: no retries, no backoff — a failed call surfaces
// immediately to its caller.
type InventoryService interface {
	// Reads.
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetProductStock(ctx context.Context, productID int64) ([]domain.StockInfo, error)
	GetProductAudits(ctx context.Context, productID int64) ([]domain.Audit, error)
	GetMonthlySales(ctx context.Context, productID int64) ([]domain.MonthlySales, error)
	GetSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetLocations(ctx context.Context) ([]domain.Location, error)

	// Mutations. CreateProduct returns the created product on success.
	SubmitDelivery(ctx context.Context, req domain.DeliveryRequest) error
	SubmitPhysicalAudit(ctx context.Context, req domain.PhysicalAuditRequest) error
	SubmitStockMovement(ctx context.Context, req domain.StockMovementRequest) error
	CreateProduct(ctx context.Context, req domain.NewProductRequest) (*domain.Product, error)
}
