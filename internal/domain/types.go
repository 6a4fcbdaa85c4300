package domain

import "github.com/shopspring/decimal"

// Wire types of the remote inventory service. Field names follow the upstream
// JSON contract exactly; none of these entities has a lifecycle in this
// service beyond the in-memory query cache.

// Product is one stockable unit as returned by product search. The same
// product can appear under several batch/location records: the tuple
// (ProductID, Batch, LocationID) identifies a single unit.
type Product struct {
	ProductID    int64  `json:"ProductID"`
	ProductName  string `json:"ProductName"`
	Drug         string `json:"Drug"`
	MRP          string `json:"MRP"`
	LocationID   int64  `json:"LocationID"`
	LocationName string `json:"LocationName"`
	Batch        string `json:"Batch"`
	Exp          string `json:"Exp"`
	QtyInStock   int    `json:"QtyInStock"`
}

// StockInfo is a per-location/batch quantity snapshot for a product.
type StockInfo struct {
	LocationID   int64  `json:"LocationID"`
	LocationName string `json:"LocationName"`
	Batch        string `json:"Batch"`
	Exp          string `json:"Exp"`
	QtyInStock   int    `json:"QtyInStock"`
}

// AuditType classifies a stock-affecting event.
type AuditType string

const (
	AuditDelivery      AuditType = "DELIVERY"
	AuditSale          AuditType = "SALE"
	AuditPhysicalCount AuditType = "PHYSICAL_COUNT"
	AuditAdjustment    AuditType = "ADJUSTMENT"
)

// Audit is an immutable append-only record of a stock-affecting event. This
// service never mutates or deletes audits.
type Audit struct {
	StockAuditID      int64     `json:"StockAuditID"`
	ProductID         int64     `json:"ProductID"`
	ProductName       string    `json:"ProductName"`
	LocationID        int64     `json:"LocationID"`
	LocationName      string    `json:"LocationName"`
	Batch             string    `json:"Batch"`
	Exp               string    `json:"Exp"`
	AuditType         AuditType `json:"AuditType"`
	QtyChange         int       `json:"QtyChange"`
	StockBefore       int       `json:"StockBefore"`
	StockAfter        int       `json:"StockAfter"`
	ReferenceType     *string   `json:"ReferenceType"`
	ReferenceNo       *string   `json:"ReferenceNo"`
	Remarks           *string   `json:"Remarks"`
	CreatedByUserID   int64     `json:"CreatedByUserID"`
	CreatedByUserName string    `json:"CreatedByUserName"`
	CreatedAt         string    `json:"CreatedAt"`
}

// Supplier reference entity, read-only from this service.
type Supplier struct {
	SupplierID   int64  `json:"SupplierID"`
	SupplierName string `json:"SupplierName"`
}

// Location reference entity, read-only from this service.
type Location struct {
	LocationID   int64  `json:"LocationID"`
	LocationName string `json:"LocationName"`
}

// MonthlySales is one row of the per-product sales summary.
type MonthlySales struct {
	Month   string          `json:"month"`
	QtySold int             `json:"qtySold"`
	Value   decimal.Decimal `json:"value"`
}
