package domain

// Mutation payloads accepted by the remote inventory service.

// DeliveryRequest records a stock delivery against one batch/location.
type DeliveryRequest struct {
	ProductID        int64  `json:"ProductID"`
	LocationID       int64  `json:"LocationID"`
	Batch            string `json:"Batch"`
	Exp              string `json:"Exp"`
	QuantityReceived int    `json:"QuantityReceived"`
	InvoiceNo        string `json:"InvoiceNo"`
	SupplierID       int64  `json:"SupplierID,omitempty"`
}

// PhysicalAuditRequest records a physical stock count. The server corrects
// system stock to the counted quantity and writes a PHYSICAL_COUNT audit.
type PhysicalAuditRequest struct {
	ProductID       int64  `json:"ProductID"`
	LocationID      int64  `json:"LocationID"`
	Batch           string `json:"Batch"`
	Exp             string `json:"Exp"`
	CountedQuantity int    `json:"CountedQuantity"`
	Remarks         string `json:"Remarks"`
}

// StockMovementRequest transfers stock between two locations.
type StockMovementRequest struct {
	ProductID      int64  `json:"ProductID"`
	FromLocationID int64  `json:"FromLocationID"`
	ToLocationID   int64  `json:"ToLocationID"`
	Batch          string `json:"Batch"`
	Exp            string `json:"Exp"`
	Quantity       int    `json:"Quantity"`
	Remarks        string `json:"Remarks,omitempty"`
}

// NewProductRequest registers a product in the catalogue. Only ProductName
// and MRP are mandatory.
type NewProductRequest struct {
	HSNCode      string `json:"HSNCode,omitempty"`
	Manufacturer string `json:"Manufacturer,omitempty"`
	ProductName  string `json:"ProductName"`
	PackOf       string `json:"PackOf,omitempty"`
	MRP          string `json:"MRP"`
	UnitPrice    string `json:"UnitPrice,omitempty"`
	Size         string `json:"Size,omitempty"`
	Drug         string `json:"Drug,omitempty"`
}
