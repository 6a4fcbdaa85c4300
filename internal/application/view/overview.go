// Package view holds the pure projections behind the dashboard endpoints.
// Every function here is a function of its inputs only: no cache access, no
// upstream calls, no mutation.
package view

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaudit/dashboard/internal/domain"
)

const (
	expiryLayout    = "02 Jan 2006"
	timestampLayout = "02 Jan 2006, 15:04"
	shortLayout     = "Jan 2006"
)

// statusPresentation is the visual treatment of a stock status.
type statusPresentation struct {
	Label       string
	Badge       string
	Icon        string
	Color       string
	Description string
}

var statusConfig = map[domain.StockStatus]statusPresentation{
	domain.StockOut: {
		Label:       "OUT OF STOCK",
		Badge:       "OUT",
		Icon:        "x-circle",
		Color:       "status-mismatch",
		Description: "Product is out of stock",
	},
	domain.StockLow: {
		Label:       "LOW STOCK",
		Badge:       "LOW",
		Icon:        "alert-triangle",
		Color:       "status-low",
		Description: "Stock running low, consider reordering",
	},
	domain.StockOK: {
		Label:       "IN STOCK",
		Badge:       "OK",
		Icon:        "check-circle",
		Color:       "status-ok",
		Description: "Stock levels are healthy",
	},
}

// OverviewView is the product overview tab.
type OverviewView struct {
	ProductID         int64            `json:"product_id"`
	ProductName       string           `json:"product_name"`
	Drug              string           `json:"drug"`
	Batch             string           `json:"batch"`
	Expiry            string           `json:"expiry"`
	ExpiringSoon      bool             `json:"expiring_soon"`
	QtyInStock        int              `json:"qty_in_stock"`
	LocationName      string           `json:"location_name"`
	MRP               string           `json:"mrp"`
	StatusLabel       string           `json:"status_label"`
	StatusIcon        string           `json:"status_icon"`
	StatusColor       string           `json:"status_color"`
	StatusDescription string           `json:"status_description"`
	OtherBatches      []OtherBatchView `json:"other_batches"`
}

// OtherBatchView is one "Stock at Other Batches" row.
type OtherBatchView struct {
	Batch        string `json:"batch"`
	Expiry       string `json:"expiry"`
	QtyInStock   int    `json:"qty_in_stock"`
	LocationName string `json:"location_name"`
}

// Overview projects a product plus its stock snapshot into the overview tab.
// Stock rows for the selected batch are folded into the header; the rest
// become "other batches".
func Overview(product domain.Product, stock []domain.StockInfo, now time.Time) OverviewView {
	status := statusConfig[domain.ClassifyStock(product.QtyInStock)]

	other := make([]OtherBatchView, 0, len(stock))
	for _, s := range stock {
		if s.Batch == product.Batch {
			continue
		}
		other = append(other, OtherBatchView{
			Batch:        s.Batch,
			Expiry:       formatExpiry(s.Exp),
			QtyInStock:   s.QtyInStock,
			LocationName: s.LocationName,
		})
	}

	return OverviewView{
		ProductID:         product.ProductID,
		ProductName:       product.ProductName,
		Drug:              product.Drug,
		Batch:             product.Batch,
		Expiry:            formatExpiry(product.Exp),
		ExpiringSoon:      domain.ExpiringSoon(product.Exp, now),
		QtyInStock:        product.QtyInStock,
		LocationName:      product.LocationName,
		MRP:               formatMRP(product.MRP),
		StatusLabel:       status.Label,
		StatusIcon:        status.Icon,
		StatusColor:       status.Color,
		StatusDescription: status.Description,
		OtherBatches:      other,
	}
}

// formatExpiry renders an upstream date as "02 Jan 2006", or "N/A" when it
// does not parse.
func formatExpiry(exp string) string {
	t, err := domain.ParseExpiry(exp)
	if err != nil {
		return "N/A"
	}
	return t.Format(expiryLayout)
}

// formatShortExpiry renders the month-level form used in search rows.
func formatShortExpiry(exp string) string {
	t, err := domain.ParseExpiry(exp)
	if err != nil {
		return "N/A"
	}
	return t.Format(shortLayout)
}

// formatMRP normalizes the upstream price string to two decimal places.
// Unparseable prices pass through unchanged.
func formatMRP(mrp string) string {
	d, err := decimal.NewFromString(mrp)
	if err != nil {
		return mrp
	}
	return d.StringFixed(2)
}
