package view_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaudit/dashboard/internal/application/view"
	"github.com/pharmaudit/dashboard/internal/domain"
)

var now = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func paracetamol(qty int) domain.Product {
	return domain.Product{
		ProductID:    7,
		ProductName:  "Paracetamol 500mg",
		Drug:         "Acetaminophen",
		MRP:          "32.1",
		LocationID:   2,
		LocationName: "Main Store",
		Batch:        "B42",
		Exp:          "2026-05-01T00:00:00Z",
		QtyInStock:   qty,
	}
}

// ─────────────────────────────────────────────
// Overview
// ─────────────────────────────────────────────

func TestOverview_StatusLabels(t *testing.T) {
	cases := []struct {
		qty         int
		label       string
		description string
	}{
		{0, "OUT OF STOCK", "Product is out of stock"},
		{-3, "OUT OF STOCK", "Product is out of stock"},
		{49, "LOW STOCK", "Stock running low, consider reordering"},
		{50, "IN STOCK", "Stock levels are healthy"},
		{120, "IN STOCK", "Stock levels are healthy"},
	}
	for _, tc := range cases {
		v := view.Overview(paracetamol(tc.qty), nil, now)
		assert.Equal(t, tc.label, v.StatusLabel, "qty=%d", tc.qty)
		assert.Equal(t, tc.description, v.StatusDescription, "qty=%d", tc.qty)
	}
}

func TestOverview_FormatsExpiryAndMRP(t *testing.T) {
	v := view.Overview(paracetamol(100), nil, now)

	assert.Equal(t, "01 May 2026", v.Expiry)
	assert.Equal(t, "32.10", v.MRP, "MRP is shown with two decimal places")
	assert.False(t, v.ExpiringSoon, "May 2026 is more than three months from mid-January 2026")
	assert.Equal(t, "B42", v.Batch)
	assert.Equal(t, 100, v.QtyInStock)

	closeToExpiry := view.Overview(paracetamol(100), nil, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, closeToExpiry.ExpiringSoon)
}

func TestOverview_UnparseableExpiryIsNA(t *testing.T) {
	p := paracetamol(100)
	p.Exp = "soon"
	v := view.Overview(p, nil, now)

	assert.Equal(t, "N/A", v.Expiry)
	assert.False(t, v.ExpiringSoon)
}

func TestOverview_OtherBatchesExcludeSelected(t *testing.T) {
	stock := []domain.StockInfo{
		{LocationID: 2, LocationName: "Main Store", Batch: "B42", Exp: "2026-05-01", QtyInStock: 100},
		{LocationID: 3, LocationName: "Cold Room", Batch: "B43", Exp: "2027-02-01", QtyInStock: 30},
		{LocationID: 2, LocationName: "Main Store", Batch: "B44", Exp: "2026-11-15", QtyInStock: 12},
	}
	v := view.Overview(paracetamol(100), stock, now)

	require.Len(t, v.OtherBatches, 2)
	assert.Equal(t, "B43", v.OtherBatches[0].Batch)
	assert.Equal(t, "01 Feb 2027", v.OtherBatches[0].Expiry)
	assert.Equal(t, "B44", v.OtherBatches[1].Batch)
}

// ─────────────────────────────────────────────
// Timeline
// ─────────────────────────────────────────────

func strptr(s string) *string { return &s }

func TestTimeline_TypePresentation(t *testing.T) {
	audits := []domain.Audit{
		{StockAuditID: 1, AuditType: domain.AuditDelivery, QtyChange: 50, CreatedAt: "2026-01-10T09:30:00Z"},
		{StockAuditID: 2, AuditType: domain.AuditSale, QtyChange: -5, CreatedAt: "2026-01-09T14:05:00Z"},
		{StockAuditID: 3, AuditType: domain.AuditPhysicalCount, QtyChange: -2, CreatedAt: "2026-01-08T08:00:00Z"},
		{StockAuditID: 4, AuditType: "SOMETHING_NEW", QtyChange: 1, CreatedAt: "2026-01-07T08:00:00Z"},
	}
	v := view.Timeline(audits)

	require.Len(t, v.Entries, 4)
	assert.Equal(t, "Delivery", v.Entries[0].TypeLabel)
	assert.Equal(t, "+50", v.Entries[0].QtyChange)
	assert.False(t, v.Entries[0].ReadOnly)

	assert.Equal(t, "Sale", v.Entries[1].TypeLabel)
	assert.Equal(t, "-5", v.Entries[1].QtyChange)
	assert.True(t, v.Entries[1].ReadOnly, "sales are display-only on the timeline")

	assert.Equal(t, "Physical Count", v.Entries[2].TypeLabel)

	assert.Equal(t, "Adjustment", v.Entries[3].TypeLabel, "unknown types fall back to the adjustment treatment")
	assert.Equal(t, "+1", v.Entries[3].QtyChange)
}

func TestTimeline_ReferenceRemarksAndTimestamp(t *testing.T) {
	audits := []domain.Audit{
		{
			StockAuditID:      10,
			AuditType:         domain.AuditDelivery,
			QtyChange:         50,
			StockBefore:       100,
			StockAfter:        150,
			Batch:             "B42",
			ReferenceType:     strptr("GRN"),
			ReferenceNo:       strptr("INV-1001"),
			Remarks:           strptr("Morning delivery"),
			CreatedByUserName: "asha",
			CreatedAt:         "2026-01-10T09:30:00Z",
		},
		{StockAuditID: 11, AuditType: domain.AuditSale, ReferenceType: strptr("POS"), CreatedAt: "bad-date"},
	}
	v := view.Timeline(audits)

	e := v.Entries[0]
	assert.Equal(t, "GRN: INV-1001", e.Reference)
	assert.Equal(t, "Morning delivery", e.Remarks)
	assert.Equal(t, "10 Jan 2026, 09:30", e.Timestamp)
	assert.Equal(t, 100, e.StockBefore)
	assert.Equal(t, 150, e.StockAfter)
	assert.Equal(t, "asha", e.By)

	assert.Empty(t, v.Entries[1].Reference, "a reference type without a number renders nothing")
	assert.Equal(t, "N/A", v.Entries[1].Timestamp)
}

func TestTimeline_EmptyTrail(t *testing.T) {
	v := view.Timeline(nil)
	assert.True(t, v.Empty)
	assert.Empty(t, v.Entries)
}

// ─────────────────────────────────────────────
// Sales summary
// ─────────────────────────────────────────────

func TestSalesSummary_Aggregates(t *testing.T) {
	sales := []domain.MonthlySales{
		{Month: "Oct 2025", QtySold: 120, Value: decimal.NewFromFloat(3852.00)},
		{Month: "Nov 2025", QtySold: 95, Value: decimal.NewFromFloat(3049.50)},
		{Month: "Dec 2025", QtySold: 145, Value: decimal.NewFromFloat(4654.40)},
	}
	v := view.SalesSummary(sales, "Paracetamol 500mg")

	assert.Equal(t, "Paracetamol 500mg", v.ProductName)
	assert.Equal(t, 360, v.TotalUnitsSold)
	assert.Equal(t, "11555.90", v.TotalRevenue)
	assert.Equal(t, 120, v.AvgMonthlyUnits)
	require.Len(t, v.Months, 3)
	assert.Equal(t, "3049.50", v.Months[1].Value)
}

func TestSalesSummary_NoSales(t *testing.T) {
	v := view.SalesSummary(nil, "Paracetamol 500mg")
	assert.Zero(t, v.TotalUnitsSold)
	assert.Equal(t, "0.00", v.TotalRevenue)
	assert.Zero(t, v.AvgMonthlyUnits)
	assert.Empty(t, v.Months)
}

// ─────────────────────────────────────────────
// Search results
// ─────────────────────────────────────────────

func TestSearchResults_ShortQueryHint(t *testing.T) {
	v := view.SearchResults("P", nil, nil)
	assert.Empty(t, v.Results)
	assert.Equal(t, "Enter at least 2 characters to search", v.Hint)
}

func TestSearchResults_BadgesShortExpiryAndSelection(t *testing.T) {
	selected := paracetamol(100)
	products := []domain.Product{
		selected,
		{ProductID: 7, ProductName: "Paracetamol 500mg", Batch: "B43", Exp: "2027-02-01", QtyInStock: 30},
		{ProductID: 8, ProductName: "Paracetamol Syrup", Batch: "S1", Exp: "2026-03-01", QtyInStock: 0},
	}
	v := view.SearchResults("Para", products, &selected)

	require.Len(t, v.Results, 3)
	assert.Empty(t, v.Hint)

	assert.Equal(t, "OK", v.Results[0].StatusBadge)
	assert.Equal(t, "May 2026", v.Results[0].Expiry)
	assert.True(t, v.Results[0].Selected)

	assert.Equal(t, "LOW", v.Results[1].StatusBadge)
	assert.False(t, v.Results[1].Selected, "same product id, different batch is a different row")

	assert.Equal(t, "OUT", v.Results[2].StatusBadge)
}

func TestSearchResults_NoMatches(t *testing.T) {
	v := view.SearchResults("zz", []domain.Product{}, nil)
	assert.Empty(t, v.Results)
	assert.Equal(t, "No products found", v.Hint)
}
