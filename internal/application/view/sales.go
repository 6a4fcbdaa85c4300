package view

import (
	"github.com/shopspring/decimal"

	"github.com/pharmaudit/dashboard/internal/domain"
)

// SalesRow is one month in the detailed breakdown table.
type SalesRow struct {
	Month   string `json:"month"`
	QtySold int    `json:"qty_sold"`
	Value   string `json:"value"`
}

// SalesView is the sales summary tab: headline figures plus the per-month
// breakdown.
type SalesView struct {
	ProductName     string     `json:"product_name"`
	TotalUnitsSold  int        `json:"total_units_sold"`
	TotalRevenue    string     `json:"total_revenue"`
	AvgMonthlyUnits int        `json:"avg_monthly_units"`
	Months          []SalesRow `json:"months"`
}

// SalesSummary aggregates the monthly sales rows. Revenue sums with decimal
// arithmetic; the monthly average rounds half away from zero, matching how
// the dashboard has always displayed it.
func SalesSummary(sales []domain.MonthlySales, productName string) SalesView {
	totalQty := 0
	totalValue := decimal.Zero
	rows := make([]SalesRow, 0, len(sales))
	for _, s := range sales {
		totalQty += s.QtySold
		totalValue = totalValue.Add(s.Value)
		rows = append(rows, SalesRow{
			Month:   s.Month,
			QtySold: s.QtySold,
			Value:   s.Value.StringFixed(2),
		})
	}

	avg := 0
	if len(sales) > 0 {
		avg = int(decimal.NewFromInt(int64(totalQty)).
			Div(decimal.NewFromInt(int64(len(sales)))).
			Round(0).IntPart())
	}

	return SalesView{
		ProductName:     productName,
		TotalUnitsSold:  totalQty,
		TotalRevenue:    totalValue.StringFixed(2),
		AvgMonthlyUnits: avg,
		Months:          rows,
	}
}
