package view

import "github.com/pharmaudit/dashboard/internal/domain"

// SearchRow is one product in the search results list.
type SearchRow struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	Drug         string `json:"drug"`
	Batch        string `json:"batch"`
	Expiry       string `json:"expiry"`
	QtyInStock   int    `json:"qty_in_stock"`
	StatusBadge  string `json:"status_badge"`
	StatusColor  string `json:"status_color"`
	LocationName string `json:"location_name"`
	Selected     bool   `json:"selected"`
}

// SearchView is the search panel: the result rows plus the empty-state hint.
type SearchView struct {
	Query   string      `json:"query"`
	Results []SearchRow `json:"results"`
	Hint    string      `json:"hint,omitempty"`
}

// SearchResults projects the search hits. A product row is selected when it
// matches the selected product on both ProductID and Batch, since the same
// product id appears once per batch.
func SearchResults(query string, products []domain.Product, selected *domain.Product) SearchView {
	if len([]rune(query)) < 2 {
		return SearchView{Query: query, Results: []SearchRow{}, Hint: "Enter at least 2 characters to search"}
	}

	rows := make([]SearchRow, 0, len(products))
	for _, p := range products {
		status := statusConfig[domain.ClassifyStock(p.QtyInStock)]
		rows = append(rows, SearchRow{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Drug:         p.Drug,
			Batch:        p.Batch,
			Expiry:       formatShortExpiry(p.Exp),
			QtyInStock:   p.QtyInStock,
			StatusBadge:  status.Badge,
			StatusColor:  status.Color,
			LocationName: p.LocationName,
			Selected:     selected != nil && selected.ProductID == p.ProductID && selected.Batch == p.Batch,
		})
	}

	view := SearchView{Query: query, Results: rows}
	if len(rows) == 0 {
		view.Hint = "No products found"
	}
	return view
}
