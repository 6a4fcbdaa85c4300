package query

import "fmt"

// Cache keys: stable prefix plus identifying parameters. Invalidation after a
// mutation works on prefixes, so everything scoped to one product must live
// under its ProductPrefix and every search result under SearchPrefix.

const (
	// SearchPrefix covers the whole search index.
	SearchPrefix = "search/"
	// ReferencePrefix covers supplier/location lookups.
	ReferencePrefix = "ref/"

	SuppliersKey = ReferencePrefix + "suppliers"
	LocationsKey = ReferencePrefix + "locations"
)

// ProductPrefix scopes all reads of one product (stock, audits, sales).
func ProductPrefix(productID int64) string {
	return fmt.Sprintf("product/%d/", productID)
}

// StockKey caches the stock snapshot of a product.
func StockKey(productID int64) string {
	return ProductPrefix(productID) + "stock"
}

// AuditsKey caches the audit trail of a product.
func AuditsKey(productID int64) string {
	return ProductPrefix(productID) + "audits"
}

// SalesKey caches the monthly sales summary of a product.
func SalesKey(productID int64) string {
	return ProductPrefix(productID) + "sales"
}

// SearchKey caches one search result set.
func SearchKey(q string) string {
	return SearchPrefix + q
}
