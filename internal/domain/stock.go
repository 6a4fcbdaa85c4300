package domain

import (
	"fmt"
	"strings"
	"time"
)

// StockStatus classifies a quantity against fixed thresholds.
type StockStatus string

const (
	StockOut StockStatus = "OUT"
	StockLow StockStatus = "LOW"
	StockOK  StockStatus = "OK"
)

// lowStockThreshold: below this a unit counts as running low.
const lowStockThreshold = 50

// ClassifyStock maps a quantity to a status: qty <= 0 is OUT, qty < 50 is
// LOW, anything else OK.
func ClassifyStock(qty int) StockStatus {
	switch {
	case qty <= 0:
		return StockOut
	case qty < lowStockThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// expiryLayouts covers the formats the upstream has been seen to emit.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseExpiry parses an upstream expiry string.
func ParseExpiry(s string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expiry date %q", s)
}

// ExpiringSoon reports whether the expiry date falls within three months of
// now. Unparseable dates are never flagged.
func ExpiringSoon(exp string, now time.Time) bool {
	t, err := ParseExpiry(exp)
	if err != nil {
		return false
	}
	return !t.After(now.AddDate(0, 3, 0))
}

// ExpiryDateOnly reduces an upstream expiry string to its date part
// (yyyy-mm-dd), which is what the mutation endpoints expect back.
func ExpiryDateOnly(exp string) string {
	if i := strings.IndexByte(exp, 'T'); i >= 0 {
		return exp[:i]
	}
	return exp
}

// Variance is the outcome of a physical count against system stock.
type Variance struct {
	Counted int
	System  int
}

// Delta returns counted minus system stock.
func (v Variance) Delta() int { return v.Counted - v.System }

// IsMismatch reports whether the count disagrees with system stock.
func (v Variance) IsMismatch() bool { return v.Delta() != 0 }

// Label renders the variance the way the dashboard displays it:
// "Stock matches", "+N units (Surplus)" or "-N units (Shortage)".
func (v Variance) Label() string {
	d := v.Delta()
	switch {
	case d == 0:
		return "Stock matches"
	case d > 0:
		return fmt.Sprintf("+%d units (Surplus)", d)
	default:
		return fmt.Sprintf("%d units (Shortage)", d)
	}
}
