package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a submitted cart line together with the price and product
// identity captured at submission, so later catalog or price changes never
// rewrite it.
type Line struct {
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Name      string          `json:"name"`
	Glyph     string          `json:"glyph,omitempty"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is an immutable-except-for-status record of a submitted cart.
type Order struct {
	ID           string          `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Items        map[int64]Line  `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       Status          `json:"status"`
	DeliveryDate string          `json:"delivery_date"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Clone deep-copies the items map.
func (o Order) Clone() Order {
	items := make(map[int64]Line, len(o.Items))
	for pid, line := range o.Items {
		items[pid] = line
	}
	o.Items = items
	return o
}

// LineTotal sums the line subtotals.
func (o Order) LineTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Items {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

// DateLayout is the ISO calendar date used for delivery dates.
const DateLayout = "2006-01-02"
