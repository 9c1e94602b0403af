package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wholesale/pkg/cart"
	"wholesale/pkg/catalog"
	"wholesale/pkg/pricing"
)

// Snapshot prices every line for customerID against the current catalog
// and overrides and returns deep copies together with the order total.
func Snapshot(customerID int64, lines map[int64]cart.Line, products []catalog.Product, overrides pricing.Table) (map[int64]Line, decimal.Decimal, error) {
	items := make(map[int64]Line, len(lines))
	total := decimal.Zero
	for pid, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		p, ok := catalog.Find(products, pid)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownProduct, pid)
		}
		item := overrides.Resolve(customerID, p)
		snap := Line{
			Quantity:  line.Quantity,
			Notes:     line.Notes,
			UnitPrice: item.Price,
			Name:      item.DisplayName,
			Glyph:     p.Glyph,
		}
		items[pid] = snap
		total = total.Add(snap.Subtotal())
	}
	if len(items) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}
	return items, total.Round(2), nil
}

// CheckVisible fails with ErrHiddenProduct when any submittable line is a
// product customerID's catalog hides. Unknown products are left to Snapshot.
func CheckVisible(customerID int64, lines map[int64]cart.Line, products []catalog.Product, overrides pricing.Table) error {
	for pid, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		p, ok := catalog.Find(products, pid)
		if !ok {
			continue
		}
		if !overrides.Resolve(customerID, p).Visible {
			return fmt.Errorf("%w: %d", ErrHiddenProduct, pid)
		}
	}
	return nil
}

// DeliveryDate validates raw as YYYY-MM-DD, or returns today plus leadDays
// when raw is blank.
func DeliveryDate(raw string, today time.Time, leadDays int) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today.AddDate(0, 0, leadDays).Format(DateLayout), nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed.Format(DateLayout), nil
}

// Find returns the index of the order with id in log.
func Find(log []Order, id string) (int, bool) {
	for i := range log {
		if log[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Prepend puts o at the head of the newest-first log.
func Prepend(log []Order, o Order) []Order {
	out := make([]Order, 0, len(log)+1)
	out = append(out, o)
	return append(out, log...)
}

// CloneAll deep-copies the log.
func CloneAll(src []Order) []Order {
	out := make([]Order, len(src))
	for i, o := range src {
		out[i] = o.Clone()
	}
	return out
}
