// Package views derives read-only projections from the order log and the
// stores. Every projection is recomputed from its inputs on each call.
package views

import (
	"sort"

	"github.com/shopspring/decimal"

	"wholesale/pkg/catalog"
	"wholesale/pkg/order"
)

// History is a customer's order list with its summary counters.
type History struct {
	CustomerID     int64           `json:"customer_id"`
	Orders         []order.Order   `json:"orders"`
	Count          int             `json:"count"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	CompletedCount int             `json:"completed_count"`
}

// CustomerHistory filters log to customerID, sorted by delivery date
// descending. Orders with the same date keep their log order.
func CustomerHistory(customerID int64, log []order.Order) History {
	h := History{CustomerID: customerID, Orders: []order.Order{}, TotalSpent: decimal.Zero}
	for _, o := range log {
		if o.CustomerID != customerID {
			continue
		}
		h.Orders = append(h.Orders, o.Clone())
		h.TotalSpent = h.TotalSpent.Add(o.Total)
		if o.Status == order.StatusCompleted {
			h.CompletedCount++
		}
	}
	// ISO dates sort lexically.
	sort.SliceStable(h.Orders, func(i, j int) bool {
		return h.Orders[i].DeliveryDate > h.Orders[j].DeliveryDate
	})
	h.Count = len(h.Orders)
	h.TotalSpent = h.TotalSpent.Round(2)
	return h
}

// Placeholders for lines whose product has been deleted from the catalog.
const (
	PlaceholderGlyph = "📦"
	PlaceholderName  = "已下架商品"
)

// DetailLine is one rendered order line.
type DetailLine struct {
	ProductID int64           `json:"product_id"`
	Glyph     string          `json:"glyph"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Missing   bool            `json:"missing,omitempty"`
}

// Detail is the expanded projection of one order.
type Detail struct {
	Order       order.Order  `json:"order"`
	Lines       []DetailLine `json:"lines"`
	StatusLabel string       `json:"status_label"`
	StatusColor string       `json:"status_color"`
}

// OrderDetail joins the order's lines against the current catalog for glyph
// and name. Prices always come from the order snapshot.
func OrderDetail(o order.Order, products []catalog.Product) Detail {
	ids := make([]int64, 0, len(o.Items))
	for pid := range o.Items {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]DetailLine, 0, len(ids))
	for _, pid := range ids {
		item := o.Items[pid]
		line := DetailLine{
			ProductID: pid,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal().Round(2),
		}
		if p, ok := catalog.Find(products, pid); ok {
			line.Glyph = p.Glyph
			line.Name = item.Name
			if line.Name == "" {
				line.Name = p.Name
			}
		} else {
			line.Glyph = PlaceholderGlyph
			line.Name = PlaceholderName
			line.Missing = true
		}
		lines = append(lines, line)
	}
	return Detail{
		Order:       o.Clone(),
		Lines:       lines,
		StatusLabel: o.Status.Label(),
		StatusColor: o.Status.Color(),
	}
}
