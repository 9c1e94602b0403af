// Package cart models the in-progress selection of one view session.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"

	"wholesale/pkg/catalog"
	"wholesale/pkg/pricing"
)

// Line is the quantity and free-text notes for one product.
type Line struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// Cart maps product id to its line. The zero value is not usable; call New.
type Cart struct {
	lines map[int64]Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[int64]Line)}
}

// SetQuantity upserts the line keeping its notes; q <= 0 removes it.
func (c *Cart) SetQuantity(productID int64, q int) {
	if q <= 0 {
		delete(c.lines, productID)
		return
	}
	line := c.lines[productID]
	line.Quantity = q
	c.lines[productID] = line
}

// Add changes the quantity by delta, removing the line when it reaches zero.
func (c *Cart) Add(productID int64, delta int) {
	c.SetQuantity(productID, c.lines[productID].Quantity+delta)
}

// SetNotes upserts the line keeping its quantity. A line created this way
// has quantity 0 and is not submittable until a quantity is set.
func (c *Cart) SetNotes(productID int64, text string) {
	line := c.lines[productID]
	line.Notes = text
	c.lines[productID] = line
}

// Clear empties the cart.
func (c *Cart) Clear() {
	clear(c.lines)
}

// Lines returns a copy of the submittable lines (quantity > 0).
func (c *Cart) Lines() map[int64]Line {
	out := make(map[int64]Line, len(c.lines))
	for pid, line := range c.lines {
		if line.Quantity > 0 {
			out[pid] = line
		}
	}
	return out
}

// Drafts returns notes-only lines that still lack a quantity.
func (c *Cart) Drafts() map[int64]Line {
	out := make(map[int64]Line)
	for pid, line := range c.lines {
		if line.Quantity <= 0 {
			out[pid] = line
		}
	}
	return out
}

// IsEmpty reports whether there is nothing to submit.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines()) == 0
}

// Count is the sum of quantities, shown on the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// ProductIDs returns the submittable product ids in ascending order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.lines))
	for pid, line := range c.lines {
		if line.Quantity > 0 {
			ids = append(ids, pid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total prices every line for customerID. Lines whose product no longer
// exists contribute nothing.
func (c *Cart) Total(customerID int64, products []catalog.Product, overrides pricing.Table) decimal.Decimal {
	total := decimal.Zero
	for pid, line := range c.Lines() {
		p, ok := catalog.Find(products, pid)
		if !ok {
			continue
		}
		price := overrides.Resolve(customerID, p).Price
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}

// Clone copies every line, drafts included.
func (c *Cart) Clone() *Cart {
	out := New()
	for pid, line := range c.lines {
		out.lines[pid] = line
	}
	return out
}
