// Package pricing layers per-customer overrides onto catalog defaults.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Override shadows catalog fields for one (customer, product) pair. Any
// subset may be set; an invalid price, blank strings and a nil Visible all
// fall through to the product.
type Override struct {
	Price         decimal.NullDecimal `json:"price"`
	Alias         string              `json:"alias,omitempty"`
	Specification string              `json:"specification,omitempty"`
	Visible       *bool               `json:"visible,omitempty"`
}

// PriceOverride builds an override that only sets the price. This is the
// shape older price lists were stored in.
func PriceOverride(price decimal.Decimal) Override {
	return Override{Price: decimal.NullDecimal{Decimal: price, Valid: true}}
}

// HasPrice reports whether the override carries a usable price.
func (o Override) HasPrice() bool {
	return o.Price.Valid && o.Price.Decimal.IsPositive()
}

// IsZero reports whether the override changes nothing.
func (o Override) IsZero() bool {
	return !o.HasPrice() &&
		strings.TrimSpace(o.Alias) == "" &&
		strings.TrimSpace(o.Specification) == "" &&
		o.Visible == nil
}

// normalize drops fields that would be ignored anyway so stored overrides
// only hold what actually shadows the catalog.
func (o Override) normalize() Override {
	if o.HasPrice() {
		o.Price.Decimal = o.Price.Decimal.Round(2)
	} else {
		o.Price = decimal.NullDecimal{}
	}
	o.Alias = strings.TrimSpace(o.Alias)
	o.Specification = strings.TrimSpace(o.Specification)
	if o.Visible != nil {
		v := *o.Visible
		o.Visible = &v
	}
	return o
}

// Table maps customer id → product id → override.
type Table map[int64]map[int64]Override

// Get returns the stored override for the pair.
func (t Table) Get(customerID, productID int64) (Override, bool) {
	o, ok := t[customerID][productID]
	return o, ok
}

// Set stores o for the pair. A zero override removes the entry instead,
// since it is equivalent to having none.
func (t Table) Set(customerID, productID int64, o Override) {
	o = o.normalize()
	if o.IsZero() {
		if byProduct, ok := t[customerID]; ok {
			delete(byProduct, productID)
			if len(byProduct) == 0 {
				delete(t, customerID)
			}
		}
		return
	}
	byProduct, ok := t[customerID]
	if !ok {
		byProduct = make(map[int64]Override)
		t[customerID] = byProduct
	}
	byProduct[productID] = o
}

// ForCustomer returns a copy of the customer's overrides keyed by product id.
func (t Table) ForCustomer(customerID int64) map[int64]Override {
	out := make(map[int64]Override, len(t[customerID]))
	for pid, o := range t[customerID] {
		out[pid] = o.normalize()
	}
	return out
}

// Clone deep-copies the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for cid := range t {
		out[cid] = t.ForCustomer(cid)
	}
	return out
}

// FromPriceList migrates a bare price list (product id → price) into
// override records. Non-positive prices are skipped.
func FromPriceList(prices map[int64]decimal.Decimal) map[int64]Override {
	out := make(map[int64]Override, len(prices))
	for pid, price := range prices {
		o := PriceOverride(price)
		if o.HasPrice() {
			out[pid] = o.normalize()
		}
	}
	return out
}

func trimmed(s string) string { return strings.TrimSpace(s) }
