package pricing

import (
	"github.com/shopspring/decimal"

	"wholesale/pkg/catalog"
)

// EffectiveItem is what a given customer sees and pays for a product.
type EffectiveItem struct {
	Price         decimal.Decimal `json:"price"`
	DisplayName   string          `json:"display_name"`
	Specification string          `json:"specification,omitempty"`
	Visible       bool            `json:"visible"`
}

// Resolve derives the effective item for customerID. It never mutates the
// table and may be called concurrently on a table nobody writes to.
func (t Table) Resolve(customerID int64, p catalog.Product) EffectiveItem {
	o, _ := t.Get(customerID, p.ID)
	return Apply(o, p)
}

// Apply layers one override onto a product. The product-level alias is not
// used here: only a customer alias replaces the canonical name.
func Apply(o Override, p catalog.Product) EffectiveItem {
	item := EffectiveItem{
		Price:       p.BasePrice,
		DisplayName: p.Name,
		Visible:     p.Visible,
	}
	if o.HasPrice() {
		item.Price = o.Price.Decimal
	}
	if alias := trimmed(o.Alias); alias != "" {
		item.DisplayName = alias
	}
	item.Specification = trimmed(o.Specification)
	if o.Visible != nil {
		item.Visible = *o.Visible
	}
	if item.Price.IsNegative() {
		item.Price = decimal.Zero
	}
	item.Price = item.Price.Round(2)
	return item
}

// CatalogItem is a product annotated with its resolved fields.
type CatalogItem struct {
	Product catalog.Product `json:"product"`
	EffectiveItem
}

// CustomerCatalog lists the products customerID may see, in catalog order.
func (t Table) CustomerCatalog(customerID int64, products []catalog.Product) []CatalogItem {
	out := make([]CatalogItem, 0, len(products))
	for _, p := range products {
		item := t.Resolve(customerID, p)
		if !item.Visible {
			continue
		}
		out = append(out, CatalogItem{Product: p, EffectiveItem: item})
	}
	return out
}

// OnBehalfItem is a row of the admin's order-for-customer picker.
type OnBehalfItem struct {
	CatalogItem
	CanonicalName string `json:"canonical_name"`
	Aliased       bool   `json:"aliased"`
}

// OnBehalfCatalog lists every product, hidden ones included, with both the
// canonical and the customer-facing name so the operator can match them.
func (t Table) OnBehalfCatalog(customerID int64, products []catalog.Product) []OnBehalfItem {
	out := make([]OnBehalfItem, 0, len(products))
	for _, p := range products {
		item := t.Resolve(customerID, p)
		out = append(out, OnBehalfItem{
			CatalogItem:   CatalogItem{Product: p, EffectiveItem: item},
			CanonicalName: p.Name,
			Aliased:       item.DisplayName != p.Name,
		})
	}
	return out
}
