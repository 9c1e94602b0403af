package catalog

import (
	"fmt"
	"strings"

	"wholesale/pkg/validation"
)

// Validate checks the admin product form. Prices are normalized to two
// fractional digits before the check.
func Validate(p Product) error {
	var errs validation.Errors
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "name is required")
	}
	if !p.Category.Valid() {
		errs.Add("category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.BasePrice.IsNegative() {
		errs.Add("base_price", "base price must not be negative")
	}
	if p.LeadTimeDays < 0 {
		errs.Add("lead_time_days", "lead time must not be negative")
	}
	return errs.Err()
}

// NextID returns max(existing)+1, or 1 for an empty catalog.
func NextID(products []Product) int64 {
	var max int64
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Find looks a product up by id.
func Find(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Upsert replaces the product with the same id in place, or appends it with
// a fresh id when p.ID is zero. Source order of existing products is kept.
func Upsert(products []Product, p Product) ([]Product, Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.BasePrice = p.BasePrice.Round(2)
	if err := Validate(p); err != nil {
		return products, Product{}, err
	}
	if p.ID == 0 {
		p.ID = NextID(products)
		return append(products, p), p, nil
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return products, p, nil
		}
	}
	return products, Product{}, fmt.Errorf("update product %d: %w", p.ID, ErrNotFound)
}

// Delete removes a product. Orders keep their embedded snapshots and
// overrides for the id become harmless orphans.
func Delete(products []Product, id int64) ([]Product, error) {
	for i := range products {
		if products[i].ID == id {
			return append(products[:i], products[i+1:]...), nil
		}
	}
	return products, fmt.Errorf("delete product %d: %w", id, ErrNotFound)
}

// Clone duplicates the slice so callers cannot mutate internal state.
func Clone(src []Product) []Product {
	out := make([]Product, len(src))
	copy(out, src)
	return out
}
