package catalog

import "github.com/shopspring/decimal"

// Category is one of the fixed product groups shown in the shop filters.
type Category string

const (
	CategoryBread        Category = "面包"
	CategoryToast        Category = "吐司类"
	CategoryPastry       Category = "起酥类"
	CategoryRefrigerated Category = "冷链甜点"
	CategoryShelfStable  Category = "常温蛋糕"
)

// Categories lists the closed set in the order the admin form offers them.
func Categories() []Category {
	return []Category{CategoryBread, CategoryToast, CategoryPastry, CategoryRefrigerated, CategoryShelfStable}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry as the admin maintains it. Customer-facing
// values (price, name, visibility) are derived from it by the pricing overlay.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	LeadTimeDays int             `json:"lead_time_days"`
	Glyph        string          `json:"glyph"`
	Description  string          `json:"description"`
	Alias        string          `json:"alias,omitempty"`
	Visible      bool            `json:"visible"`
	Notes        string          `json:"notes,omitempty"`
}
