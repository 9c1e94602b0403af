// Package seed loads the demo data set the session starts with.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"wholesale/pkg/cart"
	"wholesale/pkg/catalog"
	"wholesale/pkg/customer"
	"wholesale/pkg/order"
	"wholesale/pkg/pricing"
	"wholesale/pkg/router"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is a fully migrated data set ready to become session state.
type Data struct {
	Products  []catalog.Product
	Customers []customer.Customer
	Overrides pricing.Table
	Orders    []order.Order
	Routes    router.Table
}

type productRecord struct {
	ID           int64   `yaml:"id"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	BasePrice    float64 `yaml:"base_price"`
	Glyph        string  `yaml:"glyph"`
	LeadTimeDays int     `yaml:"lead_time_days"`
	Description  string  `yaml:"description"`
	Alias        string  `yaml:"alias"`
	Visible      *bool   `yaml:"visible"`
	Notes        string  `yaml:"notes"`
}

type customerRecord struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Billing string `yaml:"billing"`
	Address string `yaml:"address"`
	Mode    string `yaml:"mode"`
}

type overrideRecord struct {
	Price         *float64 `yaml:"price"`
	Alias         string   `yaml:"alias"`
	Specification string   `yaml:"specification"`
	Visible       *bool    `yaml:"visible"`
}

// orderRecord accepts the legacy item form: product id → bare quantity.
type orderRecord struct {
	ID           string               `yaml:"id"`
	CustomerID   int64                `yaml:"customer_id"`
	CustomerName string               `yaml:"customer_name"`
	Total        float64              `yaml:"total"`
	Status       string               `yaml:"status"`
	DeliveryDate string               `yaml:"delivery_date"`
	Notes        string               `yaml:"notes"`
	Items        map[int64]int        `yaml:"items"`
	Lines        map[int64]lineRecord `yaml:"lines"`
}

type lineRecord struct {
	Quantity int    `yaml:"quantity"`
	Notes    string `yaml:"notes"`
}

type document struct {
	Products   []productRecord                    `yaml:"products"`
	Customers  []customerRecord                   `yaml:"customers"`
	PriceLists map[int64]map[int64]float64        `yaml:"price_lists"`
	Overrides  map[int64]map[int64]overrideRecord `yaml:"overrides"`
	Routes     map[int64]string                   `yaml:"routes"`
	Orders     []orderRecord                      `yaml:"orders"`
}

// Default parses the embedded demo data.
func Default() (Data, error) {
	return Parse(defaultSeed)
}

// Parse decodes a seed document and migrates legacy shapes: bare price
// lists become override records, bare item quantities become snapshot lines
// priced at load time, and localized status labels become canonical.
func Parse(raw []byte) (Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}

	data := Data{
		Overrides: pricing.Table{},
		Routes:    router.Table{},
	}
	for _, rec := range doc.Products {
		p := catalog.Product{
			ID:           rec.ID,
			Name:         rec.Name,
			Category:     catalog.Category(rec.Category),
			BasePrice:    decimal.NewFromFloat(rec.BasePrice).Round(2),
			LeadTimeDays: rec.LeadTimeDays,
			Glyph:        rec.Glyph,
			Description:  rec.Description,
			Alias:        rec.Alias,
			Visible:      rec.Visible == nil || *rec.Visible,
			Notes:        rec.Notes,
		}
		if err := catalog.Validate(p); err != nil {
			return Data{}, fmt.Errorf("seed product %d: %w", rec.ID, err)
		}
		data.Products = append(data.Products, p)
	}

	for _, rec := range doc.Customers {
		c := customer.Customer{
			ID:      rec.ID,
			Name:    rec.Name,
			Type:    customer.Type(rec.Type),
			Billing: customer.Billing(rec.Billing),
			Address: rec.Address,
			Mode:    customer.Mode(rec.Mode),
		}
		if err := customer.Validate(c); err != nil {
			return Data{}, fmt.Errorf("seed customer %d: %w", rec.ID, err)
		}
		if _, dup := customer.Find(data.Customers, c.ID); dup {
			return Data{}, fmt.Errorf("seed customer %d: duplicate id", c.ID)
		}
		data.Customers = append(data.Customers, c)
	}

	for cid, list := range doc.PriceLists {
		prices := make(map[int64]decimal.Decimal, len(list))
		for pid, price := range list {
			prices[pid] = decimal.NewFromFloat(price)
		}
		for pid, o := range pricing.FromPriceList(prices) {
			data.Overrides.Set(cid, pid, o)
		}
	}
	for cid, byProduct := range doc.Overrides {
		for pid, rec := range byProduct {
			o, _ := data.Overrides.Get(cid, pid)
			if rec.Price != nil {
				o.Price = decimal.NullDecimal{Decimal: decimal.NewFromFloat(*rec.Price), Valid: true}
			}
			if rec.Alias != "" {
				o.Alias = rec.Alias
			}
			if rec.Specification != "" {
				o.Specification = rec.Specification
			}
			if rec.Visible != nil {
				o.Visible = rec.Visible
			}
			data.Overrides.Set(cid, pid, o)
		}
	}

	for cid, raw := range doc.Routes {
		data.Routes[cid] = router.Surface(raw)
	}

	for _, rec := range doc.Orders {
		o, err := migrateOrder(rec, data)
		if err != nil {
			return Data{}, err
		}
		data.Orders = append(data.Orders, o)
	}
	return data, nil
}

func migrateOrder(rec orderRecord, data Data) (order.Order, error) {
	status, err := order.ParseStatus(rec.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("seed order %s: %w", rec.ID, err)
	}
	date, err := time.Parse(order.DateLayout, rec.DeliveryDate)
	if err != nil {
		return order.Order{}, fmt.Errorf("seed order %s: %w", rec.ID, order.ErrInvalidDate)
	}

	lines := cart.New()
	for pid, qty := range rec.Items {
		lines.SetQuantity(pid, qty)
	}
	for pid, line := range rec.Lines {
		lines.SetQuantity(pid, line.Quantity)
		lines.SetNotes(pid, line.Notes)
	}
	items, computed, err := order.Snapshot(rec.CustomerID, lines.Lines(), data.Products, data.Overrides)
	if err != nil {
		return order.Order{}, fmt.Errorf("seed order %s: %w", rec.ID, err)
	}

	// Historical totals are kept as recorded; only missing ones are derived.
	total := decimal.NewFromFloat(rec.Total).Round(2)
	if total.IsZero() {
		total = computed
	}
	name := rec.CustomerName
	if c, ok := customer.Find(data.Customers, rec.CustomerID); ok && name == "" {
		name = c.Name
	}
	return order.Order{
		ID:           rec.ID,
		CustomerID:   rec.CustomerID,
		CustomerName: name,
		Items:        items,
		Total:        total,
		Status:       status,
		DeliveryDate: date.Format(order.DateLayout),
		Notes:        rec.Notes,
		CreatedAt:    date.AddDate(0, 0, -2),
	}, nil
}
