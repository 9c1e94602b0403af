package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wholesale/pkg/catalog"
	"wholesale/pkg/customer"
	"wholesale/pkg/pricing"
	"wholesale/pkg/views"
)

// Customers lists customers in insertion order.
func (e *Engine) Customers(ctx context.Context) ([]customer.Customer, error) {
	var out []customer.Customer
	err := e.store.Do(ctx, func(s *State) error {
		out = customer.Clone(s.Customers)
		return nil
	})
	return out, err
}

// Customer returns one customer record.
func (e *Engine) Customer(ctx context.Context, id int64) (customer.Customer, error) {
	var out customer.Customer
	err := e.store.Do(ctx, func(s *State) error {
		c, ok := customer.Find(s.Customers, id)
		if !ok {
			return fmt.Errorf("customer %d: %w", id, customer.ErrNotFound)
		}
		out = c
		return nil
	})
	return out, err
}

// SearchCustomers is the admin customer filter.
func (e *Engine) SearchCustomers(ctx context.Context, query string) ([]customer.Customer, error) {
	all, err := e.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return views.SearchCustomers(all, query), nil
}

// CreateCustomer adds a customer with the next id and its initial
// overrides. Overrides for unknown products are rejected and nothing is
// stored.
func (e *Engine) CreateCustomer(ctx context.Context, c customer.Customer, overrides map[int64]pricing.Override) (customer.Customer, error) {
	var created customer.Customer
	err := e.store.Do(ctx, func(s *State) error {
		for pid := range overrides {
			if _, ok := catalog.Find(s.Products, pid); !ok {
				return fmt.Errorf("override for product %d: %w", pid, catalog.ErrNotFound)
			}
		}
		customers, stored, err := customer.Create(s.Customers, c)
		if err != nil {
			return err
		}
		s.Customers = customers
		for pid, o := range overrides {
			s.Overrides.Set(stored.ID, pid, o)
		}
		created = stored
		return nil
	})
	if err != nil {
		return customer.Customer{}, err
	}
	e.logger.Info("customer created",
		zap.Int64("customer_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("overrides", len(overrides)),
	)
	return created, nil
}

// Overrides returns customerID's override records keyed by product id.
func (e *Engine) Overrides(ctx context.Context, customerID int64) (map[int64]pricing.Override, error) {
	var out map[int64]pricing.Override
	err := e.store.Do(ctx, func(s *State) error {
		if _, ok := customer.Find(s.Customers, customerID); !ok {
			return fmt.Errorf("customer %d: %w", customerID, customer.ErrNotFound)
		}
		out = s.Overrides.ForCustomer(customerID)
		return nil
	})
	return out, err
}

// SetOverride stores (or, for an empty record, removes) the override for
// one product of one customer. Submitted orders are unaffected.
func (e *Engine) SetOverride(ctx context.Context, customerID, productID int64, o pricing.Override) error {
	err := e.store.Do(ctx, func(s *State) error {
		if _, ok := customer.Find(s.Customers, customerID); !ok {
			return fmt.Errorf("customer %d: %w", customerID, customer.ErrNotFound)
		}
		if _, ok := catalog.Find(s.Products, productID); !ok {
			return fmt.Errorf("product %d: %w", productID, catalog.ErrNotFound)
		}
		s.Overrides.Set(customerID, productID, o)
		return nil
	})
	if err != nil {
		return err
	}
	fields := []zap.Field{
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
		zap.Bool("cleared", o.IsZero()),
	}
	if o.HasPrice() {
		fields = append(fields, zap.String("price", o.Price.Decimal.StringFixed(2)))
	}
	e.logger.Info("override saved", fields...)
	return nil
}

// Resolve returns the effective item of one product for one customer.
func (e *Engine) Resolve(ctx context.Context, customerID, productID int64) (pricing.EffectiveItem, error) {
	var out pricing.EffectiveItem
	err := e.store.Do(ctx, func(s *State) error {
		p, ok := catalog.Find(s.Products, productID)
		if !ok {
			return fmt.Errorf("product %d: %w", productID, catalog.ErrNotFound)
		}
		out = s.Overrides.Resolve(customerID, p)
		return nil
	})
	return out, err
}
