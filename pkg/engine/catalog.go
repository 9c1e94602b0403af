package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wholesale/pkg/catalog"
	"wholesale/pkg/customer"
	"wholesale/pkg/order"
	"wholesale/pkg/pricing"
)

// Products lists the catalog in source order.
func (e *Engine) Products(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	err := e.store.Do(ctx, func(s *State) error {
		out = catalog.Clone(s.Products)
		return nil
	})
	return out, err
}

// Product returns a single catalog entry.
func (e *Engine) Product(ctx context.Context, id int64) (catalog.Product, error) {
	var out catalog.Product
	err := e.store.Do(ctx, func(s *State) error {
		p, ok := catalog.Find(s.Products, id)
		if !ok {
			return fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
		}
		out = p
		return nil
	})
	return out, err
}

// SaveProduct creates (ID == 0) or replaces a product.
func (e *Engine) SaveProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	var stored catalog.Product
	err := e.store.Do(ctx, func(s *State) error {
		products, saved, err := catalog.Upsert(s.Products, p)
		if err != nil {
			return err
		}
		s.Products = products
		stored = saved
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	e.logger.Info("product saved",
		zap.Int64("product_id", stored.ID),
		zap.String("name", stored.Name),
		zap.String("base_price", stored.BasePrice.StringFixed(2)),
	)
	return stored, nil
}

// DeleteProduct removes a product from the catalog. Historical orders and
// overrides that mention it are left alone.
func (e *Engine) DeleteProduct(ctx context.Context, id int64) error {
	err := e.store.Do(ctx, func(s *State) error {
		products, err := catalog.Delete(s.Products, id)
		if err != nil {
			return err
		}
		s.Products = products
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// CustomerCatalog is the shop both client surfaces render: visible products
// only, resolved for customerID.
func (e *Engine) CustomerCatalog(ctx context.Context, customerID int64) ([]pricing.CatalogItem, error) {
	var out []pricing.CatalogItem
	err := e.store.Do(ctx, func(s *State) error {
		if _, ok := customer.Find(s.Customers, customerID); !ok {
			return fmt.Errorf("customer %d: %w", customerID, order.ErrUnknownCustomer)
		}
		out = s.Overrides.CustomerCatalog(customerID, s.Products)
		return nil
	})
	return out, err
}

// OnBehalfCatalog is the admin's order-for-customer picker: every product,
// with canonical and customer names side by side.
func (e *Engine) OnBehalfCatalog(ctx context.Context, customerID int64) ([]pricing.OnBehalfItem, error) {
	var out []pricing.OnBehalfItem
	err := e.store.Do(ctx, func(s *State) error {
		if customerID == 0 {
			return order.ErrMissingCustomer
		}
		if _, ok := customer.Find(s.Customers, customerID); !ok {
			return fmt.Errorf("customer %d: %w", customerID, order.ErrUnknownCustomer)
		}
		out = s.Overrides.OnBehalfCatalog(customerID, s.Products)
		return nil
	})
	return out, err
}
