package engine

import (
	"context"
	"fmt"

	"wholesale/pkg/customer"
	"wholesale/pkg/order"
	"wholesale/pkg/views"
)

// History is a customer's order history with its counters.
func (e *Engine) History(ctx context.Context, customerID int64) (views.History, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return views.History{}, err
	}
	if _, ok := customer.Find(snap.Customers, customerID); !ok {
		return views.History{}, fmt.Errorf("customer %d: %w", customerID, customer.ErrNotFound)
	}
	return views.CustomerHistory(customerID, snap.Orders), nil
}

// OrderDetail expands one order against the current catalog.
func (e *Engine) OrderDetail(ctx context.Context, id string) (views.Detail, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return views.Detail{}, err
	}
	i, ok := order.Find(snap.Orders, id)
	if !ok {
		return views.Detail{}, fmt.Errorf("order %s: %w", id, order.ErrNotFound)
	}
	return views.OrderDetail(snap.Orders[i], snap.Products), nil
}

// Dashboard is the admin roll-up.
func (e *Engine) Dashboard(ctx context.Context) (views.Dashboard, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return views.Dashboard{}, err
	}
	return views.BuildDashboard(snap.Orders, snap.Products, len(snap.Customers), e.forecast), nil
}
