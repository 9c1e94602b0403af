package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wholesale/pkg/cart"
	"wholesale/pkg/customer"
	"wholesale/pkg/order"
)

// SubmitRequest carries the header fields of a submission.
type SubmitRequest struct {
	CustomerID int64
	// DeliveryDate is YYYY-MM-DD; blank means today plus the lead days.
	DeliveryDate string
	Notes        string
	// OnBehalf marks an admin submission, which may include products hidden
	// from the customer.
	OnBehalf bool
}

// Submit turns the cart's lines into a Pending order at the head of the
// log. On failure nothing is stored. The cart itself is not touched.
func (e *Engine) Submit(ctx context.Context, c *cart.Cart, req SubmitRequest) (order.Order, error) {
	lines := c.Lines()
	var stored order.Order
	err := e.store.Do(ctx, func(s *State) error {
		o, err := e.submit(s, lines, req)
		if err != nil {
			return err
		}
		stored = o
		return nil
	})
	if err != nil {
		e.logger.Warn("order submission rejected", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		return order.Order{}, err
	}
	e.logSubmitted(stored)
	return stored, nil
}

// Checkout submits a cart session and empties it on success.
func (e *Engine) Checkout(ctx context.Context, cartID string, req SubmitRequest) (order.Order, error) {
	var stored order.Order
	err := e.withCart(ctx, cartID, func(s *State, c *cart.Cart) error {
		o, err := e.submit(s, c.Lines(), req)
		if err != nil {
			return err
		}
		c.Clear()
		stored = o
		return nil
	})
	if err != nil {
		e.logger.Warn("checkout rejected", zap.String("cart_id", cartID), zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		return order.Order{}, err
	}
	e.logSubmitted(stored)
	return stored, nil
}

// submit runs on the store goroutine; it validates everything before the
// single mutation at the end.
func (e *Engine) submit(s *State, lines map[int64]cart.Line, req SubmitRequest) (order.Order, error) {
	if len(lines) == 0 {
		return order.Order{}, order.ErrEmptyCart
	}
	if req.CustomerID == 0 {
		return order.Order{}, order.ErrMissingCustomer
	}
	c, ok := customer.Find(s.Customers, req.CustomerID)
	if !ok {
		return order.Order{}, fmt.Errorf("customer %d: %w", req.CustomerID, order.ErrUnknownCustomer)
	}
	now := e.now()
	date, err := order.DeliveryDate(req.DeliveryDate, now, e.leadDays)
	if err != nil {
		return order.Order{}, err
	}
	if !req.OnBehalf {
		if err := order.CheckVisible(c.ID, lines, s.Products, s.Overrides); err != nil {
			return order.Order{}, err
		}
	}
	items, total, err := order.Snapshot(c.ID, lines, s.Products, s.Overrides)
	if err != nil {
		return order.Order{}, err
	}
	o := order.Order{
		ID:           e.ids.Next(),
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Items:        items,
		Total:        total,
		Status:       order.StatusPending,
		DeliveryDate: date,
		Notes:        req.Notes,
		CreatedAt:    now.UTC(),
	}
	s.Orders = order.Prepend(s.Orders, o)
	return o.Clone(), nil
}

func (e *Engine) logSubmitted(o order.Order) {
	e.logger.Info("order submitted",
		zap.String("order_id", o.ID),
		zap.Int64("customer_id", o.CustomerID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("delivery_date", o.DeliveryDate),
	)
}

// Orders returns the log newest-first.
func (e *Engine) Orders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	err := e.store.Do(ctx, func(s *State) error {
		out = order.CloneAll(s.Orders)
		return nil
	})
	return out, err
}

// Order returns one order.
func (e *Engine) Order(ctx context.Context, id string) (order.Order, error) {
	var out order.Order
	err := e.store.Do(ctx, func(s *State) error {
		i, ok := order.Find(s.Orders, id)
		if !ok {
			return fmt.Errorf("order %s: %w", id, order.ErrNotFound)
		}
		out = s.Orders[i].Clone()
		return nil
	})
	return out, err
}

// Advance moves an order one step along the lifecycle to status to.
func (e *Engine) Advance(ctx context.Context, id string, to order.Status) (order.Order, error) {
	var out order.Order
	var from order.Status
	err := e.store.Do(ctx, func(s *State) error {
		i, ok := order.Find(s.Orders, id)
		if !ok {
			return fmt.Errorf("order %s: %w", id, order.ErrNotFound)
		}
		from = s.Orders[i].Status
		if err := order.Advance(&s.Orders[i], to); err != nil {
			return err
		}
		out = s.Orders[i].Clone()
		return nil
	})
	if err != nil {
		e.logger.Warn("status change rejected", zap.String("order_id", id), zap.String("to", string(to)), zap.Error(err))
		return order.Order{}, err
	}
	e.logger.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return out, nil
}

// ConfirmProduction moves a Pending order into Production.
func (e *Engine) ConfirmProduction(ctx context.Context, id string) (order.Order, error) {
	return e.Advance(ctx, id, order.StatusProduction)
}

// MarkShipped moves a Production order to Completed.
func (e *Engine) MarkShipped(ctx context.Context, id string) (order.Order, error) {
	return e.Advance(ctx, id, order.StatusCompleted)
}
