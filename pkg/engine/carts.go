package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wholesale/pkg/cart"
	"wholesale/pkg/catalog"
)

// ErrCartNotFound is returned for an unknown or discarded cart session.
var ErrCartNotFound = errors.New("cart not found")

// CartLine is a priced cart line as a surface renders it.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Glyph     string          `json:"glyph"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Missing   bool            `json:"missing,omitempty"`
}

// CartView is the priced projection of one cart session.
type CartView struct {
	ID         string           `json:"id"`
	CustomerID int64            `json:"customer_id"`
	Lines      []CartLine       `json:"lines"`
	Drafts     map[int64]string `json:"drafts,omitempty"`
	Count      int              `json:"count"`
	Total      decimal.Decimal  `json:"total"`
}

// NewCart opens an empty cart session and returns its id.
func (e *Engine) NewCart(ctx context.Context) (string, error) {
	id := uuid.NewString()
	err := e.store.Do(ctx, func(s *State) error {
		s.Carts[id] = cart.New()
		return nil
	})
	return id, err
}

// withCart runs fn against one cart on the store goroutine.
func (e *Engine) withCart(ctx context.Context, cartID string, fn func(s *State, c *cart.Cart) error) error {
	return e.store.Do(ctx, func(s *State) error {
		c, ok := s.Carts[cartID]
		if !ok {
			return fmt.Errorf("cart %s: %w", cartID, ErrCartNotFound)
		}
		return fn(s, c)
	})
}

// SetCartQuantity sets a line's quantity; q <= 0 removes the line.
func (e *Engine) SetCartQuantity(ctx context.Context, cartID string, productID int64, q int) error {
	return e.withCart(ctx, cartID, func(s *State, c *cart.Cart) error {
		if q > 0 {
			if _, ok := catalog.Find(s.Products, productID); !ok {
				return fmt.Errorf("product %d: %w", productID, catalog.ErrNotFound)
			}
		}
		c.SetQuantity(productID, q)
		return nil
	})
}

// AddToCart changes a line's quantity by delta.
func (e *Engine) AddToCart(ctx context.Context, cartID string, productID int64, delta int) error {
	return e.withCart(ctx, cartID, func(s *State, c *cart.Cart) error {
		if _, ok := catalog.Find(s.Products, productID); !ok && delta > 0 {
			return fmt.Errorf("product %d: %w", productID, catalog.ErrNotFound)
		}
		c.Add(productID, delta)
		return nil
	})
}

// SetCartNotes sets a line's notes keeping its quantity.
func (e *Engine) SetCartNotes(ctx context.Context, cartID string, productID int64, notes string) error {
	return e.withCart(ctx, cartID, func(_ *State, c *cart.Cart) error {
		c.SetNotes(productID, notes)
		return nil
	})
}

// ClearCart empties a cart but keeps the session open.
func (e *Engine) ClearCart(ctx context.Context, cartID string) error {
	return e.withCart(ctx, cartID, func(_ *State, c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// DiscardCart closes a cart session, as navigating away does.
func (e *Engine) DiscardCart(ctx context.Context, cartID string) error {
	return e.withCart(ctx, cartID, func(s *State, _ *cart.Cart) error {
		delete(s.Carts, cartID)
		return nil
	})
}

// Cart prices a cart session for customerID. A zero customerID prices at
// catalog base prices.
func (e *Engine) Cart(ctx context.Context, cartID string, customerID int64) (CartView, error) {
	var view CartView
	err := e.withCart(ctx, cartID, func(s *State, c *cart.Cart) error {
		view = priceCart(cartID, customerID, c, s)
		return nil
	})
	return view, err
}

func priceCart(cartID string, customerID int64, c *cart.Cart, s *State) CartView {
	view := CartView{
		ID:         cartID,
		CustomerID: customerID,
		Lines:      []CartLine{},
		Count:      c.Count(),
		Total:      c.Total(customerID, s.Products, s.Overrides),
	}
	lines := c.Lines()
	for _, pid := range c.ProductIDs() {
		line := lines[pid]
		cl := CartLine{ProductID: pid, Quantity: line.Quantity, Notes: line.Notes, UnitPrice: decimal.Zero, Subtotal: decimal.Zero}
		if p, ok := catalog.Find(s.Products, pid); ok {
			item := s.Overrides.Resolve(customerID, p)
			cl.Glyph = p.Glyph
			cl.Name = item.DisplayName
			cl.UnitPrice = item.Price
			cl.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		} else {
			cl.Missing = true
		}
		view.Lines = append(view.Lines, cl)
	}
	if drafts := c.Drafts(); len(drafts) > 0 {
		view.Drafts = make(map[int64]string, len(drafts))
		for pid, line := range drafts {
			view.Drafts[pid] = line.Notes
		}
	}
	return view
}
