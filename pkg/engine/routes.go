package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wholesale/pkg/customer"
	"wholesale/pkg/router"
)

// Route is the current view state and the surface it selects.
type Route struct {
	State   router.State   `json:"state"`
	Route   string         `json:"route"`
	Surface router.Surface `json:"surface"`
	Console bool           `json:"console"`
}

func (s *State) route() Route {
	return Route{
		State:   s.View,
		Route:   s.View.String(),
		Surface: s.Routes.Surface(s.View),
		Console: s.View.ShowsConsole(),
	}
}

// CurrentRoute reports the active view state.
func (e *Engine) CurrentRoute(ctx context.Context) (Route, error) {
	var out Route
	err := e.store.Do(ctx, func(s *State) error {
		out = s.route()
		return nil
	})
	return out, err
}

// Navigate switches the view state. Client routes must name an existing
// customer; the customer's mode is not consulted.
func (e *Engine) Navigate(ctx context.Context, route string) (Route, error) {
	next, err := router.Parse(route)
	if err != nil {
		return Route{}, err
	}
	var out Route
	err = e.store.Do(ctx, func(s *State) error {
		if next.Kind == router.KindClient {
			if _, ok := customer.Find(s.Customers, next.CustomerID); !ok {
				return fmt.Errorf("customer %d: %w", next.CustomerID, customer.ErrNotFound)
			}
		}
		s.View = next
		out = s.route()
		return nil
	})
	if err != nil {
		return Route{}, err
	}
	e.logger.Debug("view changed", zap.String("route", out.Route), zap.String("surface", string(out.Surface)))
	return out, nil
}
