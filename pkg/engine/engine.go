// Package engine is the pricing-and-ordering core. It owns the session's
// five stores plus the open carts, and serializes every access through a
// memstore goroutine.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wholesale/pkg/cart"
	"wholesale/pkg/catalog"
	"wholesale/pkg/customer"
	"wholesale/pkg/order"
	"wholesale/pkg/pricing"
	"wholesale/pkg/router"
	"wholesale/pkg/seed"
	"wholesale/pkg/storage/memstore"
	"wholesale/pkg/views"
)

// DefaultDeliveryLeadDays is how far ahead a submission is scheduled when
// no delivery date is given.
const DefaultDeliveryLeadDays = 2

// State is everything the session owns.
type State struct {
	Products  []catalog.Product
	Customers []customer.Customer
	Overrides pricing.Table
	Orders    []order.Order
	View      router.State
	Routes    router.Table
	Carts     map[string]*cart.Cart
}

// clone deep-copies the stores. Carts are not part of shared snapshots.
func (s *State) clone() State {
	routes := make(router.Table, len(s.Routes))
	for cid, surface := range s.Routes {
		routes[cid] = surface
	}
	return State{
		Products:  catalog.Clone(s.Products),
		Customers: customer.Clone(s.Customers),
		Overrides: s.Overrides.Clone(),
		Orders:    order.CloneAll(s.Orders),
		View:      s.View,
		Routes:    routes,
	}
}

// Options tune an Engine. The zero value is usable.
type Options struct {
	Logger     *zap.Logger
	Now        func() time.Time
	Forecaster views.Forecaster
	// DeliveryLeadDays of zero selects DefaultDeliveryLeadDays.
	DeliveryLeadDays int
	Timeout          time.Duration
}

// Engine is the session service used by every surface.
type Engine struct {
	store    *memstore.Store[State]
	logger   *zap.Logger
	now      func() time.Time
	forecast views.Forecaster
	leadDays int
	ids      *order.IDGenerator
}

// New starts an engine over data.
func New(data seed.Data, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Forecaster == nil {
		opts.Forecaster = views.NewSyntheticForecaster(nil)
	}
	if opts.DeliveryLeadDays <= 0 {
		opts.DeliveryLeadDays = DefaultDeliveryLeadDays
	}
	if data.Overrides == nil {
		data.Overrides = pricing.Table{}
	}
	if data.Routes == nil {
		data.Routes = router.Table{}
	}
	initial := State{
		Products:  catalog.Clone(data.Products),
		Customers: customer.Clone(data.Customers),
		Overrides: data.Overrides.Clone(),
		Orders:    order.CloneAll(data.Orders),
		View:      router.Welcome(),
		Routes:    data.Routes,
		Carts:     make(map[string]*cart.Cart),
	}
	return &Engine{
		store:    memstore.New(initial, opts.Timeout),
		logger:   opts.Logger,
		now:      opts.Now,
		forecast: opts.Forecaster,
		leadDays: opts.DeliveryLeadDays,
		ids:      order.NewIDGenerator(opts.Now),
	}
}

// Close stops the store goroutine.
func (e *Engine) Close() {
	e.store.Close()
}

// snapshot copies the stores out so projections can be computed without
// holding the store goroutine.
func (e *Engine) snapshot(ctx context.Context) (State, error) {
	var snap State
	err := e.store.Do(ctx, func(s *State) error {
		snap = s.clone()
		return nil
	})
	return snap, err
}
