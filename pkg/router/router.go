// Package router holds the single discriminated view state that decides
// which surface is operating over the shared stores.
package router

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Surface names the presentation surface in use.
type Surface string

const (
	SurfaceWelcome       Surface = "welcome"
	SurfaceClientMobile  Surface = "client-mobile"
	SurfaceClientDesktop Surface = "client-desktop"
	SurfaceAdmin         Surface = "admin"
)

// Kind is the discriminant of State.
type Kind string

const (
	KindWelcome Kind = "welcome"
	KindClient  Kind = "client"
	KindAdmin   Kind = "admin"
)

// ErrUnknownRoute is returned for route strings the router does not serve.
var ErrUnknownRoute = errors.New("unknown route")

// State is {welcome} | {client, customer_id} | {admin}. CustomerID is only
// meaningful for KindClient.
type State struct {
	Kind       Kind  `json:"kind"`
	CustomerID int64 `json:"customer_id,omitempty"`
}

// Welcome is the initial state.
func Welcome() State { return State{Kind: KindWelcome} }

// Admin is the administrator state.
func Admin() State { return State{Kind: KindAdmin} }

// Client is a customer session.
func Client(customerID int64) State { return State{Kind: KindClient, CustomerID: customerID} }

// Table maps client routes to the surface style. The customer's own mode
// field is never consulted; the route alone decides.
type Table map[int64]Surface

// DefaultTable is the seed routing: client-101 is mobile, client-102 desktop.
func DefaultTable() Table {
	return Table{101: SurfaceClientMobile, 102: SurfaceClientDesktop}
}

// Parse turns a route string ("welcome", "admin", "client-<id>") into a State.
func Parse(route string) (State, error) {
	route = strings.TrimSpace(route)
	switch route {
	case "", string(KindWelcome):
		return Welcome(), nil
	case string(KindAdmin):
		return Admin(), nil
	}
	rawID, ok := strings.CutPrefix(route, "client-")
	if !ok {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	return Client(id), nil
}

// String renders the state back into its route string.
func (s State) String() string {
	switch s.Kind {
	case KindClient:
		return "client-" + strconv.FormatInt(s.CustomerID, 10)
	case KindAdmin:
		return string(KindAdmin)
	default:
		return string(KindWelcome)
	}
}

// Surface resolves the surface for s. Client routes missing from t get the
// desktop surface.
func (t Table) Surface(s State) Surface {
	switch s.Kind {
	case KindAdmin:
		return SurfaceAdmin
	case KindClient:
		if surface, ok := t[s.CustomerID]; ok {
			return surface
		}
		return SurfaceClientDesktop
	default:
		return SurfaceWelcome
	}
}

// ShowsConsole reports whether the compact demo console is shown, which is
// on every screen except welcome.
func (s State) ShowsConsole() bool { return s.Kind != KindWelcome }
