package order

import "fmt"

// Advance moves o to status to. Only the single forward step from the
// current status is legal; anything else leaves o untouched.
func Advance(o *Order, to Status) error {
	next, ok := o.Status.Next()
	if !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, to)
	}
	o.Status = to
	return nil
}

// ConfirmProduction is the admin "confirm production" action.
func ConfirmProduction(o *Order) error { return Advance(o, StatusProduction) }

// MarkShipped is the admin "mark shipped" action.
func MarkShipped(o *Order) error { return Advance(o, StatusCompleted) }
