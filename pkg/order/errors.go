package order

import "errors"

var (
	// ErrEmptyCart rejects a submission without submittable lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingCustomer rejects an on-behalf submission with no customer selected.
	ErrMissingCustomer = errors.New("no customer selected")
	// ErrUnknownCustomer rejects a submission for a customer id not in the store.
	ErrUnknownCustomer = errors.New("unknown customer")
	// ErrUnknownProduct rejects a cart line whose product left the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrHiddenProduct rejects a customer's own submission of a product
	// their catalog does not show.
	ErrHiddenProduct = errors.New("product not available to customer")
	// ErrIllegalTransition rejects any status change other than the next step.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrNotFound is returned when no order has the requested id.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidDate rejects delivery dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid delivery date")
)
