package customer

import (
	"errors"
	"fmt"
	"strings"

	"wholesale/pkg/validation"
)

// ErrNotFound is returned when no customer has the requested id.
var ErrNotFound = errors.New("customer not found")

var (
	knownTypes   = []Type{TypeChain, TypeSupermarket, TypeIndividual}
	knownBilling = []Billing{BillingNet30, BillingNet60, BillingCash}
)

// Validate checks the new-customer form. Name and address are required;
// type, billing and mode must come from their closed sets when given.
func Validate(c Customer) error {
	var errs validation.Errors
	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", "name is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		errs.Add("address", "address is required")
	}
	if c.Type != "" && !contains(knownTypes, c.Type) {
		errs.Add("type", fmt.Sprintf("unknown customer type %q", c.Type))
	}
	if c.Billing != "" && !contains(knownBilling, c.Billing) {
		errs.Add("billing", fmt.Sprintf("unknown billing terms %q", c.Billing))
	}
	if c.Mode != "" && c.Mode != ModeMobile && c.Mode != ModeDesktop {
		errs.Add("mode", fmt.Sprintf("unknown mode %q", c.Mode))
	}
	return errs.Err()
}

// NextID returns max(existing)+1, starting at FirstID.
func NextID(customers []Customer) int64 {
	max := FirstID - 1
	for _, c := range customers {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// Create validates c, fills defaults and appends it with the next id.
func Create(customers []Customer, c Customer) ([]Customer, Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	if c.Type == "" {
		c.Type = TypeChain
	}
	if c.Billing == "" {
		c.Billing = BillingNet30
	}
	if c.Mode == "" {
		c.Mode = ModeDesktop
	}
	if err := Validate(c); err != nil {
		return customers, Customer{}, err
	}
	c.ID = NextID(customers)
	return append(customers, c), c, nil
}

// Find looks a customer up by id.
func Find(customers []Customer, id int64) (Customer, bool) {
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// Clone duplicates the slice for safe sharing.
func Clone(src []Customer) []Customer {
	out := make([]Customer, len(src))
	copy(out, src)
	return out
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
