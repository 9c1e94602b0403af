package views

import (
	"strconv"
	"strings"

	"wholesale/pkg/customer"
)

// SearchCustomers matches query case-insensitively as a substring of the
// name, the decimal id or the address. The query is not trimmed, so
// whitespace is matched literally. An empty query returns everyone in
// insertion order.
func SearchCustomers(customers []customer.Customer, query string) []customer.Customer {
	q := strings.ToLower(query)
	out := make([]customer.Customer, 0, len(customers))
	for _, c := range customers {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strconv.FormatInt(c.ID, 10), q) ||
			strings.Contains(strings.ToLower(c.Address), q) {
			out = append(out, c)
		}
	}
	return out
}
