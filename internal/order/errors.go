package order

import "errors"

var (
	// ErrOrderNotFound is the business outcome for an order id with no
	// matching row. It is never wrapped around infrastructure failures.
	ErrOrderNotFound = errors.New("order not found")
)
