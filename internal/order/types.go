package order

import "ecommerce-support-agent/internal/model"

// ItemDetail is a line item with its product and seller resolved. A nil
// Product or Seller marks an unresolved reference; items are never dropped
// because a reference failed to resolve.
type ItemDetail struct {
	Item    model.OrderItem
	Product *model.Product
	Seller  *model.Seller
}

// Details aggregates everything known about one order.
type Details struct {
	Order    model.Order
	Customer model.Customer
	Items    []ItemDetail
	Payments []model.Payment
	Reviews  []model.Review
}

// RefundResult is a computed classification, not a stored field: an order is
// considered refund-eligible when its status is canceled and payments were
// recorded against it.
type RefundResult struct {
	OrderID      string
	Status       model.OrderStatus
	Eligible     bool
	PaymentCount int
	PaymentTotal float64
	Basis        string
}
