package order

import (
	"context"

	"ecommerce-support-agent/internal/model"
)

// Store is the read-only relational interface for order-scoped lookups.
// Every method returns ErrOrderNotFound when the order id has no matching
// row; infrastructure failures are returned as-is and treated as fatal for
// the turn.
type Store interface {
	// OrderStatus returns the order with its status and milestone timestamps.
	OrderStatus(ctx context.Context, orderID string) (model.Order, error)
	// OrderDetails returns the full aggregate: items, customer location,
	// payments and reviews.
	OrderDetails(ctx context.Context, orderID string) (Details, error)
	// RefundCheck derives refund eligibility from order status and payments.
	RefundCheck(ctx context.Context, orderID string) (RefundResult, error)
	// Review returns the reviews left for the order, oldest first.
	Review(ctx context.Context, orderID string) ([]model.Review, error)
	// Items returns the order's line items with products and sellers
	// resolved where possible.
	Items(ctx context.Context, orderID string) ([]ItemDetail, error)
	// SellerInfo returns the distinct sellers that fulfilled the order.
	SellerInfo(ctx context.Context, orderID string) ([]model.Seller, error)
	// PaymentInfo returns the payment events for the order by sequential.
	PaymentInfo(ctx context.Context, orderID string) ([]model.Payment, error)
	// CustomerLocation returns the customer record that placed the order.
	CustomerLocation(ctx context.Context, orderID string) (model.Customer, error)
}
