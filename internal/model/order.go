package model

import "time"

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusCreated     OrderStatus = "created"
	OrderStatusApproved    OrderStatus = "approved"
	OrderStatusInvoice     OrderStatus = "invoice"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCanceled    OrderStatus = "canceled"
	OrderStatusUnavailable OrderStatus = "unavailable"
)

// PaymentType is the payment method recorded for a payment event.
type PaymentType string

const (
	PaymentTypeCreditCard PaymentType = "credit_card"
	PaymentTypeBoleto     PaymentType = "boleto"
	PaymentTypeVoucher    PaymentType = "voucher"
	PaymentTypeDebitCard  PaymentType = "debit_card"
	PaymentTypeNotDefined PaymentType = "not_defined"
)

// Order is the root aggregate for structured lookups.
// A nil timestamp means that milestone has not occurred; present timestamps
// are non-decreasing in the order purchase, approved, carrier, customer.
type Order struct {
	OrderID               string
	CustomerID            string
	Status                OrderStatus
	PurchaseTimestamp     time.Time
	ApprovedAt            *time.Time
	DeliveredCarrierDate  *time.Time
	DeliveredCustomerDate *time.Time
	EstimatedDeliveryDate time.Time
}

// Customer is the account record that placed an order. UniqueID may alias
// multiple CustomerIDs belonging to the same physical person.
type Customer struct {
	CustomerID    string
	UniqueID      string
	ZipCodePrefix int
	City          string
	State         string
}

// OrderItem is a line item of an order, keyed by (OrderID, Sequence).
type OrderItem struct {
	OrderID      string
	Sequence     int
	ProductID    string
	SellerID     string
	Price        float64
	FreightValue float64
}

// Product describes a purchasable product. Category is empty when the
// source row has no category recorded.
type Product struct {
	ProductID       string
	Category        string
	CategoryEnglish string
}

// Seller is the merchant that fulfilled an order item.
type Seller struct {
	SellerID      string
	ZipCodePrefix int
	City          string
	State         string
}

// Payment is a single payment event; split payments produce several rows
// ordered by Sequential.
type Payment struct {
	OrderID      string
	Sequential   int
	Type         PaymentType
	Installments int
	Value        float64
}

// Review is a customer review for an order. The schema permits several per
// order although one is the common case.
type Review struct {
	ReviewID        string
	OrderID         string
	Score           int // 1-5
	CommentTitle    string
	CommentMessage  string
	CreationDate    time.Time
	AnswerTimestamp time.Time
}
