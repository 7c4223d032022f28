package model

// Intent is one of the closed set of categories describing what the user wants.
type Intent string

const (
	IntentOrderStatus      Intent = "order_status"
	IntentOrderDetails     Intent = "order_details"
	IntentRefundCheck      Intent = "refund_check"
	IntentReviewLookup     Intent = "review_lookup"
	IntentItemBreakdown    Intent = "item_breakdown"
	IntentSellerInfo       Intent = "seller_info"
	IntentPaymentInfo      Intent = "payment_info"
	IntentCustomerLocation Intent = "customer_location"
	IntentFAQ              Intent = "faq"
	IntentUnknown          Intent = "unknown"
)

// Intents lists every classifiable intent except unknown, in a stable order
// usable as candidate labels for zero-shot classification.
var Intents = []Intent{
	IntentOrderStatus,
	IntentOrderDetails,
	IntentRefundCheck,
	IntentReviewLookup,
	IntentItemBreakdown,
	IntentSellerInfo,
	IntentPaymentInfo,
	IntentCustomerLocation,
	IntentFAQ,
}

// OrderScoped reports whether the intent requires an order id to answer.
func (i Intent) OrderScoped() bool {
	switch i {
	case IntentOrderStatus, IntentOrderDetails, IntentRefundCheck,
		IntentReviewLookup, IntentItemBreakdown, IntentSellerInfo,
		IntentPaymentInfo, IntentCustomerLocation:
		return true
	}
	return false
}

// Valid reports whether the intent belongs to the closed set.
func (i Intent) Valid() bool {
	if i == IntentUnknown {
		return true
	}
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}
