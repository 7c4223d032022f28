package usecase

import (
	"strings"
	"testing"
	"time"

	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/internal/order"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComposeStatus(t *testing.T) {
	delivered := date(2018, time.February, 10)
	carrier := date(2018, time.February, 2)
	estimated := date(2018, time.February, 20)

	t.Run("delivered order names the delivery date", func(t *testing.T) {
		got := composeStatus(model.Order{
			OrderID:               existingOrder,
			Status:                model.OrderStatusDelivered,
			DeliveredCustomerDate: &delivered,
			EstimatedDeliveryDate: estimated,
		})
		if !strings.Contains(got, "delivered") {
			t.Errorf("expected delivered status in %q", got)
		}
		if !strings.Contains(got, "February 10, 2018") {
			t.Errorf("expected delivery date in %q", got)
		}
	})

	t.Run("shipped order names carrier handoff and estimate", func(t *testing.T) {
		got := composeStatus(model.Order{
			OrderID:               existingOrder,
			Status:                model.OrderStatusShipped,
			DeliveredCarrierDate:  &carrier,
			EstimatedDeliveryDate: estimated,
		})
		if !strings.Contains(got, "February 2, 2018") || !strings.Contains(got, "February 20, 2018") {
			t.Errorf("expected carrier and estimate dates in %q", got)
		}
	})

	t.Run("pre-shipment order falls back to the estimate", func(t *testing.T) {
		got := composeStatus(model.Order{
			OrderID:               existingOrder,
			Status:                model.OrderStatusProcessing,
			EstimatedDeliveryDate: estimated,
		})
		if !strings.Contains(got, "Estimated delivery is February 20, 2018") {
			t.Errorf("expected estimate in %q", got)
		}
	})
}

func TestComposeRefund(t *testing.T) {
	t.Run("canceled with payments is eligible", func(t *testing.T) {
		got := composeRefund(order.RefundResult{
			OrderID:      existingOrder,
			Status:       model.OrderStatusCanceled,
			Eligible:     true,
			PaymentCount: 2,
			PaymentTotal: 150.40,
		})
		if !strings.Contains(got, "qualifies for a refund") {
			t.Errorf("expected eligible wording in %q", got)
		}
		if !strings.Contains(got, "R$150.40") {
			t.Errorf("expected payment total in %q", got)
		}
	})

	t.Run("canceled without payments has nothing to refund", func(t *testing.T) {
		got := composeRefund(order.RefundResult{
			OrderID: existingOrder,
			Status:  model.OrderStatusCanceled,
		})
		if !strings.Contains(got, "nothing to refund") {
			t.Errorf("expected nothing-to-refund wording in %q", got)
		}
	})

	t.Run("delivered order is not eligible", func(t *testing.T) {
		got := composeRefund(order.RefundResult{
			OrderID:      existingOrder,
			Status:       model.OrderStatusDelivered,
			PaymentCount: 1,
			PaymentTotal: 80,
		})
		if !strings.Contains(got, "does not qualify") {
			t.Errorf("expected not-eligible wording in %q", got)
		}
	})
}

func TestComposeItems(t *testing.T) {
	t.Run("resolved category renders in plain words", func(t *testing.T) {
		got := composeItems(existingOrder, []order.ItemDetail{
			{
				Item:    model.OrderItem{Sequence: 1, Price: 29.90, FreightValue: 8.72},
				Product: &model.Product{ProductID: "p1", CategoryEnglish: "cool_stuff"},
			},
		})
		if !strings.Contains(got, "cool stuff") {
			t.Errorf("expected underscores replaced in %q", got)
		}
		if !strings.Contains(got, "R$29.90") {
			t.Errorf("expected item price in %q", got)
		}
	})

	t.Run("unresolved product is marked, not dropped", func(t *testing.T) {
		got := composeItems(existingOrder, []order.ItemDetail{
			{Item: model.OrderItem{Sequence: 1, Price: 10}},
		})
		if !strings.Contains(got, "unlisted product") {
			t.Errorf("expected unresolved marker in %q", got)
		}
	})

	t.Run("no items", func(t *testing.T) {
		got := composeItems(existingOrder, nil)
		if !strings.Contains(got, "no line items") {
			t.Errorf("expected empty wording in %q", got)
		}
	})
}

func TestPaymentSummary(t *testing.T) {
	t.Run("installments", func(t *testing.T) {
		got := paymentSummary([]model.Payment{
			{Type: model.PaymentTypeCreditCard, Installments: 3, Value: 120},
		})
		if got != "credit card in 3 installments" {
			t.Errorf("unexpected summary %q", got)
		}
	})

	t.Run("split payment", func(t *testing.T) {
		got := paymentSummary([]model.Payment{
			{Type: model.PaymentTypeCreditCard, Installments: 1, Value: 100},
			{Type: model.PaymentTypeVoucher, Installments: 1, Value: 20},
		})
		if got != "credit card + voucher" {
			t.Errorf("unexpected summary %q", got)
		}
	})
}
