package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecommerce-support-agent/internal/faq"
	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/internal/order"
	"ecommerce-support-agent/pkg/openai"
)

const dateLayout = "January 2, 2006"

func composeStatus(o model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s is currently %s.", o.OrderID, o.Status)
	switch {
	case o.DeliveredCustomerDate != nil:
		fmt.Fprintf(&b, " It was delivered on %s.", o.DeliveredCustomerDate.Format(dateLayout))
	case o.DeliveredCarrierDate != nil:
		fmt.Fprintf(&b, " It was handed to the carrier on %s and is estimated to arrive by %s.",
			o.DeliveredCarrierDate.Format(dateLayout), o.EstimatedDeliveryDate.Format(dateLayout))
	case !o.EstimatedDeliveryDate.IsZero():
		fmt.Fprintf(&b, " Estimated delivery is %s.", o.EstimatedDeliveryDate.Format(dateLayout))
	}
	return b.String()
}

func composeDetails(d order.Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is what I found for order %s: status %s, placed on %s by a customer in %s, %s.",
		d.Order.OrderID, d.Order.Status, d.Order.PurchaseTimestamp.Format(dateLayout),
		d.Customer.City, d.Customer.State)
	if len(d.Items) > 0 {
		fmt.Fprintf(&b, " It contains %d item(s) totalling %s.", len(d.Items), formatMoney(itemsTotal(d.Items)))
	}
	if len(d.Payments) > 0 {
		fmt.Fprintf(&b, " Paid via %s.", paymentSummary(d.Payments))
	}
	if len(d.Reviews) > 0 {
		fmt.Fprintf(&b, " The customer rated it %d/5.", d.Reviews[0].Score)
	}
	return b.String()
}

func composeRefund(r order.RefundResult) string {
	if r.Eligible {
		return fmt.Sprintf(
			"Order %s was canceled with %d payment(s) totalling %s on record, so it qualifies for a refund. The amount will be returned to the original payment method.",
			r.OrderID, r.PaymentCount, formatMoney(r.PaymentTotal))
	}
	if r.Status == model.OrderStatusCanceled {
		return fmt.Sprintf(
			"Order %s was canceled before any payment was captured, so there is nothing to refund.",
			r.OrderID)
	}
	return fmt.Sprintf(
		"Order %s is %s, which does not qualify for an automatic refund. If something is wrong with the order, reply here and we can look into it.",
		r.OrderID, r.Status)
}

func composeReviews(orderID string, reviews []model.Review) string {
	if len(reviews) == 0 {
		return fmt.Sprintf("No review has been left for order %s yet.", orderID)
	}
	r := reviews[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s was rated %d/5", orderID, r.Score)
	if r.CommentMessage != "" {
		fmt.Fprintf(&b, " with the comment: %q", r.CommentMessage)
	}
	b.WriteString(".")
	if len(reviews) > 1 {
		fmt.Fprintf(&b, " There are %d reviews in total.", len(reviews))
	}
	return b.String()
}

func composeItems(orderID string, items []order.ItemDetail) string {
	if len(items) == 0 {
		return fmt.Sprintf("Order %s has no line items on record.", orderID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s contains %d item(s):", orderID, len(items))
	for _, it := range items {
		category := "uncategorized product"
		if it.Product != nil && it.Product.CategoryEnglish != "" {
			category = strings.ReplaceAll(it.Product.CategoryEnglish, "_", " ")
		} else if it.Product == nil {
			category = "unlisted product"
		}
		fmt.Fprintf(&b, " #%d %s at %s (freight %s);",
			it.Item.Sequence, category, formatMoney(it.Item.Price), formatMoney(it.Item.FreightValue))
	}
	return strings.TrimSuffix(b.String(), ";") + "."
}

func composeSellers(orderID string, sellers []model.Seller) string {
	if len(sellers) == 0 {
		return fmt.Sprintf("No seller information is on record for order %s.", orderID)
	}
	parts := make([]string, 0, len(sellers))
	for _, s := range sellers {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.City, s.State))
	}
	if len(sellers) == 1 {
		return fmt.Sprintf("Order %s was fulfilled by a seller based in %s.", orderID, parts[0])
	}
	return fmt.Sprintf("Order %s was fulfilled by %d sellers based in: %s.",
		orderID, len(sellers), strings.Join(parts, ", "))
}

func composePayments(orderID string, payments []model.Payment) string {
	if len(payments) == 0 {
		return fmt.Sprintf("No payment has been recorded for order %s.", orderID)
	}
	return fmt.Sprintf("Order %s was paid via %s, %s in total.",
		orderID, paymentSummary(payments), formatMoney(paymentsTotal(payments)))
}

func composeCustomer(orderID string, c model.Customer) string {
	return fmt.Sprintf("Order %s was placed from %s, %s (zip prefix %05d).",
		orderID, c.City, c.State, c.ZipCodePrefix)
}

func composeFAQ(match faq.Match) string {
	return match.Entry.Answer
}

func composeNotFound(orderID string) string {
	return fmt.Sprintf(msgOrderNotFound, orderID)
}

func itemsTotal(items []order.ItemDetail) float64 {
	var total float64
	for _, it := range items {
		total += it.Item.Price + it.Item.FreightValue
	}
	return total
}

func paymentsTotal(payments []model.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Value
	}
	return total
}

// paymentSummary renders "credit card in 3 installments" or
// "credit card + voucher" for split payments.
func paymentSummary(payments []model.Payment) string {
	if len(payments) == 1 {
		p := payments[0]
		name := strings.ReplaceAll(string(p.Type), "_", " ")
		if p.Installments > 1 {
			return fmt.Sprintf("%s in %d installments", name, p.Installments)
		}
		return name
	}
	parts := make([]string, 0, len(payments))
	for _, p := range payments {
		parts = append(parts, strings.ReplaceAll(string(p.Type), "_", " "))
	}
	return strings.Join(parts, " + ")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("R$%.2f", v)
}

const promptRephrase = `Rewrite the following customer support reply in a friendly, concise tone.
Keep every fact, number and id exactly as given. Do not add information.

%s`

// rephrase runs an optional best-effort LLM pass over the composed reply.
// Any failure returns the original text unchanged.
func (uc *implUseCase) rephrase(ctx context.Context, text string) string {
	if !uc.opts.RephraseEnabled || uc.rephraser == nil {
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := uc.rephraser.ChatCompletion(ctx, &openai.Request{
		Messages: []openai.Message{
			{Role: "user", Content: fmt.Sprintf(promptRephrase, text)},
		},
		Temperature: 0.7,
	})
	if err != nil || len(resp.Choices) == 0 {
		uc.l.Warnf(ctx, "chat usecase: rephrase failed, keeping composed reply: %v", err)
		return text
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return text
	}
	return out
}
