package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/internal/order"
)

const orderColumns = `order_id, customer_id, order_status, order_purchase_timestamp,
	order_approved_at, order_delivered_carrier_date, order_delivered_customer_date,
	order_estimated_delivery_date`

// OrderStatus returns the order row with its status and milestone timestamps.
func (s *implStore) OrderStatus(ctx context.Context, orderID string) (model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM olist_orders_dataset WHERE order_id = ?`, orderColumns)

	var row orderRow
	err := s.db.GetContext(ctx, &row, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, order.ErrOrderNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("OrderStatus"), err)
		return model.Order{}, fmt.Errorf("query order: %w", err)
	}
	return row.toModel(), nil
}

// CustomerLocation returns the customer record behind the order.
func (s *implStore) CustomerLocation(ctx context.Context, orderID string) (model.Customer, error) {
	const query = `
		SELECT c.customer_id, c.customer_unique_id, c.customer_zip_code_prefix,
		       c.customer_city, c.customer_state
		FROM olist_orders_dataset o
		JOIN olist_customers_dataset c ON c.customer_id = o.customer_id
		WHERE o.order_id = ?`

	var row customerRow
	err := s.db.GetContext(ctx, &row, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, order.ErrOrderNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("CustomerLocation"), err)
		return model.Customer{}, fmt.Errorf("query customer: %w", err)
	}
	return row.toModel(), nil
}

// Items returns the order's line items with products and sellers resolved.
// Anchoring on the orders table distinguishes a missing order (zero rows)
// from an order with no items (one row of NULL item columns).
func (s *implStore) Items(ctx context.Context, orderID string) ([]order.ItemDetail, error) {
	const query = `
		SELECT i.order_id, i.order_item_id, i.product_id, i.seller_id, i.price, i.freight_value,
		       p.product_id AS p_id, p.product_category_name, t.product_category_name_english,
		       s.seller_id AS s_id, s.seller_zip_code_prefix, s.seller_city, s.seller_state
		FROM olist_orders_dataset o
		LEFT JOIN olist_order_items_dataset i ON i.order_id = o.order_id
		LEFT JOIN olist_products_dataset p ON p.product_id = i.product_id
		LEFT JOIN product_category_name_translation t ON t.product_category_name = p.product_category_name
		LEFT JOIN olist_sellers_dataset s ON s.seller_id = i.seller_id
		WHERE o.order_id = ?
		ORDER BY i.order_item_id`

	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("Items"), err)
		return nil, fmt.Errorf("query items: %w", err)
	}
	if len(rows) == 0 {
		return nil, order.ErrOrderNotFound
	}

	items := make([]order.ItemDetail, 0, len(rows))
	for _, r := range rows {
		if !r.present() {
			continue
		}
		items = append(items, r.toDetail())
	}
	return items, nil
}

// PaymentInfo returns the order's payment events ordered by sequential.
func (s *implStore) PaymentInfo(ctx context.Context, orderID string) ([]model.Payment, error) {
	const query = `
		SELECT p.payment_sequential, p.payment_type, p.payment_installments, p.payment_value
		FROM olist_orders_dataset o
		LEFT JOIN olist_order_payments_dataset p ON p.order_id = o.order_id
		WHERE o.order_id = ?
		ORDER BY p.payment_sequential`

	var rows []paymentRow
	if err := s.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("PaymentInfo"), err)
		return nil, fmt.Errorf("query payments: %w", err)
	}
	if len(rows) == 0 {
		return nil, order.ErrOrderNotFound
	}

	payments := make([]model.Payment, 0, len(rows))
	for _, r := range rows {
		if !r.present() {
			continue
		}
		payments = append(payments, r.toModel(orderID))
	}
	return payments, nil
}

// Review returns the reviews left for the order, oldest first.
func (s *implStore) Review(ctx context.Context, orderID string) ([]model.Review, error) {
	const query = `
		SELECT r.review_id, r.review_score, r.review_comment_title, r.review_comment_message,
		       r.review_creation_date, r.review_answer_timestamp
		FROM olist_orders_dataset o
		LEFT JOIN olist_order_reviews_dataset r ON r.order_id = o.order_id
		WHERE o.order_id = ?
		ORDER BY r.review_creation_date`

	var rows []reviewRow
	if err := s.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("Review"), err)
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	if len(rows) == 0 {
		return nil, order.ErrOrderNotFound
	}

	reviews := make([]model.Review, 0, len(rows))
	for _, r := range rows {
		if !r.present() {
			continue
		}
		reviews = append(reviews, r.toModel(orderID))
	}
	return reviews, nil
}

// SellerInfo returns the distinct sellers that fulfilled the order.
func (s *implStore) SellerInfo(ctx context.Context, orderID string) ([]model.Seller, error) {
	const query = `
		SELECT DISTINCT s.seller_id, s.seller_zip_code_prefix, s.seller_city, s.seller_state
		FROM olist_orders_dataset o
		LEFT JOIN olist_order_items_dataset i ON i.order_id = o.order_id
		LEFT JOIN olist_sellers_dataset s ON s.seller_id = i.seller_id
		WHERE o.order_id = ?`

	var rows []sellerRow
	if err := s.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("SellerInfo"), err)
		return nil, fmt.Errorf("query sellers: %w", err)
	}
	if len(rows) == 0 {
		return nil, order.ErrOrderNotFound
	}

	sellers := make([]model.Seller, 0, len(rows))
	for _, r := range rows {
		if !r.present() {
			continue
		}
		sellers = append(sellers, r.toModel())
	}
	return sellers, nil
}

// RefundCheck derives refund eligibility from order status and payments.
// There is no stored refund flag in the schema.
func (s *implStore) RefundCheck(ctx context.Context, orderID string) (order.RefundResult, error) {
	const query = `
		SELECT o.order_status,
		       COUNT(p.payment_sequential) AS payment_count,
		       COALESCE(SUM(p.payment_value), 0) AS payment_total
		FROM olist_orders_dataset o
		LEFT JOIN olist_order_payments_dataset p ON p.order_id = o.order_id
		WHERE o.order_id = ?
		GROUP BY o.order_id, o.order_status`

	var row struct {
		Status       string  `db:"order_status"`
		PaymentCount int     `db:"payment_count"`
		PaymentTotal float64 `db:"payment_total"`
	}
	err := s.db.GetContext(ctx, &row, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return order.RefundResult{}, order.ErrOrderNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("RefundCheck"), err)
		return order.RefundResult{}, fmt.Errorf("query refund basis: %w", err)
	}

	status := model.OrderStatus(row.Status)
	return order.RefundResult{
		OrderID:      orderID,
		Status:       status,
		Eligible:     status == model.OrderStatusCanceled && row.PaymentCount > 0,
		PaymentCount: row.PaymentCount,
		PaymentTotal: row.PaymentTotal,
		Basis:        "derived from order status and recorded payments",
	}, nil
}

// OrderDetails joins the full aggregate in one query and dedupes the row
// explosion (items x payments x reviews) by each entity's key.
func (s *implStore) OrderDetails(ctx context.Context, orderID string) (order.Details, error) {
	const query = `
		SELECT o.order_id, o.customer_id, o.order_status, o.order_purchase_timestamp,
		       o.order_approved_at, o.order_delivered_carrier_date, o.order_delivered_customer_date,
		       o.order_estimated_delivery_date,
		       c.customer_unique_id, c.customer_zip_code_prefix, c.customer_city, c.customer_state,
		       i.order_item_id, i.product_id, i.seller_id, i.price, i.freight_value,
		       p.product_id AS p_id, p.product_category_name, t.product_category_name_english,
		       s.seller_id AS s_id, s.seller_zip_code_prefix, s.seller_city, s.seller_state,
		       pay.payment_sequential, pay.payment_type, pay.payment_installments, pay.payment_value,
		       r.review_id, r.review_score, r.review_comment_title, r.review_comment_message,
		       r.review_creation_date, r.review_answer_timestamp
		FROM olist_orders_dataset o
		JOIN olist_customers_dataset c ON c.customer_id = o.customer_id
		LEFT JOIN olist_order_items_dataset i ON i.order_id = o.order_id
		LEFT JOIN olist_products_dataset p ON p.product_id = i.product_id
		LEFT JOIN product_category_name_translation t ON t.product_category_name = p.product_category_name
		LEFT JOIN olist_sellers_dataset s ON s.seller_id = i.seller_id
		LEFT JOIN olist_order_payments_dataset pay ON pay.order_id = o.order_id
		LEFT JOIN olist_order_reviews_dataset r ON r.order_id = o.order_id
		WHERE o.order_id = ?
		ORDER BY i.order_item_id, pay.payment_sequential, r.review_creation_date`

	type detailRow struct {
		orderRow
		UniqueID      string `db:"customer_unique_id"`
		ZipCodePrefix int    `db:"customer_zip_code_prefix"`
		City          string `db:"customer_city"`
		State         string `db:"customer_state"`
		Item          itemRow
		Payment       paymentRow
		Review        reviewRow
	}

	rows, err := s.db.QueryxContext(ctx, query, orderID)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("OrderDetails"), err)
		return order.Details{}, fmt.Errorf("query details: %w", err)
	}
	defer rows.Close()

	var (
		details   order.Details
		found     bool
		seenItems = map[int]bool{}
		seenPays  = map[int]bool{}
		seenRevs  = map[string]bool{}
	)
	for rows.Next() {
		var dr detailRow
		if err := rows.Scan(
			&dr.orderRow.OrderID, &dr.orderRow.CustomerID, &dr.orderRow.Status,
			&dr.orderRow.PurchaseTimestamp, &dr.orderRow.ApprovedAt,
			&dr.orderRow.DeliveredCarrierDate, &dr.orderRow.DeliveredCustomerDate,
			&dr.orderRow.EstimatedDeliveryDate,
			&dr.UniqueID, &dr.ZipCodePrefix, &dr.City, &dr.State,
			&dr.Item.Sequence, &dr.Item.ProductID, &dr.Item.SellerID,
			&dr.Item.Price, &dr.Item.FreightValue,
			&dr.Item.ResolvedProduct, &dr.Item.Category, &dr.Item.CategoryEnglish,
			&dr.Item.ResolvedSeller, &dr.Item.SellerZip, &dr.Item.SellerCity, &dr.Item.SellerState,
			&dr.Payment.Sequential, &dr.Payment.Type, &dr.Payment.Installments, &dr.Payment.Value,
			&dr.Review.ReviewID, &dr.Review.Score, &dr.Review.CommentTitle,
			&dr.Review.CommentMessage, &dr.Review.CreationDate, &dr.Review.AnswerTimestamp,
		); err != nil {
			s.l.Errorf(ctx, "%s scan: %v", s.dsn("OrderDetails"), err)
			return order.Details{}, fmt.Errorf("scan details: %w", err)
		}

		if !found {
			details.Order = dr.orderRow.toModel()
			details.Customer = model.Customer{
				CustomerID:    dr.orderRow.CustomerID,
				UniqueID:      dr.UniqueID,
				ZipCodePrefix: dr.ZipCodePrefix,
				City:          dr.City,
				State:         dr.State,
			}
			found = true
		}
		if dr.Item.present() && !seenItems[int(dr.Item.Sequence.Int64)] {
			seenItems[int(dr.Item.Sequence.Int64)] = true
			dr.Item.OrderID = sql.NullString{String: orderID, Valid: true}
			details.Items = append(details.Items, dr.Item.toDetail())
		}
		if dr.Payment.present() && !seenPays[int(dr.Payment.Sequential.Int64)] {
			seenPays[int(dr.Payment.Sequential.Int64)] = true
			details.Payments = append(details.Payments, dr.Payment.toModel(orderID))
		}
		if dr.Review.present() && !seenRevs[dr.Review.ReviewID.String] {
			seenRevs[dr.Review.ReviewID.String] = true
			details.Reviews = append(details.Reviews, dr.Review.toModel(orderID))
		}
	}
	if err := rows.Err(); err != nil {
		s.l.Errorf(ctx, "%s rows: %v", s.dsn("OrderDetails"), err)
		return order.Details{}, fmt.Errorf("iterate details: %w", err)
	}
	if !found {
		return order.Details{}, order.ErrOrderNotFound
	}
	return details, nil
}
