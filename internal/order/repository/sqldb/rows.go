package sqldb

import (
	"database/sql"

	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/internal/order"
)

// Scan targets keep the nullable SQL shapes out of the domain model.

type orderRow struct {
	OrderID               string       `db:"order_id"`
	CustomerID            string       `db:"customer_id"`
	Status                string       `db:"order_status"`
	PurchaseTimestamp     sql.NullTime `db:"order_purchase_timestamp"`
	ApprovedAt            sql.NullTime `db:"order_approved_at"`
	DeliveredCarrierDate  sql.NullTime `db:"order_delivered_carrier_date"`
	DeliveredCustomerDate sql.NullTime `db:"order_delivered_customer_date"`
	EstimatedDeliveryDate sql.NullTime `db:"order_estimated_delivery_date"`
}

func (r orderRow) toModel() model.Order {
	o := model.Order{
		OrderID:    r.OrderID,
		CustomerID: r.CustomerID,
		Status:     model.OrderStatus(r.Status),
	}
	if r.PurchaseTimestamp.Valid {
		o.PurchaseTimestamp = r.PurchaseTimestamp.Time
	}
	if r.EstimatedDeliveryDate.Valid {
		o.EstimatedDeliveryDate = r.EstimatedDeliveryDate.Time
	}
	if r.ApprovedAt.Valid {
		t := r.ApprovedAt.Time
		o.ApprovedAt = &t
	}
	if r.DeliveredCarrierDate.Valid {
		t := r.DeliveredCarrierDate.Time
		o.DeliveredCarrierDate = &t
	}
	if r.DeliveredCustomerDate.Valid {
		t := r.DeliveredCustomerDate.Time
		o.DeliveredCustomerDate = &t
	}
	return o
}

type customerRow struct {
	CustomerID    string `db:"customer_id"`
	UniqueID      string `db:"customer_unique_id"`
	ZipCodePrefix int    `db:"customer_zip_code_prefix"`
	City          string `db:"customer_city"`
	State         string `db:"customer_state"`
}

func (r customerRow) toModel() model.Customer {
	return model.Customer{
		CustomerID:    r.CustomerID,
		UniqueID:      r.UniqueID,
		ZipCodePrefix: r.ZipCodePrefix,
		City:          r.City,
		State:         r.State,
	}
}

// itemRow is fully nullable: the anchoring LEFT JOIN from the orders table
// produces all-NULL item columns for an order with no line items.
type itemRow struct {
	OrderID         sql.NullString  `db:"order_id"`
	Sequence        sql.NullInt64   `db:"order_item_id"`
	ProductID       sql.NullString  `db:"product_id"`
	SellerID        sql.NullString  `db:"seller_id"`
	Price           sql.NullFloat64 `db:"price"`
	FreightValue    sql.NullFloat64 `db:"freight_value"`
	ResolvedProduct sql.NullString  `db:"p_id"`
	Category        sql.NullString  `db:"product_category_name"`
	CategoryEnglish sql.NullString  `db:"product_category_name_english"`
	ResolvedSeller  sql.NullString  `db:"s_id"`
	SellerZip       sql.NullInt64   `db:"seller_zip_code_prefix"`
	SellerCity      sql.NullString  `db:"seller_city"`
	SellerState     sql.NullString  `db:"seller_state"`
}

func (r itemRow) present() bool { return r.Sequence.Valid }

func (r itemRow) toDetail() order.ItemDetail {
	d := order.ItemDetail{
		Item: model.OrderItem{
			OrderID:      r.OrderID.String,
			Sequence:     int(r.Sequence.Int64),
			ProductID:    r.ProductID.String,
			SellerID:     r.SellerID.String,
			Price:        r.Price.Float64,
			FreightValue: r.FreightValue.Float64,
		},
	}
	if r.ResolvedProduct.Valid {
		d.Product = &model.Product{
			ProductID:       r.ResolvedProduct.String,
			Category:        r.Category.String,
			CategoryEnglish: r.CategoryEnglish.String,
		}
	}
	if r.ResolvedSeller.Valid {
		d.Seller = &model.Seller{
			SellerID:      r.ResolvedSeller.String,
			ZipCodePrefix: int(r.SellerZip.Int64),
			City:          r.SellerCity.String,
			State:         r.SellerState.String,
		}
	}
	return d
}

type paymentRow struct {
	Sequential   sql.NullInt64   `db:"payment_sequential"`
	Type         sql.NullString  `db:"payment_type"`
	Installments sql.NullInt64   `db:"payment_installments"`
	Value        sql.NullFloat64 `db:"payment_value"`
}

func (r paymentRow) present() bool { return r.Sequential.Valid }

func (r paymentRow) toModel(orderID string) model.Payment {
	return model.Payment{
		OrderID:      orderID,
		Sequential:   int(r.Sequential.Int64),
		Type:         model.PaymentType(r.Type.String),
		Installments: int(r.Installments.Int64),
		Value:        r.Value.Float64,
	}
}

type reviewRow struct {
	ReviewID        sql.NullString `db:"review_id"`
	Score           sql.NullInt64  `db:"review_score"`
	CommentTitle    sql.NullString `db:"review_comment_title"`
	CommentMessage  sql.NullString `db:"review_comment_message"`
	CreationDate    sql.NullTime   `db:"review_creation_date"`
	AnswerTimestamp sql.NullTime   `db:"review_answer_timestamp"`
}

func (r reviewRow) present() bool { return r.ReviewID.Valid }

func (r reviewRow) toModel(orderID string) model.Review {
	rev := model.Review{
		ReviewID:       r.ReviewID.String,
		OrderID:        orderID,
		Score:          int(r.Score.Int64),
		CommentTitle:   r.CommentTitle.String,
		CommentMessage: r.CommentMessage.String,
	}
	if r.CreationDate.Valid {
		rev.CreationDate = r.CreationDate.Time
	}
	if r.AnswerTimestamp.Valid {
		rev.AnswerTimestamp = r.AnswerTimestamp.Time
	}
	return rev
}

type sellerRow struct {
	SellerID      sql.NullString `db:"seller_id"`
	ZipCodePrefix sql.NullInt64  `db:"seller_zip_code_prefix"`
	City          sql.NullString `db:"seller_city"`
	State         sql.NullString `db:"seller_state"`
}

func (r sellerRow) present() bool { return r.SellerID.Valid }

func (r sellerRow) toModel() model.Seller {
	return model.Seller{
		SellerID:      r.SellerID.String,
		ZipCodePrefix: int(r.ZipCodePrefix.Int64),
		City:          r.City.String,
		State:         r.State.String,
	}
}
