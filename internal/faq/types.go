package faq

import "ecommerce-support-agent/internal/model"

// Match is one FAQ entry scored against a query.
type Match struct {
	Entry model.FAQEntry
	Score float64
}
