package sqldb

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"ecommerce-support-agent/internal/order"
	"ecommerce-support-agent/pkg/log"
)

type implStore struct {
	db *sqlx.DB
	l  log.Logger
}

// New creates a SQL-backed read-only Store over the olist order schema.
// The driver behind db (sqlite3 or mysql) is chosen by the caller.
func New(db *sqlx.DB, l log.Logger) order.Store {
	if db == nil {
		panic("order/repository/sqldb: db is required")
	}
	return &implStore{db: db, l: l}
}

func (s *implStore) dsn(method string) string {
	return fmt.Sprintf("order/repository/sqldb.%s", method)
}
