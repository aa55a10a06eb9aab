// Package models holds the wire-level entities served by the Sallaty
// service. The client treats every record as a read-only, refetchable
// copy; nothing here is cached across fetches or mutated in place.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sallaty-client/pkg/enums"
)

func init() {
	// The service speaks raw JSON numbers for quantities.
	decimal.MarshalJSONWithoutQuotes = true
}

// Store is the authenticated actor: a retail shop account.
type Store struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Shortage is a reported missing product another store may supply.
type Shortage struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        enums.Unit      `json:"unit"`
	Notes       string          `json:"notes,omitempty"`
	StoreID     int64           `json:"store_id"`
	StoreName   string          `json:"store_name"`
	Timestamp   time.Time       `json:"timestamp"`
	IsFulfilled bool            `json:"is_fulfilled"`
	Responses   []Response      `json:"responses"`
}

// Response is one store's offer against another store's shortage.
// Immutable once created; ordering is server-assigned.
type Response struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	StoreName string    `json:"store_name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification informs a store of activity on its own shortages.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}
