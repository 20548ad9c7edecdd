// Package backend describes the hosted row store and identity the storefront talks to.
// Components receive a Records value instead of reaching for a shared client.
package backend

import "context"

const (
	TableMenuItems  = "menu_items"
	TableCategories = "categories"
	TableOrders     = "orders"
	TableUsers      = "users"
)

// Filter holds equality conditions keyed by column. A slice value matches any of its elements.
type Filter map[string]any

type Query struct {
	Filter  Filter
	OrderBy string
	// Include names associations to load with each row, e.g. "Items".
	Include []string
	Limit   int
}

type Records interface {
	CreateRecord(ctx context.Context, table string, record any) error
	QueryRecords(ctx context.Context, table string, q Query, dest any) error
	// UpdateRecords applies fields to rows matching filter and reports how many changed.
	UpdateRecords(ctx context.Context, table string, filter Filter, fields map[string]any) (int64, error)
}

// Identity is the authenticated principal of a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
