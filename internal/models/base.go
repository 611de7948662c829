package models

// Collection document names.
const (
	CollectionNotes        = "notes"
	CollectionBudgets      = "budgets"
	CollectionCategories   = "categories"
	CollectionTransactions = "transactions"
	CollectionTasks        = "tasks"
	CollectionCredentials  = "credentials"
)

// Collections lists every collection document in creation order.
var Collections = []string{
	CollectionNotes,
	CollectionBudgets,
	CollectionCategories,
	CollectionTransactions,
	CollectionTasks,
	CollectionCredentials,
}

// BaseRecord carries the identity shared by every record. ID and CreatedAt
// never change after creation; UpdatedAt is bumped on every write,
// creation included. Timestamps are milliseconds since epoch.
type BaseRecord struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// Meta returns the identity part of a record.
func (b BaseRecord) Meta() BaseRecord { return b }
