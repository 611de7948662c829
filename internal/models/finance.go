package models

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Category names a bucket for transactions. Transactions copy the name by
// value, so renaming or deleting a category leaves them untouched.
type Category struct {
	BaseRecord
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
	Icon string          `json:"icon,omitempty"`
}

func (c Category) WithMeta(m BaseRecord) Category { c.BaseRecord = m; return c }

// Transaction is a single income or expense. Date is the ISO date the
// transaction is for; CreatedAt is when it was recorded.
type Transaction struct {
	BaseRecord
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

func (t Transaction) WithMeta(m BaseRecord) Transaction { t.BaseRecord = m; return t }
