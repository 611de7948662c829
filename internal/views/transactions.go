package views

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
)

type TxSortOrder string

const (
	TxNewest  TxSortOrder = "newest"
	TxOldest  TxSortOrder = "oldest"
	TxHighest TxSortOrder = "highest"
	TxLowest  TxSortOrder = "lowest"
)

var txSortCycle = []TxSortOrder{TxNewest, TxOldest, TxHighest, TxLowest}

// NextSortOrder advances newest → oldest → highest → lowest → newest.
// Unknown values restart the cycle.
func NextSortOrder(o TxSortOrder) TxSortOrder {
	i := slices.Index(txSortCycle, o)
	return txSortCycle[(i+1)%len(txSortCycle)]
}

// TxTypeAll disables type filtering.
const TxTypeAll models.TransactionType = "all"

type TxFilter struct {
	Search string
	Type   models.TransactionType
	Sort   TxSortOrder
}

// FilterTransactions applies search, type filter and sort order. The
// default sort is newest first.
func FilterTransactions(txs []models.Transaction, f TxFilter) []models.Transaction {
	query := strings.ToLower(f.Search)

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && f.Type != TxTypeAll && t.Type != f.Type {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Description), query) &&
			!strings.Contains(strings.ToLower(t.Category), query) {
			continue
		}
		out = append(out, t)
	}

	var fn func(a, b models.Transaction) int
	switch f.Sort {
	case TxOldest:
		fn = func(a, b models.Transaction) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case TxHighest:
		fn = func(a, b models.Transaction) int { return cmp.Compare(b.Amount, a.Amount) }
	case TxLowest:
		fn = func(a, b models.Transaction) int { return cmp.Compare(a.Amount, b.Amount) }
	default:
		fn = func(a, b models.Transaction) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	}
	slices.SortStableFunc(out, fn)
	return out
}

// TransactionsOn returns transactions whose date falls on the calendar
// day of day (in day's location), most recently recorded first.
func TransactionsOn(txs []models.Transaction, day time.Time) []models.Transaction {
	y, m, d := day.Date()

	out := []models.Transaction{}
	for _, t := range txs {
		at, ok := dateIn(t.Date, day.Location())
		if !ok {
			continue
		}
		ty, tm, td := at.Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Transaction) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}

// dateIn reads plain dates as local to loc and converts timestamps to loc.
func dateIn(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true
	}
	t, ok := ParseDate(s)
	if !ok {
		return time.Time{}, false
	}
	return t.In(loc), true
}
