package views

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
)

// Allocation summarises how much of the balance is promised to goals.
type Allocation struct {
	TotalIncome          float64
	TotalExpenses        float64
	Balance              float64
	TotalBudgeted        float64
	AvailableBalance     float64
	AllocationPercentage float64
	HasBudgets           bool
}

// Allocate computes the allocation of balance to active budgets.
// AllocationPercentage is clamped to [0,100] and is 0 whenever the balance
// is not positive.
func Allocate(txs []models.Transaction, budgets []models.Budget) Allocation {
	var a Allocation
	for _, t := range txs {
		switch t.Type {
		case models.TransactionIncome:
			a.TotalIncome += t.Amount
		case models.TransactionExpense:
			a.TotalExpenses += t.Amount
		}
	}
	a.Balance = a.TotalIncome - a.TotalExpenses

	for _, b := range budgets {
		if b.Status != models.BudgetActive {
			continue
		}
		a.HasBudgets = true
		a.TotalBudgeted += b.Remaining()
	}
	a.AvailableBalance = a.Balance - a.TotalBudgeted

	if a.Balance > 0 {
		a.AllocationPercentage = min(100, max(0, a.TotalBudgeted/a.Balance*100))
	}
	return a
}

// ActiveBudgets returns active budgets, nearest target date first.
func ActiveBudgets(budgets []models.Budget) []models.Budget {
	out := filterBudgets(budgets, models.BudgetActive)
	slices.SortStableFunc(out, func(a, b models.Budget) int {
		return strings.Compare(a.TargetDate, b.TargetDate)
	})
	return out
}

// BudgetHistory returns completed budgets, most recently completed first.
func BudgetHistory(budgets []models.Budget) []models.Budget {
	out := filterBudgets(budgets, models.BudgetCompleted)
	slices.SortStableFunc(out, func(a, b models.Budget) int {
		return strings.Compare(b.CompletedAt, a.CompletedAt)
	})
	return out
}

// PriorityGoals returns up to limit active budgets ordered by priority,
// then by target date.
func PriorityGoals(budgets []models.Budget, limit int) []models.Budget {
	out := filterBudgets(budgets, models.BudgetActive)
	slices.SortStableFunc(out, func(a, b models.Budget) int {
		return cmp.Or(
			cmp.Compare(a.Priority.Rank(), b.Priority.Rank()),
			strings.Compare(a.TargetDate, b.TargetDate),
		)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterBudgets(budgets []models.Budget, status models.BudgetStatus) []models.Budget {
	out := make([]models.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// DaysRemaining is the number of whole days, rounded up, from now until
// targetDate. Past dates give negative values. ok is false when targetDate
// cannot be parsed.
func DaysRemaining(targetDate string, now time.Time) (days int, ok bool) {
	t, ok := ParseDate(targetDate)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), true
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
