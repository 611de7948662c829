package views

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/stretchr/testify/assert"
)

func tx(typ models.TransactionType, amount float64) models.Transaction {
	return models.Transaction{Type: typ, Amount: amount}
}

func TestAllocate(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TransactionIncome, 1000),
		tx(models.TransactionExpense, 400),
	}
	budgets := []models.Budget{
		{TargetAmount: 500, CurrentAmount: 200, Status: models.BudgetActive},
		{TargetAmount: 900, CurrentAmount: 100, Status: models.BudgetCompleted},
	}

	got := Allocate(txs, budgets)
	assert.Equal(t, Allocation{
		TotalIncome:          1000,
		TotalExpenses:        400,
		Balance:              600,
		TotalBudgeted:        300,
		AvailableBalance:     300,
		AllocationPercentage: 50,
		HasBudgets:           true,
	}, got)
}

func TestAllocate_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		txs         []models.Transaction
		budgets     []models.Budget
		wantPercent float64
		wantBudget  float64
		wantHas     bool
	}{
		{
			name:    "no data",
			wantHas: false,
		},
		{
			name:        "negative balance",
			txs:         []models.Transaction{tx(models.TransactionExpense, 50)},
			budgets:     []models.Budget{{TargetAmount: 100, Status: models.BudgetActive}},
			wantPercent: 0,
			wantBudget:  100,
			wantHas:     true,
		},
		{
			name:        "over allocated clamps to 100",
			txs:         []models.Transaction{tx(models.TransactionIncome, 100)},
			budgets:     []models.Budget{{TargetAmount: 1000, Status: models.BudgetActive}},
			wantPercent: 100,
			wantBudget:  1000,
			wantHas:     true,
		},
		{
			name:        "overfunded goal counts as zero",
			txs:         []models.Transaction{tx(models.TransactionIncome, 100)},
			budgets:     []models.Budget{{TargetAmount: 50, CurrentAmount: 80, Status: models.BudgetActive}},
			wantPercent: 0,
			wantBudget:  0,
			wantHas:     true,
		},
		{
			name:    "only archived budgets",
			txs:     []models.Transaction{tx(models.TransactionIncome, 100)},
			budgets: []models.Budget{{TargetAmount: 50, Status: models.BudgetArchived}},
			wantHas: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.txs, tt.budgets)
			assert.Equal(t, tt.wantPercent, got.AllocationPercentage)
			assert.Equal(t, tt.wantBudget, got.TotalBudgeted)
			assert.Equal(t, tt.wantHas, got.HasBudgets)
			assert.Equal(t, got.Balance-got.TotalBudgeted, got.AvailableBalance)
		})
	}
}

func budgetsForLists() []models.Budget {
	return []models.Budget{
		{BaseRecord: models.BaseRecord{ID: "1"}, Status: models.BudgetActive, TargetDate: "2026-12-01", Priority: models.PriorityLow},
		{BaseRecord: models.BaseRecord{ID: "2"}, Status: models.BudgetActive, TargetDate: "2026-11-01", Priority: models.PriorityMedium},
		{BaseRecord: models.BaseRecord{ID: "3"}, Status: models.BudgetCompleted, CompletedAt: "2026-09-01T10:00:00Z"},
		{BaseRecord: models.BaseRecord{ID: "4"}, Status: models.BudgetCompleted, CompletedAt: "2026-10-01T10:00:00Z"},
		{BaseRecord: models.BaseRecord{ID: "5"}, Status: models.BudgetActive, TargetDate: "2027-01-01", Priority: models.PriorityHigh},
		{BaseRecord: models.BaseRecord{ID: "6"}, Status: models.BudgetArchived, TargetDate: "2026-01-01", Priority: models.PriorityHigh},
	}
}

func budgetIDs(bs []models.Budget) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestBudgetLists(t *testing.T) {
	bs := budgetsForLists()

	assert.Equal(t, []string{"2", "1", "5"}, budgetIDs(ActiveBudgets(bs)))
	assert.Equal(t, []string{"4", "3"}, budgetIDs(BudgetHistory(bs)))
	assert.Equal(t, []string{"5", "2"}, budgetIDs(PriorityGoals(bs, 2)))
	assert.Len(t, PriorityGoals(bs, 10), 3)
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	days, ok := DaysRemaining("2026-10-20", now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	days, ok = DaysRemaining("2026-10-10T12:00:00Z", now)
	assert.True(t, ok)
	assert.Equal(t, -5, days)

	_, ok = DaysRemaining("someday", now)
	assert.False(t, ok)
}
