package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_AddValidation(t *testing.T) {
	tests := []struct {
		name string
		in   TransactionInput
	}{
		{"missing category", TransactionInput{Type: models.TransactionExpense, Amount: 1, Description: "d"}},
		{"missing description", TransactionInput{Type: models.TransactionExpense, Amount: 1, Category: "c"}},
		{"zero amount", TransactionInput{Type: models.TransactionExpense, Category: "c", Description: "d"}},
		{"negative amount", TransactionInput{Type: models.TransactionExpense, Amount: -5, Category: "c", Description: "d"}},
		{"bad type", TransactionInput{Type: "transfer", Amount: 1, Category: "c", Description: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepos(t)
			svc := NewTransactionService(r.transactions)

			_, err := svc.Add(context.Background(), tt.in)
			require.ErrorIs(t, err, common.ErrorValidation)

			n, err := r.transactions.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestTransactionService_AddEditListDay(t *testing.T) {
	at := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	fixClock(t, at)

	r := newRepos(t)
	svc := NewTransactionService(r.transactions)
	ctx := context.Background()

	food, err := svc.Add(ctx, TransactionInput{
		Type: models.TransactionExpense, Category: " Food ", Amount: 12.5, Description: "Lunch",
	})
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, at.Format(time.RFC3339Nano), food.Date, "date defaults to now")

	pay, err := svc.Add(ctx, TransactionInput{
		Type: models.TransactionIncome, Category: "Salary", Amount: 900, Description: "Pay", Date: "2026-10-01",
	})
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, food.ID, TransactionInput{
		Type: models.TransactionExpense, Category: "Food", Amount: 15, Description: "Lunch + tip", Date: food.Date,
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, edited.Amount)
	assert.Equal(t, food.CreatedAt, edited.CreatedAt)

	_, err = svc.Edit(ctx, food.ID, TransactionInput{Type: models.TransactionExpense, Category: "Food"})
	require.ErrorIs(t, err, common.ErrorValidation)

	list, err := svc.List(ctx, views.TxFilter{Sort: views.TxHighest})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, pay.ID, list[0].ID)

	day, err := svc.OnDay(ctx, at)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, food.ID, day[0].ID)

	require.NoError(t, svc.Delete(ctx, pay.ID))
	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoryService(t *testing.T) {
	r := newRepos(t)
	svc := NewCategoryService(r.categories)
	ctx := context.Background()

	_, err := svc.Add(ctx, "   ", models.TransactionExpense, "")
	require.ErrorIs(t, err, common.ErrorValidation)

	food, err := svc.Add(ctx, "  Food ", models.TransactionExpense, "🍔")
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)
	_, err = svc.Add(ctx, "Salary", models.TransactionIncome, "")
	require.NoError(t, err)

	expenses, err := svc.List(ctx, models.TransactionExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, food.ID, expenses[0].ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// transactions keep the category name after it is deleted
	_, err = r.transactions.Create(ctx, models.Transaction{Type: models.TransactionExpense, Category: "Food", Amount: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, food.ID))

	txs, err := r.transactions.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Food", txs[0].Category)
}

func TestFinancialOverview_RefreshesFromBus(t *testing.T) {
	r := newRepos(t)
	events := bus.New()
	txSvc := NewTransactionService(r.transactions)
	budgets := NewBudgetService(r.budgets, r.transactions, events, logging.NewNop())
	ctx := context.Background()

	_, err := txSvc.Add(ctx, TransactionInput{Type: models.TransactionIncome, Category: "Salary", Amount: 1000, Description: "Pay"})
	require.NoError(t, err)

	overview := NewFinancialOverview(txSvc, events)
	require.NoError(t, overview.Mount(ctx))
	require.NoError(t, overview.Mount(ctx))
	assert.Equal(t, 1, events.ListenerCount(bus.EventTransactionUpdated))
	require.Len(t, overview.Transactions(), 1)

	b, _, err := budgets.Create(ctx, BudgetInput{Title: "Bike", Category: "Sport", TargetAmount: 300, CurrentAmount: 300})
	require.NoError(t, err)
	_, _, err = budgets.MarkDone(ctx, b)
	require.NoError(t, err)

	require.Len(t, overview.Transactions(), 2)
	sum := overview.Summary()
	assert.Equal(t, 700.0, sum.Balance)

	overview.Unmount()
	overview.Unmount()
	assert.Zero(t, events.ListenerCount(bus.EventTransactionUpdated))

	other, _, err := budgets.Create(ctx, BudgetInput{Title: "Book", Category: "Fun", TargetAmount: 10, CurrentAmount: 10})
	require.NoError(t, err)
	_, _, err = budgets.MarkDone(ctx, other)
	require.NoError(t, err)
	assert.Len(t, overview.Transactions(), 2)
}
