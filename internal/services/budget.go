package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
)

// priorityGoalLimit is how many goals the overview highlights.
const priorityGoalLimit = 2

type ProgressOp string

const (
	ProgressAdd      ProgressOp = "add"
	ProgressSubtract ProgressOp = "subtract"
)

type BudgetInput struct {
	Title         string
	Category      string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    string
	Priority      models.Priority
	Note          string
}

// BudgetService manages savings goals.
//
// UpdateProgress and MarkDone validate against the budget snapshot the
// caller is displaying, not a fresh read, so a stale snapshot can be
// accepted and then overwrite concurrent edits.
type BudgetService interface {
	Create(ctx context.Context, in BudgetInput) (models.Budget, Notice, error)
	Get(ctx context.Context, id string) (models.Budget, error)
	Update(ctx context.Context, id string, patch func(*models.Budget)) (models.Budget, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Budget, error)
	Active(ctx context.Context) ([]models.Budget, error)
	History(ctx context.Context) ([]models.Budget, error)
	PriorityGoals(ctx context.Context) ([]models.Budget, error)
	UpdateProgress(ctx context.Context, snapshot models.Budget, op ProgressOp, amount float64) (models.Budget, Notice, error)
	MarkDone(ctx context.Context, snapshot models.Budget) (models.Budget, Notice, error)
	Allocation(ctx context.Context) (views.Allocation, error)
}

type budgetService struct {
	budgets      store.Repository[models.Budget]
	transactions store.Repository[models.Transaction]
	events       *bus.Bus
	logger       logging.Logger
}

func NewBudgetService(
	budgets store.Repository[models.Budget],
	transactions store.Repository[models.Transaction],
	events *bus.Bus,
	logger logging.Logger,
) BudgetService {
	return &budgetService{
		budgets:      budgets,
		transactions: transactions,
		events:       events,
		logger:       logger.With("service", "budget"),
	}
}

func (s *budgetService) Create(ctx context.Context, in BudgetInput) (models.Budget, Notice, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" || in.Category == "" {
		return models.Budget{}, Notice{}, invalid("Error", "Please fill in all required fields")
	}
	if in.TargetAmount <= 0 {
		return models.Budget{}, Notice{}, invalid("Error", "Please enter a valid target amount")
	}
	if in.CurrentAmount < 0 {
		return models.Budget{}, Notice{}, invalid("Error", "Please enter a valid current amount")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return models.Budget{}, Notice{}, invalid("Error", fmt.Sprintf("Unknown priority %q", in.Priority))
	}

	b, err := s.budgets.Create(ctx, models.Budget{
		Title:         in.Title,
		Category:      in.Category,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
		Priority:      in.Priority,
		Note:          in.Note,
		Status:        models.BudgetActive,
	})
	if err != nil {
		return models.Budget{}, Notice{}, fmt.Errorf("failed to add budget: %w", err)
	}
	return b, success("Budget Added", fmt.Sprintf("%q was added to your goals.", b.Title)), nil
}

func (s *budgetService) Get(ctx context.Context, id string) (models.Budget, error) {
	b, ok, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return models.Budget{}, err
	}
	if !ok {
		return models.Budget{}, fmt.Errorf("budget %s: %w", id, common.ErrorNotFound)
	}
	return b, nil
}

func (s *budgetService) Update(ctx context.Context, id string, patch func(*models.Budget)) (models.Budget, error) {
	return s.budgets.Update(ctx, id, patch)
}

func (s *budgetService) Delete(ctx context.Context, id string) error {
	if err := s.budgets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *budgetService) List(ctx context.Context) ([]models.Budget, error) {
	return s.budgets.GetAll(ctx)
}

func (s *budgetService) Active(ctx context.Context) ([]models.Budget, error) {
	all, err := s.budgets.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.ActiveBudgets(all), nil
}

func (s *budgetService) History(ctx context.Context) ([]models.Budget, error) {
	all, err := s.budgets.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.BudgetHistory(all), nil
}

func (s *budgetService) PriorityGoals(ctx context.Context) ([]models.Budget, error) {
	all, err := s.budgets.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.PriorityGoals(all, priorityGoalLimit), nil
}

// requireActive rejects goals that already left the active state.
func requireActive(b models.Budget) error {
	if b.Status == models.BudgetActive {
		return nil
	}
	return invalid("Budget Not Active", fmt.Sprintf("%q is %s and can no longer be changed.", b.Title, b.Status))
}

func (s *budgetService) UpdateProgress(ctx context.Context, snapshot models.Budget, op ProgressOp, amount float64) (models.Budget, Notice, error) {
	if err := requireActive(snapshot); err != nil {
		return models.Budget{}, Notice{}, err
	}
	if amount <= 0 {
		return models.Budget{}, Notice{}, invalid("Invalid Amount", "Please enter a valid amount.")
	}

	var next float64
	switch op {
	case ProgressAdd:
		if remaining := snapshot.TargetAmount - snapshot.CurrentAmount; amount > remaining {
			return models.Budget{}, Notice{}, invalid("Amount Too High",
				fmt.Sprintf("You can only add up to %s to reach your target.", formatAmount(remaining)))
		}
		next = snapshot.CurrentAmount + amount
	case ProgressSubtract:
		if amount > snapshot.CurrentAmount {
			return models.Budget{}, Notice{}, invalid("Amount Too High",
				fmt.Sprintf("You can only subtract up to %s from your current progress.", formatAmount(snapshot.CurrentAmount)))
		}
		next = snapshot.CurrentAmount - amount
	default:
		return models.Budget{}, Notice{}, invalid("Invalid Operation", fmt.Sprintf("Unknown operation %q.", op))
	}

	b, err := s.budgets.Update(ctx, snapshot.ID, func(b *models.Budget) { b.CurrentAmount = next })
	if err != nil {
		s.logger.Error(ctx, "failed to update budget progress", "budget", snapshot.ID, "error", err)
		return models.Budget{}, Notice{}, fmt.Errorf("failed to update budget progress: %w", err)
	}

	verb, prep := "added", "to"
	if op == ProgressSubtract {
		verb, prep = "subtracted", "from"
	}
	return b, success("Progress Updated",
		fmt.Sprintf("Successfully %s %s %s your budget progress.", verb, formatAmount(amount), prep)), nil
}

// MarkDone records the goal's target as an expense and then completes the
// budget. The two writes are not atomic: if the second fails the expense
// stays behind and is logged as orphaned.
func (s *budgetService) MarkDone(ctx context.Context, snapshot models.Budget) (models.Budget, Notice, error) {
	if err := requireActive(snapshot); err != nil {
		return models.Budget{}, Notice{}, err
	}
	if snapshot.CurrentAmount != snapshot.TargetAmount {
		return models.Budget{}, Notice{}, invalid("Cannot Complete Budget",
			fmt.Sprintf("Current amount (%s) must match target amount (%s) to mark as complete.",
				formatAmount(snapshot.CurrentAmount), formatAmount(snapshot.TargetAmount)))
	}

	stamp := isoNow()
	tx, err := s.transactions.Create(ctx, models.Transaction{
		Type:        models.TransactionExpense,
		Category:    snapshot.Category,
		Amount:      snapshot.TargetAmount,
		Date:        stamp,
		Description: "Budget goal completed: " + snapshot.Title,
	})
	if err != nil {
		s.logger.Error(ctx, "failed to record budget expense", "budget", snapshot.ID, "error", err)
		return models.Budget{}, Notice{}, fmt.Errorf("failed to update budget status: %w", err)
	}

	b, err := s.budgets.Update(ctx, snapshot.ID, func(b *models.Budget) {
		b.Status = models.BudgetCompleted
		b.CompletedAt = stamp
	})
	if err != nil {
		s.logger.Error(ctx, "budget completion failed, expense transaction orphaned",
			"budget", snapshot.ID, "transaction", tx.ID, "error", err)
		return models.Budget{}, Notice{}, fmt.Errorf("failed to update budget status: %w", err)
	}

	bus.Publish(s.events, bus.EventTransactionUpdated, tx)
	s.logger.Info(ctx, "budget completed", "budget", b.ID, "transaction", tx.ID)

	return b, success("Budget Completed",
		"Budget goal has been marked as completed and recorded as an expense."), nil
}

func (s *budgetService) Allocation(ctx context.Context) (views.Allocation, error) {
	txs, err := s.transactions.GetAll(ctx)
	if err != nil {
		return views.Allocation{}, err
	}
	budgets, err := s.budgets.GetAll(ctx)
	if err != nil {
		return views.Allocation{}, err
	}
	return views.Allocate(txs, budgets), nil
}
