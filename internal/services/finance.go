package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
)

type TransactionInput struct {
	Type        models.TransactionType
	Category    string
	Amount      float64
	Date        string
	Description string
}

func (in *TransactionInput) validate() error {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if in.Category == "" || in.Description == "" {
		return invalid("Error", "Please fill in all fields")
	}
	if in.Amount <= 0 {
		return invalid("Error", "Please enter a valid amount")
	}
	if !in.Type.Valid() {
		return invalid("Error", fmt.Sprintf("Unknown transaction type %q", in.Type))
	}
	if in.Date == "" {
		in.Date = isoNow()
	}
	return nil
}

type TransactionService interface {
	Add(ctx context.Context, in TransactionInput) (models.Transaction, error)
	Edit(ctx context.Context, id string, in TransactionInput) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.Transaction, error)
	List(ctx context.Context, f views.TxFilter) ([]models.Transaction, error)
	OnDay(ctx context.Context, day time.Time) ([]models.Transaction, error)
}

type transactionService struct {
	transactions store.Repository[models.Transaction]
}

func NewTransactionService(transactions store.Repository[models.Transaction]) TransactionService {
	return &transactionService{transactions: transactions}
}

func (s *transactionService) Add(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}
	tx, err := s.transactions.Create(ctx, models.Transaction{
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to add transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Edit(ctx context.Context, id string, in TransactionInput) (models.Transaction, error) {
	if err := in.validate(); err != nil {
		return models.Transaction{}, err
	}
	tx, err := s.transactions.Update(ctx, id, func(t *models.Transaction) {
		t.Type = in.Type
		t.Category = in.Category
		t.Amount = in.Amount
		t.Date = in.Date
		t.Description = in.Description
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id string) error {
	return s.transactions.Delete(ctx, id)
}

func (s *transactionService) All(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.GetAll(ctx)
}

func (s *transactionService) List(ctx context.Context, f views.TxFilter) ([]models.Transaction, error) {
	all, err := s.transactions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.FilterTransactions(all, f), nil
}

func (s *transactionService) OnDay(ctx context.Context, day time.Time) ([]models.Transaction, error) {
	all, err := s.transactions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.TransactionsOn(all, day), nil
}

// CategoryService manages transaction categories. Deleting a category
// leaves transactions that name it untouched.
type CategoryService interface {
	Add(ctx context.Context, name string, typ models.TransactionType, icon string) (models.Category, error)
	List(ctx context.Context, typ models.TransactionType) ([]models.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categories store.Repository[models.Category]
}

func NewCategoryService(categories store.Repository[models.Category]) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Add(ctx context.Context, name string, typ models.TransactionType, icon string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, invalid("Error", "Please enter a category name")
	}
	if !typ.Valid() {
		return models.Category{}, invalid("Error", fmt.Sprintf("Unknown category type %q", typ))
	}

	c, err := s.categories.Create(ctx, models.Category{Name: name, Type: typ, Icon: icon})
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to add category: %w", err)
	}
	return c, nil
}

// List returns categories of typ, or all of them when typ is empty.
func (s *categoryService) List(ctx context.Context, typ models.TransactionType) ([]models.Category, error) {
	return s.categories.Query(ctx, func(c models.Category) bool {
		return typ == "" || c.Type == typ
	})
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// FinancialOverview keeps an in-memory transaction list for a mounted
// financial screen. While mounted it appends transactions announced on the
// bus by other features.
type FinancialOverview struct {
	transactions TransactionService
	events       *bus.Bus

	mu  sync.Mutex
	txs []models.Transaction
	sub *bus.Subscription
}

func NewFinancialOverview(transactions TransactionService, events *bus.Bus) *FinancialOverview {
	return &FinancialOverview{transactions: transactions, events: events}
}

// Mount loads transactions and starts listening for updates.
func (o *FinancialOverview) Mount(ctx context.Context) error {
	txs, err := o.transactions.All(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.txs = txs
	if o.sub == nil {
		o.sub = bus.On(o.events, bus.EventTransactionUpdated, o.onTransaction)
	}
	return nil
}

// Unmount stops listening. Safe to call more than once.
func (o *FinancialOverview) Unmount() {
	o.mu.Lock()
	sub := o.sub
	o.sub = nil
	o.mu.Unlock()
	sub.Remove()
}

func (o *FinancialOverview) onTransaction(tx models.Transaction) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if slices.ContainsFunc(o.txs, func(t models.Transaction) bool { return t.ID == tx.ID }) {
		return
	}
	o.txs = append(o.txs, tx)
}

// Transactions returns a copy of the current list.
func (o *FinancialOverview) Transactions() []models.Transaction {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.txs)
}

// Summary returns income, expense and balance totals of the current list.
func (o *FinancialOverview) Summary() views.Allocation {
	return views.Allocate(o.Transactions(), nil)
}
