// Package app wires configuration, storage, stores, the notification bus
// and services into one value owned by the command front end.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pocketkeeper/internal/appstate"
	"github.com/dmitrijs2005/pocketkeeper/internal/backup"
	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/dmitrijs2005/pocketkeeper/internal/config"
	"github.com/dmitrijs2005/pocketkeeper/internal/filex"
	"github.com/dmitrijs2005/pocketkeeper/internal/focus"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/dmitrijs2005/pocketkeeper/internal/storage"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/dmitrijs2005/pocketkeeper/internal/watch"
)

// Collections lists every collection document in creation order.
var Collections = models.Collections

type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Bus     *bus.Bus
	Backend storage.Backend

	Notes        services.NoteService
	Budgets      services.BudgetService
	Transactions services.TransactionService
	Categories   services.CategoryService
	Tasks        services.TaskService
	Credentials  services.CredentialService

	State  *appstate.State
	Timer  *focus.Timer
	Backup *backup.Service

	closers []io.Closer
}

// New builds the application for cfg, logging to stderr.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	return NewWithLogger(ctx, cfg, logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
}

// NewWithLogger builds the application and makes sure every collection
// document exists.
func NewWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}

	a := &App{Config: cfg, Logger: logger, Bus: bus.New()}

	switch cfg.Backend {
	case config.BackendFile, "":
		a.Backend = storage.NewFileBackend(cfg.DataDir)
	case config.BackendSQLite:
		b, err := storage.OpenSQLite(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		a.Backend = b
		a.closers = append(a.closers, b)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	opts := []store.Option{store.WithLogger(logger)}
	notes := store.New[models.Note](a.Backend, models.CollectionNotes, opts...)
	budgets := store.New[models.Budget](a.Backend, models.CollectionBudgets, opts...)
	categories := store.New[models.Category](a.Backend, models.CollectionCategories, opts...)
	transactions := store.New[models.Transaction](a.Backend, models.CollectionTransactions, opts...)
	tasks := store.New[models.Task](a.Backend, models.CollectionTasks, opts...)
	credentials := store.New[models.AccountCredential](a.Backend, models.CollectionCredentials, opts...)

	for _, s := range []interface{ Initialize(context.Context) error }{
		notes, budgets, categories, transactions, tasks, credentials,
	} {
		if err := s.Initialize(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Notes = services.NewNoteService(notes)
	a.Budgets = services.NewBudgetService(budgets, transactions, a.Bus, logger)
	a.Transactions = services.NewTransactionService(transactions)
	a.Categories = services.NewCategoryService(categories)
	a.Tasks = services.NewTaskService(tasks, logger)
	a.Credentials = services.NewCredentialService(credentials)

	flags := appstate.NewFileRepository(cfg.DataDir)
	a.State = appstate.New(flags)
	a.Timer = focus.NewTimer(flags, logger)
	a.Backup = backup.New(a.Backend, cfg.Backup, logger)

	logger.Debug(ctx, "app ready", "dataDir", cfg.DataDir, "backend", cfg.Backend)
	return a, nil
}

// Overview returns a financial overview bound to this app's bus.
func (a *App) Overview() *services.FinancialOverview {
	return services.NewFinancialOverview(a.Transactions, a.Bus)
}

// Watch reports documents changed by other processes until ctx is done.
// Only the file backend has documents to watch.
func (a *App) Watch(ctx context.Context) error {
	if _, ok := a.Backend.(*storage.FileBackend); !ok {
		return fmt.Errorf("watch requires the %q backend", config.BackendFile)
	}
	w, err := watch.Open(a.Config.DataDir, a.Config.WatchDebounce, a.Bus, a.Logger)
	if err != nil {
		return fmt.Errorf("watch init error: %w", err)
	}
	defer w.Close()
	return w.Run(ctx)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
