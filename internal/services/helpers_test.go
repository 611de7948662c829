package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/storage"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/stretchr/testify/require"
)

func newRepo[T store.Record[T]](t *testing.T, backend storage.Backend, name string) *store.Store[T] {
	t.Helper()
	s := store.New[T](backend, name)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

type repos struct {
	notes        *store.Store[models.Note]
	budgets      *store.Store[models.Budget]
	transactions *store.Store[models.Transaction]
	categories   *store.Store[models.Category]
	tasks        *store.Store[models.Task]
	credentials  *store.Store[models.AccountCredential]
}

func newRepos(t *testing.T) repos {
	t.Helper()
	b := storage.NewFileBackend(t.TempDir())
	return repos{
		notes:        newRepo[models.Note](t, b, models.CollectionNotes),
		budgets:      newRepo[models.Budget](t, b, models.CollectionBudgets),
		transactions: newRepo[models.Transaction](t, b, models.CollectionTransactions),
		categories:   newRepo[models.Category](t, b, models.CollectionCategories),
		tasks:        newRepo[models.Task](t, b, models.CollectionTasks),
		credentials:  newRepo[models.AccountCredential](t, b, models.CollectionCredentials),
	}
}

// fixClock pins the package clock for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

// countingRepo records how many writes reached the wrapped repository and
// can be told to fail updates.
type countingRepo[T any] struct {
	store.Repository[T]
	creates   int
	updates   int
	updateErr error
}

func (r *countingRepo[T]) Create(ctx context.Context, v T) (T, error) {
	r.creates++
	return r.Repository.Create(ctx, v)
}

func (r *countingRepo[T]) Update(ctx context.Context, id string, patch func(*T)) (T, error) {
	r.updates++
	if r.updateErr != nil {
		var zero T
		return zero, r.updateErr
	}
	return r.Repository.Update(ctx, id, patch)
}
