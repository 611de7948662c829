package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/storage"
	"github.com/google/uuid"
)

// maxIDAttempts bounds id regeneration when a generator repeats itself.
const maxIDAttempts = 5

// Record is the contract a type must meet to be stored: expose its
// identity and return a copy of itself with a replaced identity.
type Record[T any] interface {
	Meta() models.BaseRecord
	WithMeta(models.BaseRecord) T
}

// Repository is the CRUD surface services depend on.
type Repository[T any] interface {
	// Name is the collection name.
	Name() string

	// Initialize creates an empty document if none exists. Idempotent.
	Initialize(ctx context.Context) error

	// GetAll returns every record in insertion order.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID reports whether a record with id exists and returns it.
	GetByID(ctx context.Context, id string) (T, bool, error)

	// Create stores fields as a new record with fresh identity.
	Create(ctx context.Context, fields T) (T, error)

	// Update applies patch to the stored record and persists the result.
	Update(ctx context.Context, id string, patch func(*T)) (T, error)

	// Delete removes the record; unknown ids are ignored.
	Delete(ctx context.Context, id string) error

	Query(ctx context.Context, pred func(T) bool) ([]T, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type settings struct {
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*settings)

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *settings) { s.newID = gen }
}

// Store is the whole-document Repository implementation.
type Store[T Record[T]] struct {
	backend storage.Backend
	name    string
	logger  logging.Logger
	now     func() time.Time
	newID   func() string
}

var _ Repository[models.Note] = (*Store[models.Note])(nil)

func New[T Record[T]](backend storage.Backend, name string, opts ...Option) *Store[T] {
	s := settings{
		logger: logging.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(&s)
	}
	return &Store[T]{
		backend: backend,
		name:    name,
		logger:  s.logger.With("collection", name),
		now:     s.now,
		newID:   s.newID,
	}
}

func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) Initialize(ctx context.Context) error {
	created, err := s.backend.Ensure(ctx, s.name, []byte("[]"))
	if err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.name, err)
	}
	if created {
		s.logger.Info(ctx, "collection created")
	}
	return nil
}

func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	data, err := s.backend.Load(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	return s.decode(data)
}

func (s *Store[T]) decode(data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s is not a JSON array", common.ErrorCorruptDocument, s.name)
	}

	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrorCorruptDocument, s.name, err)
	}
	return items, nil
}

func (s *Store[T]) write(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.name, err)
	}
	if err := s.backend.Save(ctx, s.name, data); err != nil {
		return err
	}
	s.logger.Debug(ctx, "document written", "records", len(items), "bytes", len(data))
	return nil
}

func indexOf[T Record[T]](items []T, id string) int {
	for i, it := range items {
		if it.Meta().ID == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, false, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], true, nil
	}
	return zero, false, nil
}

func (s *Store[T]) Create(ctx context.Context, fields T) (T, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, err
	}

	id, err := s.freshID(items)
	if err != nil {
		return zero, err
	}

	ts := s.now().UnixMilli()
	item := fields.WithMeta(models.BaseRecord{ID: id, CreatedAt: ts, UpdatedAt: ts})

	if err := s.write(ctx, append(items, item)); err != nil {
		return zero, fmt.Errorf("failed to create in %s: %w", s.name, err)
	}
	return item, nil
}

func (s *Store[T]) freshID(items []T) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && indexOf(items, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("failed to generate unique id")
}

func (s *Store[T]) Update(ctx context.Context, id string, patch func(*T)) (T, error) {
	var zero T
	items, err := s.GetAll(ctx)
	if err != nil {
		return zero, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s/%s", common.ErrorNotFound, s.name, id)
	}

	orig := items[i].Meta()
	updated := items[i]
	if patch != nil {
		patch(&updated)
	}
	updated = updated.WithMeta(models.BaseRecord{
		ID:        orig.ID,
		CreatedAt: orig.CreatedAt,
		UpdatedAt: s.now().UnixMilli(),
	})
	items[i] = updated

	if err := s.write(ctx, items); err != nil {
		return zero, fmt.Errorf("failed to update %s/%s: %w", s.name, id, err)
	}
	return updated, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	items, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	i := indexOf(items, id)
	if i < 0 {
		s.logger.Debug(ctx, "delete of unknown id ignored", "id", id)
		return nil
	}

	items = append(items[:i], items[i+1:]...)
	if err := s.write(ctx, items); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", s.name, id, err)
	}
	return nil
}

func (s *Store[T]) Query(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.GetByID(ctx, id)
	return ok, err
}

func (s *Store[T]) Count(ctx context.Context) (int, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
