package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
)

// NoteService manages notes and their derived views.
type NoteService interface {
	Create(ctx context.Context, n models.Note) (models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Update(ctx context.Context, id string, patch func(*models.Note)) (models.Note, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f views.NoteFilter) ([]models.Note, error)
	Stats(ctx context.Context) (views.NoteStats, error)
	Tags(ctx context.Context) ([]string, error)
	TogglePin(ctx context.Context, id string) (models.Note, error)
	ToggleArchive(ctx context.Context, id string) (models.Note, error)
	AddTag(ctx context.Context, id, tag string) (models.Note, error)
	RemoveTag(ctx context.Context, id, tag string) (models.Note, error)
}

type noteService struct {
	notes store.Repository[models.Note]
}

func NewNoteService(notes store.Repository[models.Note]) NoteService {
	return &noteService{notes: notes}
}

func (s *noteService) Create(ctx context.Context, n models.Note) (models.Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" && strings.TrimSpace(n.Content) == "" {
		return models.Note{}, invalid("Empty Note", "Please enter a title or some content.")
	}
	if n.Category == "" {
		n.Category = models.NoteCategoryPersonal
	}
	if !n.Category.Valid() {
		return models.Note{}, invalid("Invalid Category", fmt.Sprintf("Unknown category %q.", n.Category))
	}
	if n.Priority == "" {
		n.Priority = models.NotePriorityMedium
	}
	if !n.Priority.Valid() {
		return models.Note{}, invalid("Invalid Priority", fmt.Sprintf("Unknown priority %q.", n.Priority))
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	created, err := s.notes.Create(ctx, n)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return created, nil
}

func (s *noteService) Get(ctx context.Context, id string) (models.Note, error) {
	n, ok, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if !ok {
		return models.Note{}, fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
	}
	return n, nil
}

func (s *noteService) Update(ctx context.Context, id string, patch func(*models.Note)) (models.Note, error) {
	return s.notes.Update(ctx, id, patch)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}

func (s *noteService) List(ctx context.Context, f views.NoteFilter) ([]models.Note, error) {
	all, err := s.notes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.FilterNotes(all, f), nil
}

func (s *noteService) Stats(ctx context.Context) (views.NoteStats, error) {
	all, err := s.notes.GetAll(ctx)
	if err != nil {
		return views.NoteStats{}, err
	}
	return views.NoteStatistics(all), nil
}

func (s *noteService) Tags(ctx context.Context) ([]string, error) {
	all, err := s.notes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.CollectTags(all), nil
}

func (s *noteService) TogglePin(ctx context.Context, id string) (models.Note, error) {
	return s.notes.Update(ctx, id, func(n *models.Note) { n.IsPinned = !n.IsPinned })
}

func (s *noteService) ToggleArchive(ctx context.Context, id string) (models.Note, error) {
	return s.notes.Update(ctx, id, func(n *models.Note) { n.IsArchived = !n.IsArchived })
}

// AddTag appends tag unless the note already has it, in which case the
// note is returned unchanged without a write.
func (s *noteService) AddTag(ctx context.Context, id, tag string) (models.Note, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return models.Note{}, invalid("Invalid Tag", "Tag cannot be empty.")
	}

	n, err := s.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if n.HasTag(tag) {
		return n, nil
	}

	tags := append(slices.Clone(n.Tags), tag)
	return s.notes.Update(ctx, id, func(n *models.Note) { n.Tags = tags })
}

func (s *noteService) RemoveTag(ctx context.Context, id, tag string) (models.Note, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}

	tags := slices.DeleteFunc(slices.Clone(n.Tags), func(t string) bool { return t == tag })
	return s.notes.Update(ctx, id, func(n *models.Note) { n.Tags = tags })
}
