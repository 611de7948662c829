package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_CreateDefaultsAndValidation(t *testing.T) {
	r := newRepos(t)
	svc := NewNoteService(r.notes)
	ctx := context.Background()

	n, err := svc.Create(ctx, models.Note{Title: "  Groceries  "})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, models.NoteCategoryPersonal, n.Category)
	assert.Equal(t, models.NotePriorityMedium, n.Priority)
	assert.NotNil(t, n.Tags)

	_, err = svc.Create(ctx, models.Note{})
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Create(ctx, models.Note{Title: "x", Category: "hobby"})
	require.ErrorIs(t, err, common.ErrorValidation)

	count, err := r.notes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNoteService_Toggles(t *testing.T) {
	r := newRepos(t)
	svc := NewNoteService(r.notes)
	ctx := context.Background()

	n, err := svc.Create(ctx, models.Note{Title: "a"})
	require.NoError(t, err)

	n, err = svc.TogglePin(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, n.IsPinned)

	n, err = svc.ToggleArchive(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, n.IsArchived)
	assert.True(t, n.IsPinned, "pin and archive are independent")

	n, err = svc.TogglePin(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, n.IsPinned)

	_, err = svc.TogglePin(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNoteService_Tags(t *testing.T) {
	r := newRepos(t)
	svc := NewNoteService(r.notes)
	ctx := context.Background()

	n, err := svc.Create(ctx, models.Note{Title: "a", Tags: []string{"work"}})
	require.NoError(t, err)

	dup, err := svc.AddTag(ctx, n.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, n, dup, "duplicate tag must not write")

	n, err = svc.AddTag(ctx, n.ID, "home")
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "home"}, n.Tags)

	n, err = svc.RemoveTag(ctx, n.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, n.Tags)

	_, err = svc.AddTag(ctx, n.ID, "   ")
	require.ErrorIs(t, err, common.ErrorValidation)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, tags)
}

func TestNoteService_ListAndStats(t *testing.T) {
	r := newRepos(t)
	svc := NewNoteService(r.notes)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.Note{Title: "a"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, models.Note{Title: "b", IsArchived: true})
	require.NoError(t, err)
	c, err := svc.Create(ctx, models.Note{Title: "c", IsPinned: true})
	require.NoError(t, err)

	got, err := svc.List(ctx, views.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Archived)

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.Get(ctx, b.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
