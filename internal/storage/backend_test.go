package storage

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend checks the contract every Backend must honour.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Load(ctx, "notes")
	require.ErrorIs(t, err, common.ErrorDocumentMissing)

	created, err := b.Ensure(ctx, "notes", []byte("[]"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = b.Ensure(ctx, "notes", []byte(`["ignored"]`))
	require.NoError(t, err)
	assert.False(t, created, "second Ensure must not overwrite")

	got, err := b.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, b.Save(ctx, "notes", []byte(`[{"id":"a"}]`)))
	require.NoError(t, b.Save(ctx, "budgets", []byte(`[]`)))

	got, err = b.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	names, err := b.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"budgets", "notes"}, names)
}
