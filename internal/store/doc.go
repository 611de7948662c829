// Package store implements the generic record store every feature is built
// on.
//
// # Overview
//
// A Store[T] owns one named collection: a JSON array of T kept as a single
// document in a storage.Backend. Every mutation loads the whole array,
// changes it in memory and writes the whole array back. There is no
// append log, no index and no locking; the design assumes small personal
// collections and one writer per collection.
//
// # Identity
//
// Create assigns a fresh uuid, CreatedAt and UpdatedAt. Update restores ID
// and CreatedAt after the caller's patch runs, so a patch cannot change
// them, and bumps UpdatedAt.
//
// # Errors
//
//   - Initialize/Create/Update/Delete wrap common.ErrorStorageUnavailable on
//     backend failures.
//   - GetAll (and everything built on it) wraps common.ErrorDocumentMissing
//     or common.ErrorCorruptDocument; no repair is attempted.
//   - Update of an unknown id wraps common.ErrorNotFound. Delete of an
//     unknown id is a no-op and GetByID reports absence through its bool.
//
// Typical usage
//
//	notes := store.New[models.Note](backend, models.CollectionNotes, store.WithLogger(log))
//	_ = notes.Initialize(ctx)
//	n, _ := notes.Create(ctx, models.Note{Title: "Groceries"})
//	n, _ = notes.Update(ctx, n.ID, func(n *models.Note) { n.IsPinned = true })
//	_ = notes.Delete(ctx, n.ID)
package store
