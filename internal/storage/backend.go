package storage

import "context"

// Backend stores whole documents by name.
type Backend interface {
	// Ensure writes initial under name if no document exists yet.
	// It reports whether a document was created.
	Ensure(ctx context.Context, name string, initial []byte) (bool, error)

	// Load returns the stored document.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the document.
	Save(ctx context.Context, name string, data []byte) error

	// Names lists the stored document names in lexical order.
	Names(ctx context.Context) ([]string, error)
}
