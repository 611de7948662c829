// Package storage holds the byte-level document backends behind the record
// store.
//
// # Overview
//
// A document is the whole serialized content of one collection (a JSON
// array). Backends only move documents in and out; they know nothing about
// records. Two implementations exist:
//
//   - FileBackend: one <name>.json file per collection in a directory
//   - SQLiteBackend: one row per collection in a `documents` table
//     (modernc.org/sqlite, schema managed by goose)
//
// # Errors
//
// Failures wrap the sentinels in internal/common:
//
//   - common.ErrorDocumentMissing: Load of a document that was never written
//   - common.ErrorStorageUnavailable: the directory/database cannot be used
//
// # Concurrency
//
// Neither backend coordinates writers. Two processes saving the same
// document race and the last write wins.
package storage
