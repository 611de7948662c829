// Package services holds the application operations behind each screen:
// input validation, defaults, store writes and cross-feature events.
// Validation failures are reported as *ValidationError before any store
// call is made.
package services
