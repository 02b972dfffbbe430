// Package errors provides foundational, type-safe error primitives used across folio.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, not_found, docs, filesystem, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - HTTP and CLI adapters for error presentation
//
// Example usage:
//
//	err := errors.NotFoundError("article not found").
//		WithContext("slug", slug).
//		WithContext("locale", loc.String()).
//		Build()
package errors
