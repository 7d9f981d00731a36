// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed book with normalised text content
//   - Chapter: A named content chunk produced by a reader
//   - Position: A "line.char" address within rendered text
//   - Highlight, Note, Bookmark: Annotation records scoped to one book
//   - BookRecord: A library entry with reading progress
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
