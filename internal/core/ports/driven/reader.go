package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// Reader parses one book file format into the canonical Document form.
// Each reader handles a fixed set of file extensions.
type Reader interface {
	// Format identifies the document format this reader produces.
	Format() domain.Format

	// Extensions returns the lower-cased file extensions this reader
	// handles, including the leading dot.
	Extensions() []string

	// Read parses the file at path into a Document.
	// Parse and decode failures are reported as *domain.ReadError.
	Read(ctx context.Context, path string) (*domain.Document, error)
}

// ReaderRegistry dispatches a file to the reader registered for its
// extension. Readers are registered once at startup; adding a format
// means registering a new reader, not branching.
type ReaderRegistry interface {
	// Read loads the file at path with the matching reader.
	// It fails with domain.ErrNotFound when the path does not exist
	// (checked before dispatch) and domain.ErrUnsupportedFormat when
	// no reader claims the extension.
	Read(ctx context.Context, path string) (*domain.Document, error)

	// Register adds a reader to the registry.
	Register(reader Reader)

	// SupportedExtensions returns all extensions with a registered reader.
	SupportedExtensions() []string
}
