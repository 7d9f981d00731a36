package readers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry dispatches files to readers by file extension.
type Registry struct {
	byExtension map[string]driven.Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]driven.Reader),
	}
}

// Register adds a reader for each extension it claims.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(reader driven.Reader) {
	for _, ext := range reader.Extensions() {
		r.byExtension[strings.ToLower(ext)] = reader
	}
}

// Read loads the file at path with the reader matching its extension.
// The existence check runs before dispatch so a missing .docx reports
// domain.ErrNotFound, not domain.ErrUnsupportedFormat.
func (r *Registry) Read(ctx context.Context, path string) (*domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	logger.Debug("reading %s as %s", path, reader.Format())
	return reader.Read(ctx, path)
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
