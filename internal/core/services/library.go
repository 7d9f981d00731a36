package services

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// LibraryService manages the book library and the annotation data tied
// to it. Removing a book cascades to its persisted annotations.
type LibraryService struct {
	library driven.LibraryStore
	store   driven.AnnotationStore
}

// NewLibraryService creates a new library service.
func NewLibraryService(library driven.LibraryStore, store driven.AnnotationStore) *LibraryService {
	return &LibraryService{
		library: library,
		store:   store,
	}
}

// Register adds the book at path to the library, deriving its ID from
// the file content. An already-known book keeps its existing entry and
// reading progress; only the stored filepath is refreshed in case the
// file moved.
func (s *LibraryService) Register(path string, doc *domain.Document) (*domain.BookRecord, error) {
	bookID := s.library.BookID(path)

	if existing, err := s.library.Get(bookID); err == nil {
		if existing.Filepath != path {
			existing.Filepath = path
			if err := s.library.Add(*existing); err != nil {
				return nil, fmt.Errorf("failed to update library entry: %w", err)
			}
		}
		return existing, nil
	}

	record := domain.BookRecord{
		ID:              bookID,
		Filepath:        path,
		Filename:        filepath.Base(path),
		AddedAt:         time.Now(),
		ReadingPosition: "1.0",
		Metadata:        bookMetadata(doc),
	}
	if err := s.library.Add(record); err != nil {
		return nil, fmt.Errorf("failed to add book to library: %w", err)
	}

	logger.Debug("registered book %s in library", bookID)
	return &record, nil
}

// bookMetadata extracts display metadata from a parsed document.
func bookMetadata(doc *domain.Document) map[string]any {
	if doc == nil {
		return nil
	}
	return map[string]any{
		"title":    doc.Title,
		"author":   doc.Author,
		"format":   string(doc.Format),
		"chapters": len(doc.Chapters),
		"words":    domain.WordCount(doc.Content),
	}
}

// BookID derives the stable identifier for the file at path.
func (s *LibraryService) BookID(path string) string {
	return s.library.BookID(path)
}

// List returns all library entries.
func (s *LibraryService) List() []domain.BookRecord {
	return s.library.List()
}

// Get retrieves a library entry by book ID.
func (s *LibraryService) Get(bookID string) (*domain.BookRecord, error) {
	return s.library.Get(bookID)
}

// Remove deletes a book from the library together with all of its
// highlights, notes and bookmarks.
func (s *LibraryService) Remove(bookID string) error {
	if _, err := s.library.Get(bookID); err != nil {
		return err
	}

	if err := s.library.Remove(bookID); err != nil {
		return fmt.Errorf("failed to remove library entry: %w", err)
	}
	if err := s.store.DeleteBook(bookID); err != nil {
		return fmt.Errorf("failed to remove annotations: %w", err)
	}

	logger.Debug("removed book %s and its annotations", bookID)
	return nil
}

// UpdateProgress records the reading position and progress for a book.
func (s *LibraryService) UpdateProgress(bookID string, position domain.Position, progress float64) error {
	return s.library.UpdateProgress(bookID, position, progress)
}

// Cleanup removes annotation data for books no longer in the library
// and returns the number of entries removed.
func (s *LibraryService) Cleanup() (int, error) {
	removed, err := s.store.CleanupOrphans()
	if err != nil {
		return removed, fmt.Errorf("cleanup failed: %w", err)
	}
	if removed > 0 {
		logger.Info("cleaned up %d orphaned annotation entries", removed)
	}
	return removed, nil
}

// Stats summarises the persisted library and annotation data.
func (s *LibraryService) Stats() domain.LibraryStats {
	highlights, notes, bookmarks := s.store.Counts()
	return domain.LibraryStats{
		TotalBooks:      len(s.library.List()),
		TotalHighlights: highlights,
		TotalNotes:      notes,
		TotalBookmarks:  bookmarks,
	}
}
