package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// exportVersion tags book data exports so future imports can detect
// incompatible layouts.
const exportVersion = "1.0"

// BookExport is the interchange form for a whole book's data.
type BookExport struct {
	BookInfo   *domain.BookRecord `json:"book_info,omitempty"`
	Highlights []domain.Highlight `json:"highlights,omitempty"`
	Notes      []domain.Note      `json:"notes,omitempty"`
	Bookmarks  []domain.Bookmark  `json:"bookmarks,omitempty"`
	ExportedAt time.Time          `json:"exported_at"`
	Version    string             `json:"export_version"`
}

// ExportService renders persisted annotation data into portable blobs.
// It only produces and consumes bytes; writing them anywhere is the
// caller's concern.
type ExportService struct {
	library driven.LibraryStore
	store   driven.AnnotationStore
}

// NewExportService creates a new export service.
func NewExportService(library driven.LibraryStore, store driven.AnnotationStore) *ExportService {
	return &ExportService{
		library: library,
		store:   store,
	}
}

// ExportBookData bundles a book's library entry and all of its
// annotations into a single JSON document.
func (s *ExportService) ExportBookData(bookID string) ([]byte, error) {
	info, err := s.library.Get(bookID)
	if err != nil {
		return nil, err
	}

	export := BookExport{
		BookInfo:   info,
		Highlights: s.store.LoadHighlights(bookID),
		Notes:      s.store.LoadNotes(bookID),
		Bookmarks:  s.store.LoadBookmarks(bookID),
		ExportedAt: time.Now(),
		Version:    exportVersion,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ImportBookData restores a book's data from an export blob. Only the
// collections present in the blob are written; absent ones keep their
// current contents.
func (s *ExportService) ImportBookData(bookID string, data []byte) error {
	var export BookExport
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("%w: invalid export data: %v", domain.ErrInvalidInput, err)
	}

	if export.Highlights != nil {
		if err := s.store.SaveHighlights(bookID, export.Highlights); err != nil {
			return err
		}
	}
	if export.Notes != nil {
		if err := s.store.SaveNotes(bookID, export.Notes); err != nil {
			return err
		}
	}
	if export.Bookmarks != nil {
		if err := s.store.SaveBookmarks(bookID, export.Bookmarks); err != nil {
			return err
		}
	}
	if export.BookInfo != nil {
		record := *export.BookInfo
		record.ID = bookID
		if err := s.library.Add(record); err != nil {
			return err
		}
	}
	return nil
}

// NotesText renders a book's notes as plain text, oldest first.
func (s *ExportService) NotesText(bookID string) string {
	notes := s.store.LoadNotes(bookID)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})

	var b strings.Builder
	b.WriteString("=== NOTES EXPORT ===\n")
	for _, note := range notes {
		fmt.Fprintf(&b, "\nNote ID: %s\n", note.ID)
		fmt.Fprintf(&b, "Created: %s\n", note.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "Type: %s\n", note.Type)
		if note.Position != "" {
			fmt.Fprintf(&b, "Position: %s\n", note.Position)
		}
		fmt.Fprintf(&b, "Text: %s\n", note.Text)
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}
	return b.String()
}

// NotesJSON renders a book's notes as indented JSON.
func (s *ExportService) NotesJSON(bookID string) ([]byte, error) {
	notes := s.store.LoadNotes(bookID)
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notes: %w", err)
	}
	return data, nil
}

// BookmarksText renders a book's bookmarks as plain text in position
// order.
func (s *ExportService) BookmarksText(bookID string) string {
	bookmarks := s.store.LoadBookmarks(bookID)
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].Position.Sortable() < bookmarks[j].Position.Sortable()
	})

	var b strings.Builder
	b.WriteString("=== BOOKMARKS EXPORT ===\n")
	for _, bm := range bookmarks {
		fmt.Fprintf(&b, "\nTitle: %s\n", bm.Title)
		fmt.Fprintf(&b, "Position: %s\n", bm.Position)
		fmt.Fprintf(&b, "Created: %s\n", bm.CreatedAt.Format(time.RFC3339))
		if bm.Note != "" {
			fmt.Fprintf(&b, "Note: %s\n", bm.Note)
		}
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}
	return b.String()
}
