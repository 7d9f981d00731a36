package driven

import "github.com/custodia-labs/folio-cli/internal/core/domain"

// LibraryStore persists library entries and derives book identity.
//
// Store failures are recovered locally: loads return empty defaults and
// saves report failure through the returned error, which callers may
// log and continue from. A corrupt local store must never prevent the
// application from starting.
type LibraryStore interface {
	// BookID derives the stable identifier for the file at path:
	// basename plus a content-hash prefix.
	BookID(path string) string

	// Add inserts or replaces a library entry.
	Add(record domain.BookRecord) error

	// Get retrieves a library entry by book ID.
	Get(bookID string) (*domain.BookRecord, error)

	// List returns all library entries.
	List() []domain.BookRecord

	// Remove deletes a library entry. Removing an absent ID is not an error.
	Remove(bookID string) error

	// UpdateProgress records the reading position and progress for a
	// book and stamps its last-opened time.
	UpdateProgress(bookID string, position domain.Position, progress float64) error
}

// AnnotationStore persists per-book annotation collections.
// Each collection is keyed by book ID; saving a collection replaces the
// book's entry wholesale.
type AnnotationStore interface {
	SaveHighlights(bookID string, highlights []domain.Highlight) error
	LoadHighlights(bookID string) []domain.Highlight

	SaveNotes(bookID string, notes []domain.Note) error
	LoadNotes(bookID string) []domain.Note

	SaveBookmarks(bookID string, bookmarks []domain.Bookmark) error
	LoadBookmarks(bookID string) []domain.Bookmark

	// DeleteBook removes all annotation collections for a book.
	DeleteBook(bookID string) error

	// CleanupOrphans removes annotation entries whose book ID is not
	// present in the library and returns the number of entries removed.
	CleanupOrphans() (int, error)

	// Counts returns the total number of persisted highlights, notes
	// and bookmarks across all books.
	Counts() (highlights, notes, bookmarks int)
}

// SettingsStore persists flat runtime user settings.
type SettingsStore interface {
	// GetSetting retrieves a setting value by key.
	GetSetting(key string) (any, bool)

	// SetSetting stores a setting value and persists immediately.
	SetSetting(key string, value any) error

	// Settings returns a copy of all settings.
	Settings() map[string]any
}
