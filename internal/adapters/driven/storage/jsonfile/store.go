package jsonfile

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Store implements the persistence ports.
var (
	_ driven.LibraryStore    = (*Store)(nil)
	_ driven.AnnotationStore = (*Store)(nil)
	_ driven.SettingsStore   = (*Store)(nil)
)

// Collection file names within the data directory.
const (
	highlightsFile = "highlights.json"
	notesFile      = "notes.json"
	bookmarksFile  = "bookmarks.json"
	settingsFile   = "settings.json"
	libraryFile    = "library.json"
)

// bookIDHashLen is the number of hex characters of the content hash
// kept in a book ID.
const bookIDHashLen = 8

// Store is a JSON-file-backed implementation of the persistence ports.
type Store struct {
	mu  sync.RWMutex
	dir string

	highlights map[string][]domain.Highlight
	notes      map[string][]domain.Note
	bookmarks  map[string][]domain.Bookmark
	settings   map[string]any
	library    map[string]domain.BookRecord
}

// New creates a store rooted at dataDir, creating the directory when
// needed. An empty dataDir defaults to ~/.folio.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".folio")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		dir:        dataDir,
		highlights: make(map[string][]domain.Highlight),
		notes:      make(map[string][]domain.Note),
		bookmarks:  make(map[string][]domain.Bookmark),
		settings:   make(map[string]any),
		library:    make(map[string]domain.BookRecord),
	}

	loadJSON(s.path(highlightsFile), &s.highlights)
	loadJSON(s.path(notesFile), &s.notes)
	loadJSON(s.path(bookmarksFile), &s.bookmarks)
	loadJSON(s.path(settingsFile), &s.settings)
	loadJSON(s.path(libraryFile), &s.library)

	return s, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

// loadJSON reads a collection file into target, leaving target alone
// on a missing or corrupt file. Corruption is logged, never propagated:
// a broken local cache must not block startup.
func loadJSON(path string, target any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("reading %s: %v", path, err)
		}
		return
	}
	if err := json.Unmarshal(data, target); err != nil {
		logger.Warn("parsing %s, falling back to empty: %v", path, err)
	}
}

// saveJSON serialises data to a temporary file next to path and
// atomically renames it into place.
func saveJSON(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// BookID derives the stable identifier for the file at path: basename
// plus the first hex characters of the content's BLAKE3 hash. When the
// file cannot be read, the basename itself is hashed so the caller
// still gets a usable (if weaker) identifier.
func (s *Store) BookID(path string) string {
	name := filepath.Base(path)
	return name + "_" + contentHash(path, name)[:bookIDHashLen]
}

func contentHash(path, fallback string) string {
	hasher := blake3.New()

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if _, err := io.Copy(hasher, f); err == nil {
			return hex.EncodeToString(hasher.Sum(nil))
		}
	}

	hasher.Reset()
	hasher.Write([]byte(fallback))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Highlights

// SaveHighlights replaces the book's highlight collection.
func (s *Store) SaveHighlights(bookID string, highlights []domain.Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlights[bookID] = highlights
	return saveJSON(s.path(highlightsFile), s.highlights)
}

// LoadHighlights returns a copy of the book's highlight collection.
func (s *Store) LoadHighlights(bookID string) []domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.highlights[bookID])
}

// Notes

// SaveNotes replaces the book's note collection.
func (s *Store) SaveNotes(bookID string, notes []domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[bookID] = notes
	return saveJSON(s.path(notesFile), s.notes)
}

// LoadNotes returns a copy of the book's note collection.
func (s *Store) LoadNotes(bookID string) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes[bookID])
}

// Bookmarks

// SaveBookmarks replaces the book's bookmark collection.
func (s *Store) SaveBookmarks(bookID string, bookmarks []domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookmarks[bookID] = bookmarks
	return saveJSON(s.path(bookmarksFile), s.bookmarks)
}

// LoadBookmarks returns a copy of the book's bookmark collection.
func (s *Store) LoadBookmarks(bookID string) []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookmarks[bookID])
}

// DeleteBook removes every annotation collection for a book.
// Collections are saved independently; a failure in one does not stop
// the others.
func (s *Store) DeleteBook(bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	save := func(path string, data any) {
		if err := saveJSON(path, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if _, ok := s.highlights[bookID]; ok {
		delete(s.highlights, bookID)
		save(s.path(highlightsFile), s.highlights)
	}
	if _, ok := s.notes[bookID]; ok {
		delete(s.notes, bookID)
		save(s.path(notesFile), s.notes)
	}
	if _, ok := s.bookmarks[bookID]; ok {
		delete(s.bookmarks, bookID)
		save(s.path(bookmarksFile), s.bookmarks)
	}
	return firstErr
}

// CleanupOrphans removes annotation entries whose book ID is absent
// from the library and returns the number of entries removed.
func (s *Store) CleanupOrphans() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for bookID := range s.highlights {
		if _, ok := s.library[bookID]; !ok {
			delete(s.highlights, bookID)
			removed++
		}
	}
	for bookID := range s.notes {
		if _, ok := s.library[bookID]; !ok {
			delete(s.notes, bookID)
			removed++
		}
	}
	for bookID := range s.bookmarks {
		if _, ok := s.library[bookID]; !ok {
			delete(s.bookmarks, bookID)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	var firstErr error
	for _, c := range []struct {
		path string
		data any
	}{
		{s.path(highlightsFile), s.highlights},
		{s.path(notesFile), s.notes},
		{s.path(bookmarksFile), s.bookmarks},
	} {
		if err := saveJSON(c.path, c.data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return removed, firstErr
}

// Counts returns the total persisted highlights, notes and bookmarks.
func (s *Store) Counts() (highlights, notes, bookmarks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, hs := range s.highlights {
		highlights += len(hs)
	}
	for _, ns := range s.notes {
		notes += len(ns)
	}
	for _, bs := range s.bookmarks {
		bookmarks += len(bs)
	}
	return highlights, notes, bookmarks
}

// Library

// Add inserts or replaces a library entry.
func (s *Store) Add(record domain.BookRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.library[record.ID] = record
	return saveJSON(s.path(libraryFile), s.library)
}

// Get retrieves a library entry by book ID.
func (s *Store) Get(bookID string) (*domain.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.library[bookID]
	if !ok {
		return nil, fmt.Errorf("%w: book %s", domain.ErrNotFound, bookID)
	}
	return &record, nil
}

// List returns all library entries ordered by the time they were added,
// breaking ties by ID so the order is stable.
func (s *Store) List() []domain.BookRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.BookRecord, 0, len(s.library))
	for _, record := range s.library {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AddedAt.Equal(result[j].AddedAt) {
			return result[i].AddedAt.Before(result[j].AddedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Remove deletes a library entry. Removing an absent ID is not an error.
func (s *Store) Remove(bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.library[bookID]; !ok {
		return nil
	}
	delete(s.library, bookID)
	return saveJSON(s.path(libraryFile), s.library)
}

// UpdateProgress records the reading position and progress for a book
// and stamps its last-opened time.
func (s *Store) UpdateProgress(bookID string, position domain.Position, progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.library[bookID]
	if !ok {
		return fmt.Errorf("%w: book %s", domain.ErrNotFound, bookID)
	}

	now := time.Now()
	record.ReadingPosition = position
	record.ReadingProgress = progress
	record.LastOpened = &now
	s.library[bookID] = record
	return saveJSON(s.path(libraryFile), s.library)
}

// Settings

// GetSetting retrieves a setting value by key.
func (s *Store) GetSetting(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.settings[key]
	return val, ok
}

// SetSetting stores a setting value and persists immediately.
func (s *Store) SetSetting(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return saveJSON(s.path(settingsFile), s.settings)
}

// Settings returns a copy of all settings.
func (s *Store) Settings() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string]any, len(s.settings))
	for k, v := range s.settings {
		copied[k] = v
	}
	return copied
}
