package domain

import "time"

// BookRecord is a library entry for a known book file.
//
// The ID combines the filename with a content-hash prefix, so identical
// file content and name always yield the same ID, while renamed or
// modified files yield a new one. Annotations keyed by a stale ID are
// reclaimed by the persistence layer's orphan cleanup.
type BookRecord struct {
	ID       string `json:"id"`
	Filepath string `json:"filepath"`
	Filename string `json:"filename"`

	AddedAt    time.Time  `json:"added_at"`
	LastOpened *time.Time `json:"last_opened"`

	// ReadingPosition is the last position the reader was at.
	ReadingPosition Position `json:"reading_position"`

	// ReadingProgress is a percentage in [0, 100].
	ReadingProgress float64 `json:"reading_progress"`

	// Metadata holds reader-supplied details such as title and author.
	Metadata map[string]any `json:"metadata"`
}

// LibraryStats summarises the persisted per-book data.
type LibraryStats struct {
	TotalBooks      int `json:"total_books"`
	TotalHighlights int `json:"total_highlights"`
	TotalNotes      int `json:"total_notes"`
	TotalBookmarks  int `json:"total_bookmarks"`
}
