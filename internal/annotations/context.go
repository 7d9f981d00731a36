package annotations

// BookContext groups the annotation stores for one open book. The host
// creates one per opened book and passes it around explicitly; nothing
// is shared between books.
type BookContext struct {
	Highlights *HighlightStore
	Notes      *NoteStore
	Bookmarks  *BookmarkStore
}

// NewBookContext creates empty stores for a freshly opened book.
func NewBookContext() *BookContext {
	return &BookContext{
		Highlights: NewHighlightStore(),
		Notes:      NewNoteStore(),
		Bookmarks:  NewBookmarkStore(),
	}
}

// AddNoteToHighlight inserts a highlight-anchored note and records the
// back-reference on the highlight. It returns the note ID and false
// when the highlight does not exist.
func (c *BookContext) AddNoteToHighlight(highlightID, text string) (string, bool) {
	if _, ok := c.Highlights.Get(highlightID); !ok {
		return "", false
	}
	noteID := c.Notes.AddToHighlight(highlightID, text)
	c.Highlights.AttachNote(highlightID, noteID)
	return noteID, true
}

// RemoveHighlight deletes a highlight and cascade-deletes its
// dependent notes, so no note is left referencing a dead highlight.
// It returns false when the highlight is absent.
func (c *BookContext) RemoveHighlight(highlightID string) bool {
	if !c.Highlights.Remove(highlightID) {
		return false
	}
	c.Notes.RemoveForHighlight(highlightID)
	return true
}
