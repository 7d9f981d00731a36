package domain

import "time"

// Highlight marks a text range within one open book.
type Highlight struct {
	// ID is the generated unique identifier.
	ID string `json:"id"`

	// StartIndex and EndIndex bound the highlighted range.
	StartIndex Position `json:"start_index"`
	EndIndex   Position `json:"end_index"`

	// Text is the highlighted text content.
	Text string `json:"text"`

	// Color is an opaque presentation hint; the core never interprets it.
	Color string `json:"color"`

	CreatedAt time.Time `json:"created_at"`

	// NoteIDs lists notes attached to this highlight.
	NoteIDs []string `json:"notes"`
}

// NoteType distinguishes how a note is anchored and displayed.
type NoteType string

// Note types.
const (
	NoteMargin    NoteType = "margin"
	NoteInline    NoteType = "inline"
	NotePopup     NoteType = "popup"
	NoteHighlight NoteType = "highlight_note"
)

// Note is a text annotation anchored either to a raw position or to a
// highlight. The two anchor kinds are mutually exclusive: exactly one
// of Position and HighlightID is set.
type Note struct {
	ID string `json:"id"`

	// Position anchors the note directly in the text. Empty for
	// highlight-attached notes.
	Position Position `json:"position,omitempty"`

	// HighlightID references the owning highlight. The note does not
	// extend the highlight's lifetime; removing the highlight removes
	// its dependent notes.
	HighlightID string `json:"highlight_id,omitempty"`

	Text string   `json:"text"`
	Type NoteType `json:"type"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Bookmark marks a reading position with an optional note.
type Bookmark struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Title    string   `json:"title"`
	Note     string   `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
