package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookContext_AddNoteToHighlight(t *testing.T) {
	ctx := NewBookContext()
	hid := ctx.Highlights.Add("1.0", "1.8", "passage", "yellow")

	noteID, ok := ctx.AddNoteToHighlight(hid, "what a passage")
	require.True(t, ok)

	// The note carries the FK and the highlight the back-reference.
	note, ok := ctx.Notes.Get(noteID)
	require.True(t, ok)
	assert.Equal(t, hid, note.HighlightID)

	h, _ := ctx.Highlights.Get(hid)
	assert.Equal(t, []string{noteID}, h.NoteIDs)
}

func TestBookContext_AddNoteToMissingHighlight(t *testing.T) {
	ctx := NewBookContext()

	_, ok := ctx.AddNoteToHighlight("no-such-highlight", "text")
	assert.False(t, ok)
	assert.Zero(t, ctx.Notes.Len())
}

func TestBookContext_RemoveHighlightCascades(t *testing.T) {
	ctx := NewBookContext()
	hid := ctx.Highlights.Add("1.0", "1.8", "passage", "yellow")
	ctx.AddNoteToHighlight(hid, "first")
	ctx.AddNoteToHighlight(hid, "second")
	plain := ctx.Notes.Add("9.0", "untouched", "")

	require.True(t, ctx.RemoveHighlight(hid))

	// Dependent notes go with the highlight; others stay.
	assert.Equal(t, 1, ctx.Notes.Len())
	_, ok := ctx.Notes.Get(plain)
	assert.True(t, ok)

	assert.False(t, ctx.RemoveHighlight(hid))
}
