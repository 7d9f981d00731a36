package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	return s, dir
}

func TestNew_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.DirExists(t, dir)
}

func TestHighlights_RoundTrip(t *testing.T) {
	s, dir := newStore(t)

	saved := []domain.Highlight{
		{
			ID:         "h-1",
			StartIndex: "1.0",
			EndIndex:   "1.12",
			Text:       "highlighted text",
			Color:      "yellow",
			CreatedAt:  time.Now().Truncate(time.Second),
			NoteIDs:    []string{"n-1"},
		},
	}
	require.NoError(t, s.SaveHighlights("book_abc", saved))

	// A fresh store reading the same directory sees identical records.
	reloaded, err := New(dir)
	require.NoError(t, err)
	got := reloaded.LoadHighlights("book_abc")
	require.Len(t, got, 1)
	assert.Equal(t, saved[0].ID, got[0].ID)
	assert.Equal(t, saved[0].StartIndex, got[0].StartIndex)
	assert.Equal(t, saved[0].Text, got[0].Text)
	assert.Equal(t, saved[0].NoteIDs, got[0].NoteIDs)
	assert.True(t, saved[0].CreatedAt.Equal(got[0].CreatedAt))
}

func TestLoad_ReturnsCopy(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.SaveNotes("book_abc", []domain.Note{
		{ID: "n-1", Text: "first"},
		{ID: "n-2", Text: "second"},
	}))

	// Reordering a loaded slice must not touch the store's collection.
	loaded := s.LoadNotes("book_abc")
	loaded[0], loaded[1] = loaded[1], loaded[0]

	got := s.LoadNotes("book_abc")
	require.Len(t, got, 2)
	assert.Equal(t, "n-1", got[0].ID)
	assert.Equal(t, "n-2", got[1].ID)
}

func TestNotesAndBookmarks_RoundTrip(t *testing.T) {
	s, dir := newStore(t)

	notes := []domain.Note{
		{ID: "n-1", Position: "3.0", Text: "margin note", Type: domain.NoteMargin},
		{ID: "n-2", HighlightID: "h-1", Text: "attached", Type: domain.NoteHighlight},
	}
	bookmarks := []domain.Bookmark{
		{ID: "b-1", Position: "4.0", Title: "start here"},
	}
	require.NoError(t, s.SaveNotes("book_abc", notes))
	require.NoError(t, s.SaveBookmarks("book_abc", bookmarks))

	reloaded, err := New(dir)
	require.NoError(t, err)

	gotNotes := reloaded.LoadNotes("book_abc")
	require.Len(t, gotNotes, 2)
	assert.Equal(t, "n-2", gotNotes[1].ID)
	assert.Equal(t, "h-1", gotNotes[1].HighlightID)
	assert.Empty(t, gotNotes[1].Position)

	gotBookmarks := reloaded.LoadBookmarks("book_abc")
	require.Len(t, gotBookmarks, 1)
	assert.Equal(t, "start here", gotBookmarks[0].Title)
}

func TestLoad_MissingBookIsEmpty(t *testing.T) {
	s, _ := newStore(t)
	assert.Empty(t, s.LoadHighlights("unknown"))
	assert.Empty(t, s.LoadNotes("unknown"))
	assert.Empty(t, s.LoadBookmarks("unknown"))
}

func TestLoad_CorruptFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "highlights.json"), []byte("{not json"), 0600))

	s, err := New(dir)
	require.NoError(t, err, "corrupt cache must not block startup")
	assert.Empty(t, s.LoadHighlights("book_abc"))
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, s.SaveHighlights("book_abc", nil))

	assert.FileExists(t, filepath.Join(dir, "highlights.json"))
	assert.NoFileExists(t, filepath.Join(dir, "highlights.json.tmp"))
}

func TestBookID_Deterministic(t *testing.T) {
	s, _ := newStore(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "novel.txt")
	require.NoError(t, os.WriteFile(path, []byte("once upon a time"), 0600))

	id1 := s.BookID(path)
	id2 := s.BookID(path)
	assert.Equal(t, id1, id2, "identical content and name yield the same ID")
	assert.Regexp(t, `^novel\.txt_[0-9a-f]{8}$`, id1)

	// Modified content yields a different ID.
	require.NoError(t, os.WriteFile(path, []byte("changed content"), 0600))
	assert.NotEqual(t, id1, s.BookID(path))

	// A renamed copy yields a different ID too.
	renamed := filepath.Join(dir, "renamed.txt")
	require.NoError(t, os.WriteFile(renamed, []byte("changed content"), 0600))
	assert.NotEqual(t, s.BookID(path), s.BookID(renamed))
}

func TestBookID_UnreadableFileFallsBackToName(t *testing.T) {
	s, _ := newStore(t)

	id := s.BookID(filepath.Join(t.TempDir(), "ghost.txt"))
	assert.Regexp(t, `^ghost\.txt_[0-9a-f]{8}$`, id)
}

func TestLibrary_AddGetListRemove(t *testing.T) {
	s, _ := newStore(t)

	record := domain.BookRecord{
		ID:              "novel.txt_12345678",
		Filepath:        "/books/novel.txt",
		Filename:        "novel.txt",
		AddedAt:         time.Now(),
		ReadingPosition: "1.0",
		Metadata:        map[string]any{"title": "A Novel"},
	}
	require.NoError(t, s.Add(record))

	got, err := s.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Filepath, got.Filepath)

	assert.Len(t, s.List(), 1)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Remove(record.ID))
	assert.Empty(t, s.List())
	require.NoError(t, s.Remove(record.ID), "removing an absent ID is not an error")
}

func TestLibrary_ListOrderedByAddedAt(t *testing.T) {
	s, _ := newStore(t)

	base := time.Now()
	require.NoError(t, s.Add(domain.BookRecord{ID: "newer", AddedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Add(domain.BookRecord{ID: "older", AddedAt: base}))
	require.NoError(t, s.Add(domain.BookRecord{ID: "middle", AddedAt: base.Add(time.Minute)}))

	records := s.List()
	require.Len(t, records, 3)
	assert.Equal(t, "older", records[0].ID)
	assert.Equal(t, "middle", records[1].ID)
	assert.Equal(t, "newer", records[2].ID)
}

func TestLibrary_UpdateProgress(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Add(domain.BookRecord{ID: "b1", ReadingPosition: "1.0"}))

	require.NoError(t, s.UpdateProgress("b1", "42.7", 55.5))

	got, err := s.Get("b1")
	require.NoError(t, err)
	assert.Equal(t, domain.Position("42.7"), got.ReadingPosition)
	assert.InDelta(t, 55.5, got.ReadingProgress, 1e-9)
	require.NotNil(t, got.LastOpened)

	err = s.UpdateProgress("missing", "1.0", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCleanupOrphans(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Add(domain.BookRecord{ID: "book-a"}))
	require.NoError(t, s.SaveHighlights("book-a", []domain.Highlight{{ID: "h-a"}}))
	require.NoError(t, s.SaveHighlights("book-b", []domain.Highlight{{ID: "h-b"}}))

	// book-b is not in the library; exactly its entry goes.
	removed, err := s.CleanupOrphans()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, s.LoadHighlights("book-a"), 1)
	assert.Empty(t, s.LoadHighlights("book-b"))

	removed, err = s.CleanupOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteBook(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.SaveHighlights("b1", []domain.Highlight{{ID: "h"}}))
	require.NoError(t, s.SaveNotes("b1", []domain.Note{{ID: "n"}}))
	require.NoError(t, s.SaveBookmarks("b1", []domain.Bookmark{{ID: "b"}}))

	require.NoError(t, s.DeleteBook("b1"))
	assert.Empty(t, s.LoadHighlights("b1"))
	assert.Empty(t, s.LoadNotes("b1"))
	assert.Empty(t, s.LoadBookmarks("b1"))
}

func TestCounts(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.SaveHighlights("b1", []domain.Highlight{{ID: "h1"}, {ID: "h2"}}))
	require.NoError(t, s.SaveNotes("b2", []domain.Note{{ID: "n1"}}))

	highlights, notes, bookmarks := s.Counts()
	assert.Equal(t, 2, highlights)
	assert.Equal(t, 1, notes)
	assert.Zero(t, bookmarks)
}

func TestSettings(t *testing.T) {
	s, dir := newStore(t)

	_, ok := s.GetSetting("theme")
	assert.False(t, ok)

	require.NoError(t, s.SetSetting("theme", "dark"))

	reloaded, err := New(dir)
	require.NoError(t, err)
	val, ok := reloaded.GetSetting("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", val)

	all := reloaded.Settings()
	assert.Equal(t, "dark", all["theme"])

	// The returned map is a copy.
	all["theme"] = "light"
	val, _ = reloaded.GetSetting("theme")
	assert.Equal(t, "dark", val)
}
