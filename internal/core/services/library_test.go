package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func newLibraryService(t *testing.T) (*LibraryService, *jsonfile.Store) {
	t.Helper()
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	return NewLibraryService(store, store), store
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		Format:  domain.FormatText,
		Title:   "Sample Book",
		Author:  "Jane Writer",
		Content: "one two three four five",
		Chapters: []domain.Chapter{
			{Title: "Full Text", Content: "one two three four five"},
		},
	}
}

func TestLibraryService_Register(t *testing.T) {
	svc, store := newLibraryService(t)
	path := writeTempBook(t, "novel.txt", "some book content")

	record, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, store.BookID(path), record.ID)
	assert.Equal(t, path, record.Filepath)
	assert.Equal(t, "novel.txt", record.Filename)
	assert.Equal(t, domain.Position("1.0"), record.ReadingPosition)
	assert.Equal(t, "Sample Book", record.Metadata["title"])
	assert.Equal(t, "Jane Writer", record.Metadata["author"])
	assert.Equal(t, "text", record.Metadata["format"])
}

func TestLibraryService_Register_ExistingKeepsProgress(t *testing.T) {
	svc, store := newLibraryService(t)
	path := writeTempBook(t, "novel.txt", "some book content")

	record, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, store.UpdateProgress(record.ID, "12.0", 40))

	again, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, record.ID, again.ID)
	assert.Equal(t, domain.Position("12.0"), again.ReadingPosition)
	assert.InDelta(t, 40, again.ReadingProgress, 1e-9)
}

func TestLibraryService_Remove_CascadesAnnotations(t *testing.T) {
	svc, store := newLibraryService(t)
	path := writeTempBook(t, "novel.txt", "some book content")

	record, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, store.SaveHighlights(record.ID, []domain.Highlight{{ID: "h-1"}}))
	require.NoError(t, store.SaveNotes(record.ID, []domain.Note{{ID: "n-1"}}))

	require.NoError(t, svc.Remove(record.ID))

	_, err = svc.Get(record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.LoadHighlights(record.ID))
	assert.Empty(t, store.LoadNotes(record.ID))
}

func TestLibraryService_Remove_NotFound(t *testing.T) {
	svc, _ := newLibraryService(t)

	err := svc.Remove("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Cleanup(t *testing.T) {
	svc, store := newLibraryService(t)
	path := writeTempBook(t, "kept.txt", "kept content")

	record, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, store.SaveHighlights(record.ID, []domain.Highlight{{ID: "h-kept"}}))
	require.NoError(t, store.SaveHighlights("gone-book", []domain.Highlight{{ID: "h-gone"}}))
	require.NoError(t, store.SaveBookmarks("gone-book", []domain.Bookmark{{ID: "b-gone"}}))

	removed, err := svc.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Len(t, store.LoadHighlights(record.ID), 1)
}

func TestLibraryService_Stats(t *testing.T) {
	svc, store := newLibraryService(t)
	path := writeTempBook(t, "novel.txt", "some book content")

	record, err := svc.Register(path, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, store.SaveHighlights(record.ID, []domain.Highlight{{ID: "h1"}, {ID: "h2"}}))
	require.NoError(t, store.SaveNotes(record.ID, []domain.Note{{ID: "n1"}}))

	stats := svc.Stats()
	assert.Equal(t, 1, stats.TotalBooks)
	assert.Equal(t, 2, stats.TotalHighlights)
	assert.Equal(t, 1, stats.TotalNotes)
	assert.Zero(t, stats.TotalBookmarks)
}
