package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/readers"
	"github.com/custodia-labs/folio-cli/internal/readers/text"
)

func writeTempBook(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newSessionService(t *testing.T) (*SessionService, *jsonfile.Store) {
	t.Helper()
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)

	registry := readers.NewRegistry()
	registry.Register(text.New())

	library := NewLibraryService(store, store)
	return NewSessionService(registry, library, store), store
}

func TestSessionService_Open(t *testing.T) {
	svc, store := newSessionService(t)
	path := writeTempBook(t, "story.txt", "Once upon a time there was a story.")

	session, err := svc.Open(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, store.BookID(path), session.BookID)
	assert.Equal(t, domain.FormatText, session.Document.Format)
	assert.Contains(t, session.Document.Content, "Once upon a time")
	require.NotNil(t, session.Record)
	require.NotNil(t, session.Annotations)
	assert.Zero(t, session.Annotations.Highlights.Len())
}

func TestSessionService_Open_UnsupportedFormat(t *testing.T) {
	svc, _ := newSessionService(t)
	path := writeTempBook(t, "image.png", "not a book")

	_, err := svc.Open(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestSessionService_Open_MissingFile(t *testing.T) {
	svc, _ := newSessionService(t)

	_, err := svc.Open(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_CloseAndReopen(t *testing.T) {
	svc, _ := newSessionService(t)
	path := writeTempBook(t, "story.txt", "Once upon a time there was a story.")

	session, err := svc.Open(context.Background(), path)
	require.NoError(t, err)

	highlightID := session.Annotations.Highlights.Add("1.5", "1.9", "upon", "yellow")
	_, ok := session.Annotations.AddNoteToHighlight(highlightID, "nice phrase")
	require.True(t, ok)
	session.Annotations.Bookmarks.Add("1.0", "start", "")

	require.NoError(t, svc.Close(session, "1.20", 75.0))

	// A fresh session sees the persisted annotations and progress.
	reopened, err := svc.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Annotations.Highlights.Len())
	assert.Equal(t, 1, reopened.Annotations.Notes.Len())
	assert.Equal(t, 1, reopened.Annotations.Bookmarks.Len())
	assert.Equal(t, domain.Position("1.20"), reopened.Record.ReadingPosition)
	assert.InDelta(t, 75.0, reopened.Record.ReadingProgress, 1e-9)

	highlight, ok := reopened.Annotations.Highlights.Get(highlightID)
	require.True(t, ok)
	assert.Equal(t, "upon", highlight.Text)
	assert.Len(t, highlight.NoteIDs, 1)
}

func TestSessionService_Close_NilSession(t *testing.T) {
	svc, _ := newSessionService(t)

	err := svc.Close(nil, "1.0", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionService_Save(t *testing.T) {
	svc, store := newSessionService(t)
	path := writeTempBook(t, "story.txt", "Once upon a time there was a story.")

	session, err := svc.Open(context.Background(), path)
	require.NoError(t, err)
	session.Annotations.Notes.Add("1.0", "first impression", domain.NoteMargin)

	require.NoError(t, svc.Save(session))

	assert.Len(t, store.LoadNotes(session.BookID), 1)
	// Progress is untouched by Save.
	record, err := store.Get(session.BookID)
	require.NoError(t, err)
	assert.Equal(t, domain.Position("1.0"), record.ReadingPosition)
}
