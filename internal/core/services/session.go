package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio-cli/internal/annotations"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Session is one open book: the parsed document, its library entry and
// the in-memory annotation stores hydrated from persistence.
type Session struct {
	BookID      string
	Document    *domain.Document
	Record      *domain.BookRecord
	Annotations *annotations.BookContext
}

// SessionService opens and closes reading sessions. Opening parses the
// file, registers it in the library and loads its annotations; closing
// persists the annotations and the reading progress.
type SessionService struct {
	readers driven.ReaderRegistry
	library *LibraryService
	store   driven.AnnotationStore
}

// NewSessionService creates a new session service.
func NewSessionService(readers driven.ReaderRegistry, library *LibraryService, store driven.AnnotationStore) *SessionService {
	return &SessionService{
		readers: readers,
		library: library,
		store:   store,
	}
}

// Open loads the book at path and hydrates its annotation context.
func (s *SessionService) Open(ctx context.Context, path string) (*Session, error) {
	doc, err := s.readers.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	record, err := s.library.Register(path, doc)
	if err != nil {
		return nil, err
	}

	bookCtx := annotations.NewBookContext()
	bookCtx.Highlights.Load(s.store.LoadHighlights(record.ID))
	bookCtx.Notes.Load(s.store.LoadNotes(record.ID))
	bookCtx.Bookmarks.Load(s.store.LoadBookmarks(record.ID))

	logger.Debug("opened %s: %d highlights, %d notes, %d bookmarks",
		record.ID, bookCtx.Highlights.Len(), bookCtx.Notes.Len(), bookCtx.Bookmarks.Len())

	return &Session{
		BookID:      record.ID,
		Document:    doc,
		Record:      record,
		Annotations: bookCtx,
	}, nil
}

// Close persists the session's annotations and reading progress.
// All collections are saved even when one fails; the first error wins.
func (s *SessionService) Close(session *Session, position domain.Position, progress float64) error {
	if session == nil {
		return fmt.Errorf("%w: nil session", domain.ErrInvalidInput)
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(s.store.SaveHighlights(session.BookID, session.Annotations.Highlights.All()))
	keep(s.store.SaveNotes(session.BookID, session.Annotations.Notes.All()))
	keep(s.store.SaveBookmarks(session.BookID, session.Annotations.Bookmarks.All()))
	keep(s.library.UpdateProgress(session.BookID, position, progress))

	if firstErr != nil {
		return fmt.Errorf("failed to save session: %w", firstErr)
	}
	logger.Debug("closed %s at %s (%.1f%%)", session.BookID, position, progress)
	return nil
}

// Save persists the session's annotations without touching progress.
func (s *SessionService) Save(session *Session) error {
	if session == nil {
		return fmt.Errorf("%w: nil session", domain.ErrInvalidInput)
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(s.store.SaveHighlights(session.BookID, session.Annotations.Highlights.All()))
	keep(s.store.SaveNotes(session.BookID, session.Annotations.Notes.All()))
	keep(s.store.SaveBookmarks(session.BookID, session.Annotations.Bookmarks.All()))
	return firstErr
}
