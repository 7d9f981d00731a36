package annotations

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// NoteStore holds the notes of one open book.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]domain.Note
	order []string
}

// NewNoteStore creates an empty note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make(map[string]domain.Note),
	}
}

// Add inserts a position-anchored note and returns its generated ID.
func (s *NoteStore) Add(pos domain.Position, text string, noteType domain.NoteType) string {
	if noteType == "" {
		noteType = domain.NoteMargin
	}
	return s.insert(domain.Note{
		Position: pos,
		Text:     text,
		Type:     noteType,
	})
}

// AddToHighlight inserts a note anchored to a highlight and returns
// its generated ID.
func (s *NoteStore) AddToHighlight(highlightID, text string) string {
	return s.insert(domain.Note{
		HighlightID: highlightID,
		Text:        text,
		Type:        domain.NoteHighlight,
	})
}

func (s *NoteStore) insert(note domain.Note) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.ModifiedAt = now

	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	return note.ID
}

// Update replaces a note's text and stamps its modification time.
// It returns false when the ID is absent.
func (s *NoteStore) Update(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return false
	}
	note.Text = text
	note.ModifiedAt = time.Now()
	s.notes[id] = note
	return true
}

// Remove deletes a note. It returns false when the ID is absent.
func (s *NoteStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return false
	}
	delete(s.notes, id)
	s.removeFromOrder(id)
	return true
}

// RemoveForHighlight deletes every note anchored to the given
// highlight and returns the number removed.
func (s *NoteStore) RemoveForHighlight(highlightID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range s.order {
		if s.notes[id].HighlightID == highlightID {
			delete(s.notes, id)
			removed++
		}
	}
	if removed > 0 {
		kept := s.order[:0]
		for _, id := range s.order {
			if _, ok := s.notes[id]; ok {
				kept = append(kept, id)
			}
		}
		s.order = kept
	}
	return removed
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(id string) (*domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	return &note, true
}

// All returns every note in stable storage order.
func (s *NoteStore) All() []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Note, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.notes[id])
	}
	return result
}

// Load replaces the store contents wholesale with saved records.
func (s *NoteStore) Load(notes []domain.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make(map[string]domain.Note, len(notes))
	s.order = make([]string, 0, len(notes))
	for _, note := range notes {
		s.notes[note.ID] = note
		s.order = append(s.order, note.ID)
	}
}

// ForHighlight returns the notes anchored to a highlight. This is a
// linear filter, not an index; fine at single-book annotation counts.
func (s *NoteStore) ForHighlight(highlightID string) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Note
	for _, id := range s.order {
		if note := s.notes[id]; note.HighlightID == highlightID {
			result = append(result, note)
		}
	}
	return result
}

// Search returns notes whose text contains the query,
// case-insensitively, in stable storage order.
func (s *NoteStore) Search(query string) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var result []domain.Note
	for _, id := range s.order {
		note := s.notes[id]
		if strings.Contains(strings.ToLower(note.Text), query) {
			result = append(result, note)
		}
	}
	return result
}

// InRange returns position-anchored notes whose line falls within
// [start, end] in sortable position terms. Highlight-anchored notes
// have no position of their own and are never returned.
func (s *NoteStore) InRange(start, end domain.Position) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := start.Sortable(), end.Sortable()
	var result []domain.Note
	for _, id := range s.order {
		note := s.notes[id]
		if note.Position == "" {
			continue
		}
		pos := note.Position.Sortable()
		if pos >= lo && pos <= hi {
			result = append(result, note)
		}
	}
	return result
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *NoteStore) removeFromOrder(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
