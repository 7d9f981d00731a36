package annotations

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// DefaultHighlightColor is used when no color is given.
const DefaultHighlightColor = "yellow"

// HighlightStore holds the highlights of one open book.
type HighlightStore struct {
	mu         sync.RWMutex
	highlights map[string]domain.Highlight
	order      []string
}

// NewHighlightStore creates an empty highlight store.
func NewHighlightStore() *HighlightStore {
	return &HighlightStore{
		highlights: make(map[string]domain.Highlight),
	}
}

// Add inserts a new highlight and returns its generated ID.
func (s *HighlightStore) Add(start, end domain.Position, text, color string) string {
	if color == "" {
		color = DefaultHighlightColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.highlights[id] = domain.Highlight{
		ID:         id,
		StartIndex: start,
		EndIndex:   end,
		Text:       text,
		Color:      color,
		CreatedAt:  time.Now(),
		NoteIDs:    []string{},
	}
	s.order = append(s.order, id)
	return id
}

// Remove deletes a highlight. It returns false when the ID is absent.
func (s *HighlightStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.highlights[id]; !ok {
		return false
	}
	delete(s.highlights, id)
	s.removeFromOrder(id)
	return true
}

// Get retrieves a highlight by ID.
func (s *HighlightStore) Get(id string) (*domain.Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.highlights[id]
	if !ok {
		return nil, false
	}
	return &h, true
}

// All returns every highlight in stable storage order.
func (s *HighlightStore) All() []domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Highlight, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.highlights[id])
	}
	return result
}

// Load replaces the store contents wholesale with saved records.
func (s *HighlightStore) Load(highlights []domain.Highlight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlights = make(map[string]domain.Highlight, len(highlights))
	s.order = make([]string, 0, len(highlights))
	for _, h := range highlights {
		s.highlights[h.ID] = h
		s.order = append(s.order, h.ID)
	}
}

// SetColor updates a highlight's color. It returns false when the ID
// is absent.
func (s *HighlightStore) SetColor(id, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.highlights[id]
	if !ok {
		return false
	}
	h.Color = color
	s.highlights[id] = h
	return true
}

// AttachNote records a note ID on a highlight. It returns false when
// the highlight is absent.
func (s *HighlightStore) AttachNote(id, noteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.highlights[id]
	if !ok {
		return false
	}
	h.NoteIDs = append(h.NoteIDs, noteID)
	s.highlights[id] = h
	return true
}

// Search returns highlights whose text contains the query,
// case-insensitively, in stable storage order.
func (s *HighlightStore) Search(query string) []domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var result []domain.Highlight
	for _, id := range s.order {
		h := s.highlights[id]
		if strings.Contains(strings.ToLower(h.Text), query) {
			result = append(result, h)
		}
	}
	return result
}

// InRange returns highlights whose range overlaps [start, end] in
// sortable position terms.
func (s *HighlightStore) InRange(start, end domain.Position) []domain.Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := start.Sortable(), end.Sortable()
	var result []domain.Highlight
	for _, id := range s.order {
		h := s.highlights[id]
		if h.StartIndex.Sortable() <= hi && h.EndIndex.Sortable() >= lo {
			result = append(result, h)
		}
	}
	return result
}

// Nearest returns the highlight whose start is closest to pos by
// absolute sortable distance. Ties go to the first encountered in
// stable storage order. The second return value is false for an empty
// store.
func (s *HighlightStore) Nearest(pos domain.Position) (*domain.Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var nearest *domain.Highlight
	best := 0.0
	for _, id := range s.order {
		h := s.highlights[id]
		d := h.StartIndex.Distance(pos)
		if nearest == nil || d < best {
			copied := h
			nearest = &copied
			best = d
		}
	}
	if nearest == nil {
		return nil, false
	}
	return nearest, true
}

// Len returns the number of highlights.
func (s *HighlightStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.highlights)
}

func (s *HighlightStore) removeFromOrder(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
