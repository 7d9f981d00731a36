package annotations

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// BookmarkStore holds the bookmarks of one open book.
type BookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[string]domain.Bookmark
	order     []string
}

// NewBookmarkStore creates an empty bookmark store.
func NewBookmarkStore() *BookmarkStore {
	return &BookmarkStore{
		bookmarks: make(map[string]domain.Bookmark),
	}
}

// Add inserts a new bookmark and returns its generated ID. An empty
// title defaults to one naming the position.
func (s *BookmarkStore) Add(pos domain.Position, title, note string) string {
	if title == "" {
		title = fmt.Sprintf("Bookmark at %s", pos)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.bookmarks[id] = domain.Bookmark{
		ID:        id,
		Position:  pos,
		Title:     title,
		Note:      note,
		CreatedAt: time.Now(),
	}
	s.order = append(s.order, id)
	return id
}

// Remove deletes a bookmark. It returns false when the ID is absent.
func (s *BookmarkStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[id]; !ok {
		return false
	}
	delete(s.bookmarks, id)
	s.removeFromOrder(id)
	return true
}

// Update replaces a bookmark's title and/or note; nil fields are left
// untouched. It returns false when the ID is absent.
func (s *BookmarkStore) Update(id string, title, note *string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return false
	}
	if title != nil {
		b.Title = *title
	}
	if note != nil {
		b.Note = *note
	}
	s.bookmarks[id] = b
	return true
}

// Get retrieves a bookmark by ID.
func (s *BookmarkStore) Get(id string) (*domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return nil, false
	}
	return &b, true
}

// All returns every bookmark sorted by position.
func (s *BookmarkStore) All() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Bookmark, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.bookmarks[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position.Sortable() < result[j].Position.Sortable()
	})
	return result
}

// Load replaces the store contents wholesale with saved records.
func (s *BookmarkStore) Load(bookmarks []domain.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookmarks = make(map[string]domain.Bookmark, len(bookmarks))
	s.order = make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		s.bookmarks[b.ID] = b
		s.order = append(s.order, b.ID)
	}
}

// Search returns bookmarks whose title contains the query,
// case-insensitively, in stable storage order.
func (s *BookmarkStore) Search(query string) []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var result []domain.Bookmark
	for _, id := range s.order {
		b := s.bookmarks[id]
		if strings.Contains(strings.ToLower(b.Title), query) {
			result = append(result, b)
		}
	}
	return result
}

// Nearest returns the bookmark closest to pos by absolute sortable
// distance. Ties go to the first encountered in stable storage order.
// The second return value is false for an empty store.
func (s *BookmarkStore) Nearest(pos domain.Position) (*domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var nearest *domain.Bookmark
	best := 0.0
	for _, id := range s.order {
		b := s.bookmarks[id]
		d := b.Position.Distance(pos)
		if nearest == nil || d < best {
			copied := b
			nearest = &copied
			best = d
		}
	}
	if nearest == nil {
		return nil, false
	}
	return nearest, true
}

// InRange returns bookmarks whose position falls within [start, end]
// in sortable position terms, sorted by position.
func (s *BookmarkStore) InRange(start, end domain.Position) []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := start.Sortable(), end.Sortable()
	var result []domain.Bookmark
	for _, id := range s.order {
		b := s.bookmarks[id]
		pos := b.Position.Sortable()
		if pos >= lo && pos <= hi {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position.Sortable() < result[j].Position.Sortable()
	})
	return result
}

// Len returns the number of bookmarks.
func (s *BookmarkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookmarks)
}

func (s *BookmarkStore) removeFromOrder(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
