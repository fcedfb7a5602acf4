// Package notestore implements the in-memory note store backing the MCP
// resource surface. Notes live for the duration of the process; there is
// no persistence by design.
package notestore

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/starford/raido/internal/models"
)

// Store is an insertion-ordered map from note name to content.
//
// The stdio transport serves one request at a time, but the HTTP transport
// can have several sessions in flight, so access is mutex-guarded.
type Store struct {
	mu    sync.RWMutex
	notes *orderedmap.OrderedMap[string, string]
}

// New creates an empty store.
func New() *Store {
	return &Store{notes: orderedmap.New[string, string]()}
}

// Put inserts or overwrites a note and reports whether the name was new.
// Overwriting keeps the note's original position in iteration order.
func (s *Store) Put(name, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.notes.Set(name, content)
	return !existed
}

// Get returns the content of the named note.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Get(name)
}

// List returns all notes in insertion order.
func (s *Store) List() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]models.Note, 0, s.notes.Len())
	for pair := s.notes.Oldest(); pair != nil; pair = pair.Next() {
		notes = append(notes, models.Note{Name: pair.Key, Content: pair.Value})
	}
	return notes
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Len()
}
