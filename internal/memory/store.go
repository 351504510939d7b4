// Package memory holds the process-local, unpersisted stores: the long-term
// memory used as naive retrieval context and the chat history log. Both are
// advisory, unbounded, and lost on restart.
package memory

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a record id is absent.
var ErrNotFound = errors.New("memory not found")

// previewLength is the number of characters shown in listing previews.
const previewLength = 100

// Record is one stored memory entry.
type Record struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
}

// Summary is the listing view of a record.
type Summary struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview"`
}

// Store maps ids to records, insertion-ordered. Writers and readers share a
// RWMutex; last write wins on same-id overwrites. This is best-effort
// context, not a system of record.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Put upserts a record under id, stamping the current time. Overwriting an
// existing id replaces text, metadata, and timestamp in place; the record
// keeps its original insertion position and the store size is unchanged.
func (s *Store) Put(id, text string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = &Record{
		ID:        id,
		Text:      text,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
}

// Get returns the record for id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Search lowercases the query, splits it on whitespace, and returns the
// space-joined texts of the first topK records in which at least one query
// word appears as a substring. Insertion order, no relevance ranking.
// Deliberately naive text matching, not semantic retrieval.
func (s *Store) Search(query string, topK int) string {
	if topK <= 0 {
		return ""
	}

	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for _, id := range s.order {
		text := strings.ToLower(s.records[id].Text)
		for _, word := range words {
			if strings.Contains(text, word) {
				matches = append(matches, s.records[id].Text)
				break
			}
		}
		if len(matches) == topK {
			break
		}
	}

	return strings.Join(matches, " ")
}

// Delete removes the record for id. ErrNotFound when absent.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)

	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a summary for every record in insertion order.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		summaries = append(summaries, Summary{
			ID:        rec.ID,
			Timestamp: rec.Timestamp,
			Preview:   preview(rec.Text),
		})
	}
	return summaries
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// preview truncates text to the listing preview length.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}
