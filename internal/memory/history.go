package memory

import (
	"sync"
	"time"
)

// Exchange is one chat round trip: when it happened, a snapshot of the
// request, and the generated response text.
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	Request   any       `json:"request"`
	Response  string    `json:"response"`
}

// History is the append-only, process-wide chat log. Unbounded, unpersisted,
// clearable as a whole.
type History struct {
	mu      sync.Mutex
	entries []Exchange
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Append records an exchange stamped with the current time.
func (h *History) Append(request any, response string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Exchange{
		Timestamp: time.Now(),
		Request:   request,
		Response:  response,
	})
}

// Tail returns a copy of the most recent limit entries, oldest first.
// A non-positive limit returns an empty slice.
func (h *History) Tail(limit int) []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 {
		return []Exchange{}
	}

	start := 0
	if len(h.entries) > limit {
		start = len(h.entries) - limit
	}

	out := make([]Exchange, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Clear replaces the log with an empty one.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Len returns the number of recorded exchanges.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
