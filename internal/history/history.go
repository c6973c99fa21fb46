package history

import (
	"strings"
	"sync"
)

// DefaultSize is used when a non-positive size is configured.
const DefaultSize = 100

// History recalls previously submitted queries. It lives for the session only.
type History struct {
	mu      sync.Mutex
	entries []string
	size    int
	// Position while navigating; -1 means the user is editing new input.
	index int
	// Input that was being typed when navigation started.
	draft string
}

// New instantiates and returns a history bounded to size entries.
func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{size: size, index: -1}
}

// Add records a submitted query. Blank input and repeats of the latest entry are ignored.
func (h *History) Add(entry string) {
	entry = strings.TrimSpace(entry)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.draft = ""
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.size {
		h.entries = h.entries[len(h.entries)-h.size:]
	}
}

// Previous steps back in time. The input being typed is kept as a draft so Next can restore it.
func (h *History) Previous(input string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case len(h.entries) == 0:
		return "", false
	case h.index == -1:
		h.draft = input
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	default:
		return h.entries[0], false
	}
	return h.entries[h.index], true
}

// Next steps forward in time, ending on the saved draft.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == -1 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		h.index = -1
		return h.draft, true
	}
	return h.entries[h.index], true
}

// Reset stops navigating.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.draft = ""
}

// Entries returns a copy of the recorded queries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
