package conversation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/scylladb/go-set/strset"

	"github.com/malonaz/docqa/internal/markdown"
)

// Role represents the author of an entry.
type Role int

const (
	// RoleUser represents an entry typed by the user.
	RoleUser Role = iota
	// RoleAI represents an entry authored by the assistant.
	RoleAI
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAI:
		return "ai"
	default:
		return "unknown"
	}
}

const sourcesSeparator = ", "

// Entry is one rendered unit of the conversation.
// Entries are never mutated once appended to a log.
type Entry struct {
	// ID is used by renderers as a cache key.
	ID string
	// Role of the author.
	Role Role
	// Text may contain inline markdown.
	Text string
	// Sources in the order the service returned them, duplicates included.
	Sources []string
	// Pending marks the placeholder shown while a query is in flight.
	Pending bool

	// Blocks contains the parsed markdown blocks for rendering.
	Blocks []markdown.Block
}

func newEntry(role Role, text string, sources []string, pending bool) *Entry {
	return &Entry{
		ID:      uuid.New().String()[:8],
		Role:    role,
		Text:    text,
		Sources: sources,
		Pending: pending,
		Blocks:  markdown.ParseBlocks(text),
	}
}

// NewUserEntry creates a new user entry.
func NewUserEntry(text string) *Entry {
	return newEntry(RoleUser, text, nil, false)
}

// NewAIEntry creates a new assistant entry with optional sources.
func NewAIEntry(text string, sources ...string) *Entry {
	return newEntry(RoleAI, text, sources, false)
}

// NewPendingEntry creates the transient assistant placeholder.
func NewPendingEntry(text string) *Entry {
	return newEntry(RoleAI, text, nil, true)
}

// UniqueSources returns the deduplicated sources of this entry.
func (e *Entry) UniqueSources() []string {
	return DedupeSources(e.Sources)
}

// SourceAnnotation returns the text shown under the entry, or "" when it has no sources.
func (e *Entry) SourceAnnotation() string {
	sources := e.UniqueSources()
	if len(sources) == 0 {
		return ""
	}
	return "Sources: " + strings.Join(sources, sourcesSeparator)
}

// DedupeSources removes repeated sources, keeping the first occurrence of each.
func DedupeSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}
	seen := strset.NewWithSize(len(sources))
	unique := make([]string, 0, len(sources))
	for _, source := range sources {
		if seen.Has(source) {
			continue
		}
		seen.Add(source)
		unique = append(unique, source)
	}
	return unique
}
