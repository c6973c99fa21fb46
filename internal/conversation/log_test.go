package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkEvent struct {
	appended bool
	entry    *Entry
}

type recordingSink struct {
	events []sinkEvent
}

func (s *recordingSink) EntryAppended(entry *Entry) {
	s.events = append(s.events, sinkEvent{appended: true, entry: entry})
}

func (s *recordingSink) EntryRemoved(entry *Entry) {
	s.events = append(s.events, sinkEvent{appended: false, entry: entry})
}

func TestDedupeSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			name:    "nil",
			sources: nil,
			want:    nil,
		},
		{
			name:    "no duplicates",
			sources: []string{"a.txt", "b.txt"},
			want:    []string{"a.txt", "b.txt"},
		},
		{
			name:    "adjacent duplicates",
			sources: []string{"doc.pdf", "doc.pdf", "notes.txt"},
			want:    []string{"doc.pdf", "notes.txt"},
		},
		{
			name:    "first occurrence wins",
			sources: []string{"b", "a", "b", "c", "a"},
			want:    []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeSources(tt.sources))
		})
	}
}

func TestEntry_SourceAnnotation(t *testing.T) {
	entry := NewAIEntry("X is Y", "doc.pdf", "doc.pdf", "notes.txt")
	assert.Equal(t, "Sources: doc.pdf, notes.txt", entry.SourceAnnotation())
	assert.Equal(t, []string{"doc.pdf", "doc.pdf", "notes.txt"}, entry.Sources)

	assert.Empty(t, NewAIEntry("no sources").SourceAnnotation())
	assert.Empty(t, NewUserEntry("question").SourceAnnotation())
}

func TestEntry_Constructors(t *testing.T) {
	user := NewUserEntry("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.Pending)
	assert.NotEmpty(t, user.ID)
	assert.Len(t, user.Blocks, 1)

	pending := NewPendingEntry("Thinking...")
	assert.Equal(t, RoleAI, pending.Role)
	assert.True(t, pending.Pending)
	assert.NotEqual(t, user.ID, pending.ID)
}

func TestLog_AppendNotifiesSinkWithNewEntryOnly(t *testing.T) {
	sink := &recordingSink{}
	log := NewLog(sink)

	first := log.Append(NewUserEntry("one"))
	second := log.Append(NewAIEntry("two"))

	require.Equal(t, []*Entry{first, second}, log.Entries())
	require.Equal(t, []sinkEvent{{true, first}, {true, second}}, sink.events)
	require.Same(t, second, log.Last())
}

func TestLog_RemoveByHandle(t *testing.T) {
	sink := &recordingSink{}
	log := NewLog(sink)

	// Two identical-looking placeholders must be told apart by handle.
	pendingA := log.Append(NewPendingEntry("Thinking..."))
	pendingB := log.Append(NewPendingEntry("Thinking..."))

	require.True(t, log.Remove(pendingB))
	require.Equal(t, []*Entry{pendingA}, log.Entries())
	require.False(t, log.Remove(pendingB), "second removal must be a no-op")
	require.Len(t, sink.events, 3)
	require.Equal(t, sinkEvent{false, pendingB}, sink.events[2])
}

func TestLog_EntriesIsSnapshot(t *testing.T) {
	log := NewLog(nil)
	entry := log.Append(NewUserEntry("one"))

	entries := log.Entries()
	log.Remove(entry)

	require.Len(t, entries, 1)
	require.Zero(t, log.Len())
	require.Nil(t, log.Last())
}

func TestLog_LastAnswerSkipsPendingAndUserEntries(t *testing.T) {
	log := NewLog(nil)
	require.Nil(t, log.LastAnswer())

	answer := log.Append(NewAIEntry("answer"))
	log.Append(NewUserEntry("next question"))
	log.Append(NewPendingEntry("Thinking..."))

	require.Same(t, answer, log.LastAnswer())
}
