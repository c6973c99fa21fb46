package conversation

// Sink receives the rendering projection of a log.
type Sink interface {
	// EntryAppended renders just the new entry and scrolls it into view.
	EntryAppended(entry *Entry)
	// EntryRemoved drops the rendering of a previously appended entry.
	EntryRemoved(entry *Entry)
}

// Log is an append-only, ordered, in-memory conversation.
// The only removal is of pending placeholders, by handle.
type Log struct {
	entries []*Entry
	sink    Sink
}

// NewLog instantiates and returns an empty log.
func NewLog(sink Sink) *Log {
	return &Log{sink: sink}
}

// Append adds an entry at the end of the log and returns it as a handle.
func (l *Log) Append(entry *Entry) *Entry {
	l.entries = append(l.entries, entry)
	if l.sink != nil {
		l.sink.EntryAppended(entry)
	}
	return entry
}

// Remove deletes the given entry by identity.
// It returns false if the entry is not (or no longer) in the log.
func (l *Log) Remove(entry *Entry) bool {
	for i, e := range l.entries {
		if e != entry {
			continue
		}
		l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
		if l.sink != nil {
			l.sink.EntryRemoved(entry)
		}
		return true
	}
	return false
}

// Entries returns a snapshot of the log, oldest first.
func (l *Log) Entries() []*Entry {
	entries := make([]*Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the latest entry, or nil on an empty log.
func (l *Log) Last() *Entry {
	if len(l.entries) == 0 {
		return nil
	}
	return l.entries[len(l.entries)-1]
}

// LastAnswer returns the most recent settled assistant entry, or nil.
func (l *Log) LastAnswer() *Entry {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if e := l.entries[i]; e.Role == RoleAI && !e.Pending {
			return e
		}
	}
	return nil
}
