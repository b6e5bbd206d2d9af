package client

import "sync"

// DefaultEventLogSize bounds the event log. The browser clients kept every
// entry for the life of the page; a long-running terminal client cannot, so
// the oldest notices fall off past this many.
const DefaultEventLogSize = 200

// EventLog is a bounded list of human-readable notices, most recent first.
// Entries are never edited after they are appended.
type EventLog struct {
	mu      sync.Mutex
	entries []string
	maxSize int
}

func NewEventLog(maxSize int) *EventLog {
	if maxSize <= 0 {
		maxSize = DefaultEventLogSize
	}
	return &EventLog{
		entries: make([]string, 0),
		maxSize: maxSize,
	}
}

// Append inserts entry at the front, dropping the oldest entry once the
// log is full.
func (l *EventLog) Append(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]string{entry}, l.entries...)
	if len(l.entries) > l.maxSize {
		l.entries = l.entries[:l.maxSize]
	}
}

// Entries returns a copy of the log, newest first.
func (l *EventLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]string, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
