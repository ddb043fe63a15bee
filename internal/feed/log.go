package feed

import pErrors "github.com/zhubert/streamchat/internal/errors"

// Entry is anything that can live in a Log.
type Entry interface {
	EntryID() string
}

// Log is an append-only, arrival-ordered sequence of entries with unique IDs.
// It is owned by a single goroutine (the Bubble Tea update loop) and is not
// safe for concurrent use.
type Log[T Entry] struct {
	entries []T
	ids     map[string]struct{}
}

// NewLog creates an empty log.
func NewLog[T Entry]() *Log[T] {
	return &Log[T]{ids: make(map[string]struct{})}
}

// Append adds e at the tail. An entry whose ID is already present is rejected
// and the log is left unchanged.
func (l *Log[T]) Append(e T) error {
	id := e.EntryID()
	if _, dup := l.ids[id]; dup {
		return pErrors.DuplicateEntry(id)
	}
	l.ids[id] = struct{}{}
	l.entries = append(l.entries, e)
	return nil
}

// Len returns the number of entries.
func (l *Log[T]) Len() int {
	return len(l.entries)
}

// Contains reports whether an entry with id is in the log.
func (l *Log[T]) Contains(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Snapshot returns the entries in arrival order. The slice is capped at its
// length, so later appends never show through it and appending to it never
// writes into the log.
func (l *Log[T]) Snapshot() []T {
	return l.entries[:len(l.entries):len(l.entries)]
}

// Last returns the newest entry.
func (l *Log[T]) Last() (T, bool) {
	var zero T
	if len(l.entries) == 0 {
		return zero, false
	}
	return l.entries[len(l.entries)-1], true
}
