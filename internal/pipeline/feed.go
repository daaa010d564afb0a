package pipeline

import (
	"sync"
	"time"
)

// Entry is one rendered message record. Outgoing is fixed when the entry is
// built: ownership is judged against the identity current at that moment and
// never revisited, so a later server rename restyles only future entries.
type Entry struct {
	Sender   string
	Kind     string
	Body     string
	FileName string
	SentAt   time.Time
	Outgoing bool
}

// Feed is the ordered message view. Entries only ever get appended: no
// deletes, no edits, no reordering by timestamp. Display order is arrival
// order. The one exception is Replace, the history load, which swaps the
// whole view for the server's authoritative list.
type Feed struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Append adds an entry at the end.
func (f *Feed) Append(e Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
}

// Replace swaps the entire view for the given entries.
func (f *Feed) Replace(entries []Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
}

// Entries returns a copy of the current view in display order.
func (f *Feed) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Empty reports whether the view shows the welcome placeholder.
func (f *Feed) Empty() bool {
	return f.Len() == 0
}
