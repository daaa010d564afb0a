// Package presence tracks who is in the room. The server pushes complete
// roster snapshots, never deltas, so every update is a full replace;
// correctness depends on keeping it that way rather than diffing locally.
package presence

import (
	"slices"
	"sync"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/session"
)

// Snapshot is the payload of roster.replaced events.
type Snapshot struct {
	Users []string
	Count int
}

// Tracker holds the latest roster snapshot.
type Tracker struct {
	mu    sync.RWMutex
	users []string
	state *session.State
	bus   *bus.Bus
}

// NewTracker creates an empty tracker reading identity from state.
func NewTracker(state *session.State, b *bus.Bus) *Tracker {
	return &Tracker{state: state, bus: b}
}

// Replace applies a full roster snapshot unconditionally.
func (t *Tracker) Replace(users []string) {
	snapshot := slices.Clone(users)

	t.mu.Lock()
	t.users = snapshot
	t.mu.Unlock()

	if t.bus != nil {
		t.bus.Publish(bus.Now(bus.KindRosterReplaced, Snapshot{
			Users: slices.Clone(snapshot),
			Count: len(snapshot),
		}))
	}
}

// Users returns a copy of the current roster in server order.
func (t *Tracker) Users() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.users)
}

// Count returns the number of online users.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.users)
}

// IsSelf reports whether name is the local identity. Derived on demand, not
// stored, so an identity rename never leaves a stale marker.
func (t *Tracker) IsSelf(name string) bool {
	return name == t.state.Identity()
}
