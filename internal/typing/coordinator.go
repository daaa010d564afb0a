// Package typing debounces local keystroke activity into start/stop typing
// signals and tracks the remote typing indicator.
package typing

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/session"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// DefaultQuietInterval is how long after the last keystroke the local
// typing state expires.
const DefaultQuietInterval = time.Second

// Sender emits wire events toward the server.
type Sender interface {
	Send(event string, payload any) error
}

// Indicator is the payload of typing.changed events: who is shown as typing
// remotely, or empty when the indicator is cleared.
type Indicator struct {
	Username string
	Active   bool
}

// Coordinator owns the local typing flag, its expiry timer, and the remote
// indicator slot. There is one pending expiry at a time; every keystroke
// cancels and reschedules it (last reset wins).
type Coordinator struct {
	mu          sync.Mutex
	localTyping bool
	timer       *time.Timer
	remote      string

	quiet  time.Duration
	state  *session.State
	sender Sender
	bus    *bus.Bus
	logger *zap.Logger
}

// NewCoordinator creates a coordinator with the default quiet interval.
func NewCoordinator(state *session.State, sender Sender, b *bus.Bus, logger *zap.Logger) *Coordinator {
	return NewCoordinatorWithInterval(state, sender, b, logger, DefaultQuietInterval)
}

// NewCoordinatorWithInterval creates a coordinator with an explicit quiet
// interval, for tests.
func NewCoordinatorWithInterval(state *session.State, sender Sender, b *bus.Bus, logger *zap.Logger, quiet time.Duration) *Coordinator {
	return &Coordinator{
		quiet:  quiet,
		state:  state,
		sender: sender,
		bus:    b,
		logger: logger,
	}
}

// InputChanged reacts to an input-changed event with the composer's current
// text. The first non-empty input emits a typing-started signal; a cleared
// input stops typing immediately; everything else just resets the expiry.
func (c *Coordinator) InputChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		c.stopLocked()
		return
	}

	if !c.localTyping {
		c.localTyping = true
		c.emit(true)
	}

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.quiet, c.expire)
}

// Stop cancels the local typing state immediately, emitting a stopped signal
// if one was active. The send path calls this after a message goes out.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Coordinator) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.localTyping {
		c.localTyping = false
		c.emit(false)
	}
}

func (c *Coordinator) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	if c.localTyping {
		c.localTyping = false
		c.emit(false)
	}
}

// emit sends a typing signal; callers hold the mutex.
func (c *Coordinator) emit(isTyping bool) {
	err := c.sender.Send(wire.EventTyping, wire.TypingSignal{
		Username: c.state.Identity(),
		IsTyping: isTyping,
	})
	if err != nil && c.logger != nil {
		// Typing signals are best-effort; a failed one is not user-visible.
		c.logger.Warn("typing signal not sent", zap.Bool("is_typing", isTyping), zap.Error(err))
	}
}

// LocalTyping reports whether the local user currently counts as typing.
func (c *Coordinator) LocalTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localTyping
}

// HandleRemote processes a user_typing signal from the server. The display
// is a single slot: the most recent start from any other user replaces it,
// and a stop from the displayed user clears it. Signals attributed to the
// local identity are never shown.
func (c *Coordinator) HandleRemote(username string, isTyping bool) {
	if username == c.state.Identity() {
		return
	}

	c.mu.Lock()
	changed := false
	if isTyping {
		changed = c.remote != username
		c.remote = username
	} else if c.remote == username {
		c.remote = ""
		changed = true
	}
	indicator := Indicator{Username: c.remote, Active: c.remote != ""}
	c.mu.Unlock()

	if changed && c.bus != nil {
		c.bus.Publish(bus.Now(bus.KindTypingChanged, indicator))
	}
}

// Remote returns the username currently shown as typing, or empty.
func (c *Coordinator) Remote() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remote
}
