package typing

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/session"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// recordingSender captures emitted wire events.
type recordingSender struct {
	mu    sync.Mutex
	sends []sentEvent
}

type sentEvent struct {
	Event   string
	Payload wire.TypingSignal
}

func (r *recordingSender) Send(event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sig, _ := payload.(wire.TypingSignal)
	r.sends = append(r.sends, sentEvent{Event: event, Payload: sig})
	return nil
}

func (r *recordingSender) signals() []sentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sentEvent, len(r.sends))
	copy(out, r.sends)
	return out
}

func newTestCoordinator(quiet time.Duration) (*Coordinator, *recordingSender) {
	sender := &recordingSender{}
	c := NewCoordinatorWithInterval(session.NewState("alice"), sender, nil, nil, quiet)
	return c, sender
}

func TestBurstEmitsOneStartOneStop(t *testing.T) {
	c, sender := newTestCoordinator(30 * time.Millisecond)

	// A burst of keystrokes inside the quiet interval.
	c.InputChanged("h")
	c.InputChanged("he")
	c.InputChanged("hel")
	c.InputChanged("hello")

	sigs := sender.signals()
	if len(sigs) != 1 {
		t.Fatalf("got %d signals during burst, want 1 (typing started)", len(sigs))
	}
	if !sigs[0].Payload.IsTyping {
		t.Error("first signal should be is_typing=true")
	}
	if sigs[0].Payload.Username != "alice" {
		t.Errorf("username = %q, want alice", sigs[0].Payload.Username)
	}

	// Quiet interval elapses with no further input.
	time.Sleep(60 * time.Millisecond)

	sigs = sender.signals()
	if len(sigs) != 2 {
		t.Fatalf("got %d signals after expiry, want 2", len(sigs))
	}
	if sigs[1].Payload.IsTyping {
		t.Error("expiry signal should be is_typing=false")
	}
	if c.LocalTyping() {
		t.Error("LocalTyping() = true after expiry")
	}
}

func TestKeystrokeResetsExpiry(t *testing.T) {
	c, sender := newTestCoordinator(40 * time.Millisecond)

	c.InputChanged("h")
	time.Sleep(25 * time.Millisecond)
	c.InputChanged("hi") // resets the timer before it fires
	time.Sleep(25 * time.Millisecond)

	// Only 25ms since the last keystroke: still typing.
	if got := len(sender.signals()); got != 1 {
		t.Fatalf("got %d signals, want 1 (stop not yet due)", got)
	}

	time.Sleep(30 * time.Millisecond)
	if got := len(sender.signals()); got != 2 {
		t.Errorf("got %d signals after reset expiry, want 2", got)
	}
}

func TestStopEmitsImmediately(t *testing.T) {
	c, sender := newTestCoordinator(time.Hour) // expiry must not be needed

	c.InputChanged("hello")
	c.Stop()

	sigs := sender.signals()
	if len(sigs) != 2 {
		t.Fatalf("got %d signals, want start+stop", len(sigs))
	}
	if sigs[1].Payload.IsTyping {
		t.Error("Stop() should emit is_typing=false")
	}

	// Stop while not typing emits nothing further.
	c.Stop()
	if got := len(sender.signals()); got != 2 {
		t.Errorf("redundant Stop() emitted a signal: %d sends", got)
	}
}

func TestClearedInputStopsImmediately(t *testing.T) {
	c, sender := newTestCoordinator(time.Hour)

	c.InputChanged("hello")
	c.InputChanged("")

	sigs := sender.signals()
	if len(sigs) != 2 || sigs[1].Payload.IsTyping {
		t.Fatalf("clearing input should emit an explicit stop, got %+v", sigs)
	}
}

func TestWhitespaceInputDoesNotStartTyping(t *testing.T) {
	c, sender := newTestCoordinator(time.Hour)

	c.InputChanged("   ")
	if len(sender.signals()) != 0 {
		t.Error("whitespace-only input emitted a typing signal")
	}
	if c.LocalTyping() {
		t.Error("LocalTyping() = true for whitespace input")
	}
}

func TestRemoteSelfSignalsIgnored(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("typing.", 10)
	defer unsub()

	sender := &recordingSender{}
	c := NewCoordinatorWithInterval(session.NewState("alice"), sender, b, nil, time.Hour)

	c.HandleRemote("alice", true)
	if c.Remote() != "" {
		t.Errorf("Remote() = %q, self signal must not set indicator", c.Remote())
	}
	select {
	case evt := <-ch:
		t.Errorf("unexpected event for self signal: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRemoteLastWriterWins(t *testing.T) {
	c, _ := newTestCoordinator(time.Hour)

	c.HandleRemote("bob", true)
	c.HandleRemote("carol", true)
	if c.Remote() != "carol" {
		t.Errorf("Remote() = %q, want carol (last writer)", c.Remote())
	}

	// A stop from a user who is not displayed changes nothing.
	c.HandleRemote("bob", false)
	if c.Remote() != "carol" {
		t.Errorf("Remote() = %q, stop from non-displayed user cleared slot", c.Remote())
	}

	// A stop from the displayed user clears.
	c.HandleRemote("carol", false)
	if c.Remote() != "" {
		t.Errorf("Remote() = %q, want cleared", c.Remote())
	}
}

func TestRemotePublishesIndicator(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("typing.", 10)
	defer unsub()

	sender := &recordingSender{}
	c := NewCoordinatorWithInterval(session.NewState("alice"), sender, b, nil, time.Hour)

	c.HandleRemote("bob", true)

	select {
	case evt := <-ch:
		ind, ok := evt.Payload.(Indicator)
		if !ok {
			t.Fatalf("payload type = %T, want Indicator", evt.Payload)
		}
		if !ind.Active || ind.Username != "bob" {
			t.Errorf("indicator = %+v", ind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for typing.changed")
	}
}

// Typing signals must round-trip through the wire envelope with snake_case
// field names the server expects.
func TestSignalWireShape(t *testing.T) {
	raw, err := wire.Encode(wire.EventTyping, wire.TypingSignal{Username: "alice", IsTyping: true})
	if err != nil {
		t.Fatal(err)
	}
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["is_typing"]; !ok {
		t.Errorf("payload missing is_typing field: %v", fields)
	}
}
