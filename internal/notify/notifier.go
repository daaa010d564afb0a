package notify

import (
	"sync"
	"time"

	"github.com/Prantik123321/Chat-all/internal/bus"
)

// Severity classifies a notice for display.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Phase is the display phase of the current notice.
type Phase int

const (
	PhaseGone Phase = iota
	PhaseVisible
	PhaseFading
)

// Notice is an ephemeral, local-only status message. Never transmitted.
type Notice struct {
	Text     string
	Severity Severity
}

// Notifier holds at most one notice. A new notice supersedes the current one
// immediately; dismissal is two-phase, visible then fading then gone. The
// dismissal timers are not cancelable; supersession works by sequence
// guarding, so a stale timer firing after a newer notice is a no-op.
type Notifier struct {
	mu      sync.RWMutex
	seq     uint64
	current *Notice
	phase   Phase

	showFor time.Duration
	fadeFor time.Duration
	bus     *bus.Bus
}

const (
	defaultShowFor = 3 * time.Second
	defaultFadeFor = 400 * time.Millisecond
)

// New creates a notifier with the standard display durations.
func New(b *bus.Bus) *Notifier {
	return NewWithDurations(b, defaultShowFor, defaultFadeFor)
}

// NewWithDurations creates a notifier with explicit durations, for tests.
func NewWithDurations(b *bus.Bus, showFor, fadeFor time.Duration) *Notifier {
	return &Notifier{
		showFor: showFor,
		fadeFor: fadeFor,
		bus:     b,
	}
}

// Info posts an informational notice.
func (n *Notifier) Info(text string) { n.post(text, Info) }

// Success posts a success notice.
func (n *Notifier) Success(text string) { n.post(text, Success) }

// Error posts an error notice.
func (n *Notifier) Error(text string) { n.post(text, Error) }

func (n *Notifier) post(text string, sev Severity) {
	notice := &Notice{Text: text, Severity: sev}

	n.mu.Lock()
	n.seq++
	seq := n.seq
	n.current = notice
	n.phase = PhaseVisible
	n.mu.Unlock()

	n.publish(bus.KindNoticePosted, *notice)

	time.AfterFunc(n.showFor, func() { n.fade(seq) })
}

func (n *Notifier) fade(seq uint64) {
	n.mu.Lock()
	if n.seq != seq {
		n.mu.Unlock()
		return
	}
	n.phase = PhaseFading
	notice := *n.current
	n.mu.Unlock()

	n.publish(bus.KindNoticeFading, notice)

	time.AfterFunc(n.fadeFor, func() { n.dismiss(seq) })
}

func (n *Notifier) dismiss(seq uint64) {
	n.mu.Lock()
	if n.seq != seq {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.phase = PhaseGone
	n.mu.Unlock()

	n.publish(bus.KindNoticeDismissed, nil)
}

// Current returns the displayed notice and its phase, or nil and PhaseGone.
func (n *Notifier) Current() (*Notice, Phase) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.current == nil {
		return nil, PhaseGone
	}
	c := *n.current
	return &c, n.phase
}

func (n *Notifier) publish(kind string, payload any) {
	if n.bus != nil {
		n.bus.Publish(bus.Now(kind, payload))
	}
}
