// Package pipeline converts inbound wire events into renderable message
// records and outbound user actions into wire events.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/session"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// ErrEmptyMessage is returned for whitespace-only text. The composer keeps
// send disabled for empty input, so this is a guard, not a user-visible
// failure, with no notice and no wire traffic.
var ErrEmptyMessage = errors.New("message is empty")

// Sender emits wire events toward the server.
type Sender interface {
	Send(event string, payload any) error
}

// TypingStopper force-stops the local typing state after a send.
type TypingStopper interface {
	Stop()
}

// Notifier surfaces local feedback notices.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Pipeline is the message dispatch path in both directions.
type Pipeline struct {
	state    *session.State
	feed     *Feed
	sender   Sender
	typing   TypingStopper
	notifier Notifier
	bus      *bus.Bus
	logger   *zap.Logger
}

// New creates a pipeline around the shared session state and feed.
func New(state *session.State, feed *Feed, sender Sender, typing TypingStopper, notifier Notifier, b *bus.Bus, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		state:    state,
		feed:     feed,
		sender:   sender,
		typing:   typing,
		notifier: notifier,
		bus:      b,
		logger:   logger,
	}
}

// Feed returns the message view.
func (p *Pipeline) Feed() *Feed {
	return p.feed
}

// SendText emits a text message built from trimmed input. After a successful
// send the typing state is force-stopped; clearing the input is the caller's
// side of the contract.
func (p *Pipeline) SendText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	err := p.sender.Send(wire.EventSendMessage, wire.SendMessage{
		Username: p.state.Identity(),
		Message:  trimmed,
		Type:     wire.TypeText,
	})
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}

	p.typing.Stop()
	return nil
}

// SendAttachment emits a confirmed staged attachment: kind is the image or
// video tag, encoded the transmissible data URI, fileName the original name.
func (p *Pipeline) SendAttachment(kind, encoded, fileName string) error {
	if !wire.IsMediaType(kind) {
		return fmt.Errorf("unsupported attachment kind %q", kind)
	}

	err := p.sender.Send(wire.EventSendMessage, wire.SendMessage{
		Username: p.state.Identity(),
		Message:  encoded,
		Type:     kind,
		FileName: fileName,
	})
	if err != nil {
		p.notifier.Error("Failed to send file")
		return fmt.Errorf("send attachment: %w", err)
	}

	p.notifier.Success("File sent successfully")
	return nil
}

// Ingest appends an inbound message to the feed. Ownership is evaluated
// against the identity at this instant; system messages are never outgoing.
func (p *Pipeline) Ingest(m wire.Message) {
	entry := p.toEntry(m)
	p.feed.Append(entry)

	if p.bus != nil {
		p.bus.Publish(bus.Now(bus.KindFeedAppended, entry))
	}
}

// LoadHistory replaces the whole view with the server's retained messages.
// The server history is authoritative: whatever the view held before is
// superseded, and an empty list brings back the welcome placeholder.
func (p *Pipeline) LoadHistory(msgs []wire.Message) {
	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, p.toEntry(m))
	}
	p.feed.Replace(entries)

	if p.logger != nil {
		p.logger.Info("chat history loaded", zap.Int("messages", len(entries)))
	}
	if p.bus != nil {
		p.bus.Publish(bus.Now(bus.KindFeedReplaced, len(entries)))
	}
}

func (p *Pipeline) toEntry(m wire.Message) Entry {
	kind := m.Type
	switch kind {
	case wire.TypeText, wire.TypeImage, wire.TypeVideo, wire.TypeSystem:
	default:
		kind = wire.TypeText
	}

	fileName := m.FileName
	if wire.IsMediaType(kind) && fileName == "" {
		fileName = kind + " file"
	}

	return Entry{
		Sender:   m.Username,
		Kind:     kind,
		Body:     m.Message,
		FileName: fileName,
		SentAt:   wire.ParseTimestamp(m.Timestamp),
		Outgoing: kind != wire.TypeSystem && m.Username == p.state.Identity(),
	}
}
