package session

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/status"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// IdentityChange is the payload for identity change events.
type IdentityChange struct {
	From string
	To   string
}

// Sender writes envelopes to the server.
type Sender interface {
	Send(event string, payload any) error
}

// Presence receives authoritative roster snapshots.
type Presence interface {
	Replace(users []string)
}

// Pipeline ingests broadcast messages and history batches.
type Pipeline interface {
	Ingest(m wire.Message)
	LoadHistory(msgs []wire.Message)
}

// Typing receives remote typing signals.
type Typing interface {
	HandleRemote(username string, isTyping bool)
}

// Notifier surfaces session feedback to the local user.
type Notifier interface {
	Info(text string)
	Success(text string)
	Error(text string)
}

// Handler processes transport lifecycle edges and inbound wire events,
// drives the state machine, and fans work out to presence, typing, and the
// message pipeline. It does not talk to the UI directly; views subscribe to
// the bus independently.
type Handler struct {
	state    *State
	machine  *status.Machine
	sender   Sender
	presence Presence
	pipeline Pipeline
	typing   Typing
	notifier Notifier
	bus      *bus.Bus
	logger   *zap.Logger
}

// NewHandler creates a session handler.
func NewHandler(
	state *State,
	machine *status.Machine,
	sender Sender,
	presence Presence,
	pipeline Pipeline,
	typing Typing,
	notifier Notifier,
	b *bus.Bus,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		state:    state,
		machine:  machine,
		sender:   sender,
		presence: presence,
		pipeline: pipeline,
		typing:   typing,
		notifier: notifier,
		bus:      b,
		logger:   logger,
	}
}

// HandleDialing marks the session as connecting. After a drop the machine is
// already in Reconnecting, so repeated dial attempts are no-ops here.
func (h *Handler) HandleDialing(attempt int, reconnect bool) {
	if h.machine.Current() == status.Disconnected {
		_ = h.machine.Transition(status.Connecting)
	}
	h.logger.Info("dialing",
		zap.Int("attempt", attempt),
		zap.Bool("reconnect", reconnect))
}

// HandleConnected marks the session connected and joins the public room
// under the asserted display name. Runs on every connection, initial and
// re-established, so membership is reasserted after each drop.
func (h *Handler) HandleConnected(reconnect bool) {
	_ = h.machine.Transition(status.Connected)
	h.notifier.Success("Connected to chat server")

	username := h.state.Identity()
	if err := h.sender.Send(wire.EventJoinPublic, wire.JoinPublic{Username: username}); err != nil {
		h.logger.Error("join request failed", zap.Error(err))
	}
}

// HandleDropped marks the session reconnecting after an established
// connection was lost.
func (h *Handler) HandleDropped(err error) {
	h.logger.Warn("server connection dropped", zap.Error(err))
	_ = h.machine.Transition(status.Reconnecting)
	h.notifier.Error("Disconnected from server")
}

// HandleDown marks the session disconnected after redialing was abandoned.
func (h *Handler) HandleDown(err error) {
	h.logger.Error("server connection abandoned", zap.Error(err))
	_ = h.machine.Transition(status.Disconnected)
	h.notifier.Error("Disconnected from server")
}

// HandleWire dispatches one inbound envelope. Called from the transport read
// loop, so events are processed in arrival order.
func (h *Handler) HandleWire(event string, data json.RawMessage) {
	switch event {
	case wire.EventConnected:
		var info wire.ServerInfo
		if err := json.Unmarshal(data, &info); err == nil {
			h.logger.Info("server greeting", zap.String("message", info.Message))
		}

	case wire.EventJoinedSuccess:
		var ack wire.JoinAck
		if err := json.Unmarshal(data, &ack); err != nil {
			h.logger.Warn("malformed join ack", zap.Error(err))
			return
		}
		h.handleJoinAck(ack)

	case wire.EventUserJoined:
		var delta wire.RosterDelta
		if err := json.Unmarshal(data, &delta); err != nil {
			h.logger.Warn("malformed roster delta", zap.Error(err))
			return
		}
		h.presence.Replace(delta.OnlineUsers)
		if delta.Username != h.state.Identity() {
			h.notifier.Info(delta.Username + " joined the chat")
		}

	case wire.EventUserLeft:
		var delta wire.RosterDelta
		if err := json.Unmarshal(data, &delta); err != nil {
			h.logger.Warn("malformed roster delta", zap.Error(err))
			return
		}
		h.presence.Replace(delta.OnlineUsers)
		if delta.Username != h.state.Identity() {
			h.notifier.Info(delta.Username + " left the chat")
		}

	case wire.EventNewMessage:
		var m wire.Message
		if err := json.Unmarshal(data, &m); err != nil {
			h.logger.Warn("malformed message", zap.Error(err))
			return
		}
		h.pipeline.Ingest(m)

	case wire.EventChatHistory:
		var hist wire.History
		if err := json.Unmarshal(data, &hist); err != nil {
			h.logger.Warn("malformed history", zap.Error(err))
			return
		}
		h.pipeline.LoadHistory(hist.Messages)

	case wire.EventOnlineUsers:
		var roster wire.Roster
		if err := json.Unmarshal(data, &roster); err != nil {
			h.logger.Warn("malformed roster", zap.Error(err))
			return
		}
		h.presence.Replace(roster.Users)

	case wire.EventUserTyping:
		var signal wire.TypingSignal
		if err := json.Unmarshal(data, &signal); err != nil {
			h.logger.Warn("malformed typing signal", zap.Error(err))
			return
		}
		h.typing.HandleRemote(signal.Username, signal.IsTyping)

	case wire.EventError:
		var serverErr wire.ServerError
		if err := json.Unmarshal(data, &serverErr); err != nil {
			h.logger.Warn("malformed error event", zap.Error(err))
			return
		}
		h.logger.Warn("server error", zap.String("message", serverErr.Message))
		h.notifier.Error(serverErr.Message)

	default:
		h.logger.Debug("ignoring unknown event", zap.String("event", event))
	}
}

// handleJoinAck adopts the server-confirmed username. The server may have
// renamed on collision; every later self-comparison (ownership, typing echo,
// roster marker) uses the confirmed name.
func (h *Handler) handleJoinAck(ack wire.JoinAck) {
	if ack.Username == "" {
		h.logger.Warn("join ack without username")
		return
	}
	old := h.state.SetIdentity(ack.Username)
	h.logger.Info("joined chat", zap.String("username", ack.Username))
	if h.bus != nil {
		h.bus.Publish(bus.Now(bus.KindIdentityChanged, IdentityChange{
			From: old,
			To:   ack.Username,
		}))
	}
}
