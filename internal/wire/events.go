// Package wire defines the event-tagged JSON protocol spoken with the chat
// server: an envelope carrying an event name and a payload object per event.
package wire

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outbound event names.
const (
	EventJoinPublic  = "join_public"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
)

// Inbound event names.
const (
	EventConnected     = "connected"
	EventJoinedSuccess = "joined_success"
	EventUserJoined    = "user_joined"
	EventUserLeft      = "user_left"
	EventNewMessage    = "new_message"
	EventChatHistory   = "chat_history"
	EventOnlineUsers   = "online_users"
	EventUserTyping    = "user_typing"
	EventError         = "error"
)

// Message type tags.
const (
	TypeText   = "text"
	TypeImage  = "image"
	TypeVideo  = "video"
	TypeSystem = "system"
)

// Envelope frames every message on the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinPublic requests room membership under the asserted username.
type JoinPublic struct {
	Username string `json:"username"`
}

// SendMessage is the outbound message payload. For image/video messages
// Message carries the encoded data URI and FileName the original file name.
type SendMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	FileName string `json:"file_name,omitempty"`
}

// TypingSignal is sent on typing start/stop and echoed back as user_typing.
type TypingSignal struct {
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

// ServerInfo is the informational payload of the connected event.
type ServerInfo struct {
	Message string `json:"message"`
}

// JoinAck confirms membership; Username may differ from the requested one
// when the server renamed on collision.
type JoinAck struct {
	Username string `json:"username"`
}

// RosterDelta announces a join or leave together with the full roster
// snapshot. The snapshot is authoritative; the username is only for the
// feedback notice.
type RosterDelta struct {
	Username    string   `json:"username"`
	OnlineUsers []string `json:"online_users"`
}

// Message is a broadcast chat message. Timestamp is an RFC3339-ish string
// as produced by the server.
type Message struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	FileName  string `json:"file_name,omitempty"`
	Timestamp string `json:"timestamp"`
}

// History carries the room's retained messages, oldest first.
type History struct {
	Messages []Message `json:"messages"`
}

// Roster is a full online-users snapshot.
type Roster struct {
	Users []string `json:"users"`
}

// ServerError is a protocol-level rejection; the session stays usable.
type ServerError struct {
	Message string `json:"message"`
}

// Encode frames an event and payload into envelope bytes.
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// Decode parses envelope bytes.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("envelope missing event tag")
	}
	return env, nil
}

// ParseTimestamp parses a server timestamp leniently. The reference server
// emits ISO 8601 without a zone; unparseable values fall back to now so a
// malformed stamp never drops a message.
func ParseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Now()
}

// IsMediaType reports whether t tags an attachment-bearing message.
func IsMediaType(t string) bool {
	return t == TypeImage || t == TypeVideo
}
