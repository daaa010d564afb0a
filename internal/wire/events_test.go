package wire

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw, err := Encode(EventJoinPublic, JoinPublic{Username: "alice"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	env, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if env.Event != EventJoinPublic {
		t.Errorf("event = %q, want %q", env.Event, EventJoinPublic)
	}

	var p JoinPublic
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Username != "alice" {
		t.Errorf("username = %q, want alice", p.Username)
	}
}

func TestDecodeServerFrames(t *testing.T) {
	// Frames as the reference server emits them.
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"roster delta", `{"event":"user_joined","data":{"username":"bob","online_users":["alice","bob"]}}`, EventUserJoined},
		{"message", `{"event":"new_message","data":{"username":"bob","message":"hi","type":"text","timestamp":"2024-05-01T10:30:00"}}`, EventNewMessage},
		{"error", `{"event":"error","data":{"message":"Sending too fast. Slow down!"}}`, EventError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if env.Event != tt.want {
				t.Errorf("event = %q, want %q", env.Event, tt.want)
			}
		})
	}
}

func TestDecodeRejectsUntagged(t *testing.T) {
	if _, err := Decode([]byte(`{"data":{}}`)); err == nil {
		t.Error("Decode() should fail without an event tag")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("Decode() should fail on malformed input")
	}
}

func TestParseTimestamp(t *testing.T) {
	// Python isoformat() has no zone suffix.
	ts := ParseTimestamp("2024-05-01T10:30:00.123456")
	if ts.Year() != 2024 || ts.Minute() != 30 {
		t.Errorf("parsed %v, want 2024-05-01 10:30", ts)
	}

	ts = ParseTimestamp("2024-05-01T10:30:00Z")
	if !ts.Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("parsed %v, want RFC3339 value", ts)
	}

	// Garbage falls back to now rather than zero.
	before := time.Now()
	ts = ParseTimestamp("garbage")
	if ts.Before(before.Add(-time.Second)) {
		t.Errorf("fallback %v should be near now", ts)
	}
}

func TestIsMediaType(t *testing.T) {
	if !IsMediaType(TypeImage) || !IsMediaType(TypeVideo) {
		t.Error("image and video are media types")
	}
	if IsMediaType(TypeText) || IsMediaType(TypeSystem) {
		t.Error("text and system are not media types")
	}
}
