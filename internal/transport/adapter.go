// Package transport manages the websocket connection to the chat server:
// dialing, automatic redial with backoff, frame reads in arrival order, and
// serialized writes.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/wire"
)

// ErrNotConnected is returned by Send while no connection is established.
var ErrNotConnected = errors.New("not connected")

const (
	maxRedialAttempts = 5
	redialBaseDelay   = time.Second
	dialTimeout       = 10 * time.Second
)

// Handler receives every inbound envelope, in the order frames arrived.
type Handler func(event string, data json.RawMessage)

// Callbacks observe connection lifecycle edges. All fields are optional.
// reconnect is false for the very first connection since Start and true for
// any attempt after an established connection dropped.
type Callbacks struct {
	OnDialing   func(attempt int, reconnect bool)
	OnConnected func(reconnect bool)
	OnDropped   func(err error) // established connection lost, redial follows
	OnDown      func(err error) // redialing abandoned
}

// Adapter owns one websocket connection to the chat server. The read loop
// runs on a single goroutine so the handler sees frames in arrival order;
// writes from any goroutine are serialized by a mutex.
type Adapter struct {
	url       string
	callbacks Callbacks
	logger    *zap.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	handler Handler
}

// NewAdapter creates an adapter for the given websocket URL. It does not
// dial until Start.
func NewAdapter(url string, logger *zap.Logger) *Adapter {
	return &Adapter{
		url:    url,
		logger: logger,
	}
}

// SetCallbacks registers the lifecycle observers. Must be called before
// Start.
func (a *Adapter) SetCallbacks(callbacks Callbacks) {
	a.callbacks = callbacks
}

// RegisterHandler sets the inbound envelope handler. Must be called before
// Start.
func (a *Adapter) RegisterHandler(handler Handler) {
	a.mu.Lock()
	a.handler = handler
	a.mu.Unlock()
}

// Start runs the connection loop until ctx is canceled or redialing is
// abandoned. Failed dials retry with doubling delay up to maxRedialAttempts;
// an established connection resets the budget, and when it drops the loop
// redials from the base delay again.
func (a *Adapter) Start(ctx context.Context) {
	reconnect := false
	attempt := 0
	delay := redialBaseDelay

	for {
		if attempt > 0 || reconnect {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
		attempt++

		if a.callbacks.OnDialing != nil {
			a.callbacks.OnDialing(attempt, reconnect)
		}
		conn, err := a.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Warn("dial failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			if attempt >= maxRedialAttempts {
				err = fmt.Errorf("gave up after %d attempts: %w", maxRedialAttempts, err)
				a.logger.Error("connection abandoned", zap.Error(err))
				if a.callbacks.OnDown != nil {
					a.callbacks.OnDown(err)
				}
				return
			}
			delay *= 2
			continue
		}

		attempt = 0
		delay = redialBaseDelay

		err = a.serve(ctx, conn, reconnect)
		if ctx.Err() != nil {
			return
		}
		a.logger.Warn("connection lost", zap.Error(err))
		if a.callbacks.OnDropped != nil {
			a.callbacks.OnDropped(err)
		}
		reconnect = true
	}
}

func (a *Adapter) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", a.url, err)
	}
	return conn, nil
}

// serve reads frames from an established connection until it fails.
func (a *Adapter) serve(ctx context.Context, conn *websocket.Conn, reconnect bool) error {
	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.conn = nil
		a.mu.Unlock()
		conn.Close()
	}()

	a.logger.Info("connected",
		zap.String("url", a.url),
		zap.Bool("reconnect", reconnect))
	if a.callbacks.OnConnected != nil {
		a.callbacks.OnConnected(reconnect)
	}

	// Unblock ReadMessage when ctx is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		env, err := wire.Decode(payload)
		if err != nil {
			a.logger.Warn("discarding malformed frame", zap.Error(err))
			continue
		}
		a.mu.Lock()
		handler := a.handler
		a.mu.Unlock()
		if handler != nil {
			handler(env.Event, env.Data)
		}
	}
}

// Send encodes an envelope and writes it to the current connection.
func (a *Adapter) Send(event string, payload any) error {
	frame, err := wire.Encode(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn == nil {
		return ErrNotConnected
	}
	if err := a.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}

// Connected reports whether a connection is currently established.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn != nil
}
