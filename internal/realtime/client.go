// Package realtime receives live events (new messages, typing indicators,
// presence, reactions) from the backend over a websocket.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"talkworld/internal/chat"
	"talkworld/internal/logger"
)

// Event types sent by the server.
const (
	EventMessageNew = "message.new"
	EventTyping     = "typing"
	EventPresence   = "presence"
	EventReaction   = "reaction"
)

// Event is the wire envelope. Payload is decoded lazily by type.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// TypingPayload reports who is typing in which conversation. An empty
// UserName means typing stopped.
type TypingPayload struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
}

// PresencePayload reports a contact going online or offline.
type PresencePayload struct {
	UserID string `json:"user_id"`
	Online bool   `json:"online"`
}

const writeTimeout = 10 * time.Second

// Client is a single websocket session. It does not reconnect: when the
// connection drops, the events channel closes and the owner decides
// whether to dial again.
type Client struct {
	conn   *websocket.Conn
	events chan Event

	mu     sync.Mutex // guards writes to conn
	closed bool
}

// Dial connects to the websocket endpoint and starts the read loop. The
// returned client's Events channel stays open until the connection drops
// or Close is called.
func Dial(ctx context.Context, wsURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime: dial %s: %w", wsURL, err)
	}

	c := &Client{
		conn:   conn,
		events: make(chan Event, 64),
	}
	go c.readLoop()
	return c, nil
}

// Events returns the channel of decoded server events. Closed when the
// connection ends.
func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var evt Event
		if err := c.conn.ReadJSON(&evt); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Warn("realtime: read loop ended: %v", err)
			}
			return
		}
		c.events <- evt
	}
}

// SendTyping notifies the server that the local user started or stopped
// typing in a conversation.
func (c *Client) SendTyping(conversationID string, typing bool) error {
	payload, err := json.Marshal(struct {
		ConversationID string `json:"conversation_id"`
		Typing         bool   `json:"typing"`
	}{ConversationID: conversationID, Typing: typing})
	if err != nil {
		return err
	}
	return c.send(Event{Type: EventTyping, Payload: payload})
}

func (c *Client) send(evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("realtime: connection closed")
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(evt)
}

// Close shuts the connection down cleanly.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.conn.Close()
}

// DecodeMessage unpacks a message.new payload.
func DecodeMessage(evt Event) (chat.Message, error) {
	var msg chat.Message
	if err := json.Unmarshal(evt.Payload, &msg); err != nil {
		return chat.Message{}, fmt.Errorf("realtime: decode %s: %w", evt.Type, err)
	}
	return msg, nil
}

// DecodeTyping unpacks a typing payload.
func DecodeTyping(evt Event) (TypingPayload, error) {
	var p TypingPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return TypingPayload{}, fmt.Errorf("realtime: decode %s: %w", evt.Type, err)
	}
	return p, nil
}

// DecodePresence unpacks a presence payload.
func DecodePresence(evt Event) (PresencePayload, error) {
	var p PresencePayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return PresencePayload{}, fmt.Errorf("realtime: decode %s: %w", evt.Type, err)
	}
	return p, nil
}

// DecodeReaction unpacks a reaction payload.
func DecodeReaction(evt Event) (chat.Reaction, error) {
	var r chat.Reaction
	if err := json.Unmarshal(evt.Payload, &r); err != nil {
		return chat.Reaction{}, fmt.Errorf("realtime: decode %s: %w", evt.Type, err)
	}
	return r, nil
}
