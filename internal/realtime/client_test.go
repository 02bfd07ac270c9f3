package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

// echoServer upgrades the connection and runs fn with it.
func wsServer(t *testing.T, fn func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		fn(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDialAndReceive(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(Event{
			Type:    EventMessageNew,
			Payload: json.RawMessage(`{"id":"m-1","conversation_id":"c-1","text":"hola","original_text":"hello"}`),
		})
		// Hold the connection open until the client hangs up.
		conn.ReadMessage()
	})

	client, err := Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer client.Close()

	select {
	case evt := <-client.Events():
		if evt.Type != EventMessageNew {
			t.Fatalf("unexpected event type %q", evt.Type)
		}
		msg, err := DecodeMessage(evt)
		if err != nil {
			t.Fatalf("DecodeMessage failed: %v", err)
		}
		if msg.ID != "m-1" || msg.Text != "hola" || msg.OriginalText != "hello" {
			t.Errorf("unexpected message: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestEventsClosedWhenServerDrops(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		// Close immediately.
	})

	client, err := Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer client.Close()

	select {
	case _, ok := <-client.Events():
		if ok {
			t.Error("expected channel close, got event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel never closed")
	}
}

func TestSendTyping(t *testing.T) {
	received := make(chan Event, 1)
	srv := wsServer(t, func(conn *websocket.Conn) {
		var evt Event
		if err := conn.ReadJSON(&evt); err != nil {
			return
		}
		received <- evt
	})

	client, err := Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer client.Close()

	if err := client.SendTyping("c-1", true); err != nil {
		t.Fatalf("SendTyping failed: %v", err)
	}

	select {
	case evt := <-received:
		if evt.Type != EventTyping {
			t.Errorf("unexpected type %q", evt.Type)
		}
		var p struct {
			ConversationID string `json:"conversation_id"`
			Typing         bool   `json:"typing"`
		}
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if p.ConversationID != "c-1" || !p.Typing {
			t.Errorf("unexpected payload: %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received typing event")
	}
}

func TestDecodePayloads(t *testing.T) {
	typing, err := DecodeTyping(Event{
		Type:    EventTyping,
		Payload: json.RawMessage(`{"conversation_id":"c-2","user_id":"u-1","user_name":"Ana"}`),
	})
	if err != nil {
		t.Fatalf("DecodeTyping failed: %v", err)
	}
	if typing.ConversationID != "c-2" || typing.UserName != "Ana" {
		t.Errorf("unexpected typing payload: %+v", typing)
	}

	presence, err := DecodePresence(Event{
		Type:    EventPresence,
		Payload: json.RawMessage(`{"user_id":"u-1","online":true}`),
	})
	if err != nil {
		t.Fatalf("DecodePresence failed: %v", err)
	}
	if !presence.Online {
		t.Errorf("unexpected presence payload: %+v", presence)
	}

	reaction, err := DecodeReaction(Event{
		Type:    EventReaction,
		Payload: json.RawMessage(`{"message_id":"m-1","user_id":"u-2","emoji":"❤️"}`),
	})
	if err != nil {
		t.Fatalf("DecodeReaction failed: %v", err)
	}
	if reaction.MessageID != "m-1" || reaction.Emoji != "❤️" {
		t.Errorf("unexpected reaction payload: %+v", reaction)
	}

	if _, err := DecodeMessage(Event{Type: EventMessageNew, Payload: json.RawMessage(`not json`)}); err == nil {
		t.Error("expected decode error for bad payload")
	}
}

func TestClose_Idempotent(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	client, err := Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := client.SendTyping("c-1", true); err == nil {
		t.Error("expected send on closed connection to fail")
	}
}
