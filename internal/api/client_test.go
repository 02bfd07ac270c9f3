package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"talkworld/internal/chat"
)

func TestConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/conversations" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"conversations": []chat.Conversation{
				{ID: "c-1", Name: "Family"},
				{ID: "c-2", Name: "Work"},
			},
		})
	}))
	defer srv.Close()

	convs, err := NewClient(srv.URL).Conversations(context.Background())
	if err != nil {
		t.Fatalf("Conversations failed: %v", err)
	}
	if len(convs) != 2 || convs[0].Name != "Family" {
		t.Errorf("unexpected conversations: %+v", convs)
	}
}

func TestMessages_EscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]any{"messages": []chat.Message{{ID: "m-1", Text: "hi"}}})
	}))
	defer srv.Close()

	msgs, err := NewClient(srv.URL).Messages(context.Background(), "c/1")
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if gotPath != "/api/conversations/c%2F1/messages" {
		t.Errorf("conversation ID not escaped: %s", gotPath)
	}
	if len(msgs) != 1 || msgs[0].Text != "hi" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in chat.Message
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		in.ID = "server-id"
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	sent, err := NewClient(srv.URL).SendMessage(context.Background(), chat.Message{
		ConversationID: "c-1",
		Text:           "hello",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if sent.ID != "server-id" || sent.Text != "hello" {
		t.Errorf("unexpected response: %+v", sent)
	}
}

func TestSendReaction_FireAndForget(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotEmoji string
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Emoji string `json:"emoji"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		mu.Lock()
		gotPath = r.URL.Path
		gotEmoji = in.Emoji
		mu.Unlock()
		close(done)
	}))
	defer srv.Close()

	NewClient(srv.URL).SendReaction("m-9", "👍")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaction request never arrived")
	}
	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/api/messages/m-9/reactions" || gotEmoji != "👍" {
		t.Errorf("unexpected reaction request: %s %s", gotPath, gotEmoji)
	}
}

func TestVerifyOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Phone string `json:"phone"`
			Code  string `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		if in.Code != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"user_id": "u-42"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	userID, err := client.VerifyOTP(context.Background(), "+15551234", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if userID != "u-42" {
		t.Errorf("expected user u-42, got %q", userID)
	}

	if _, err := client.VerifyOTP(context.Background(), "+15551234", "000000"); err == nil {
		t.Error("expected error for bad code")
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversation not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Messages(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}
