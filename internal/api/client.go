// Package api is the REST client for the Talk World backend: conversation
// and message history, message sends, and reactions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"talkworld/internal/chat"
	errs "talkworld/internal/errors"
	"talkworld/internal/logger"
)

const defaultTimeout = 15 * time.Second

// Client talks to the backend REST API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL (no trailing slash
// required).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Conversations fetches the conversation list.
func (c *Client) Conversations(ctx context.Context) ([]chat.Conversation, error) {
	var out struct {
		Conversations []chat.Conversation `json:"conversations"`
	}
	if err := c.getJSON(ctx, "/api/conversations", &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// Messages fetches the message history for a conversation, oldest first.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	var out struct {
		Messages []chat.Message `json:"messages"`
	}
	path := "/api/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendMessage posts a new message and returns the server's canonical copy
// (with server-assigned ID and timestamp).
func (c *Client) SendMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	var out chat.Message
	path := "/api/conversations/" + url.PathEscape(msg.ConversationID) + "/messages"
	if err := c.postJSON(ctx, path, msg, &out); err != nil {
		return chat.Message{}, err
	}
	return out, nil
}

// CreateConversation creates a new conversation with the given
// participants and returns it.
func (c *Client) CreateConversation(ctx context.Context, name string, participants []string) (chat.Conversation, error) {
	req := struct {
		Name         string   `json:"name"`
		Participants []string `json:"participants"`
	}{Name: name, Participants: participants}

	var out chat.Conversation
	if err := c.postJSON(ctx, "/api/conversations", req, &out); err != nil {
		return chat.Conversation{}, err
	}
	return out, nil
}

// DeleteConversation removes a conversation from the server.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	path := "/api/conversations/" + url.PathEscape(conversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// RequestOTP asks the server to send a one-time code to the phone number.
func (c *Client) RequestOTP(ctx context.Context, phone string) error {
	req := struct {
		Phone string `json:"phone"`
	}{Phone: phone}
	return c.postJSON(ctx, "/api/otp/request", req, nil)
}

// VerifyOTP exchanges a one-time code for the registered profile ID.
func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	req := struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}{Phone: phone, Code: code}

	var out struct {
		UserID string `json:"user_id"`
	}
	if err := c.postJSON(ctx, "/api/otp/verify", req, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

// SendReaction posts a reaction for a message. Fire-and-forget: the send
// runs in the background and failures are logged, not surfaced, so a slow
// backend never blocks the UI gesture that triggered it.
func (c *Client) SendReaction(messageID, emoji string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()

		req := struct {
			Emoji string `json:"emoji"`
		}{Emoji: emoji}
		path := "/api/messages/" + url.PathEscape(messageID) + "/reactions"
		if err := c.postJSON(ctx, path, req, nil); err != nil {
			logger.Warn("reaction send failed for message %s: %v", messageID, err)
		}
	}()
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	op := errs.Op(fmt.Sprintf("api: %s %s", resp.Request.Method, resp.Request.URL.Path))
	return errs.Status(op, resp.StatusCode, string(bytes.TrimSpace(body)))
}
