// Package chat defines the Talk World domain model: conversations,
// messages, attachments, and reactions, plus the in-memory store that
// feeds the UI.
package chat

import "time"

// Attachment describes a file attached to a message.
type Attachment struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// Reaction is a single emoji reaction on a message.
type Reaction struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Emoji     string `json:"emoji"`
}

// Message is a single chat message. Text holds the message as displayed
// (translated when the sender wrote in another language); OriginalText
// holds the pre-translation text when a translation was applied.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	SenderID       string      `json:"sender_id"`
	SenderName     string      `json:"sender_name,omitempty"`
	Text           string      `json:"text,omitempty"`
	OriginalText   string      `json:"original_text,omitempty"`
	SourceLanguage string      `json:"source_language,omitempty"`
	Attachment     *Attachment `json:"attachment,omitempty"`
	Reactions      []Reaction  `json:"reactions,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// DisplayText returns the text to show, copy, or quote for a message:
// the primary text when present, otherwise the pre-translation original.
func (m Message) DisplayText() string {
	if m.Text != "" {
		return m.Text
	}
	return m.OriginalText
}

// Conversation is a chat thread with one or more participants.
type Conversation struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Participants []string  `json:"participants,omitempty"`
	LastMessage  string    `json:"last_message,omitempty"`
	LastActivity time.Time `json:"last_activity"`
	Unread       int       `json:"unread"`
}
