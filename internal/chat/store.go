package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory message source for the client. It holds the
// conversation list and per-conversation message history, refreshed from
// the REST API and updated incrementally from realtime events.
//
// All methods are safe for concurrent use; readers get snapshot copies so
// the UI never observes a partially applied update.
type Store struct {
	mu            sync.RWMutex
	conversations []Conversation
	messages      map[string][]Message // conversation ID -> ordered history
	typing        map[string]string    // conversation ID -> user currently typing
	presence      map[string]bool      // user ID -> online
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		messages: make(map[string][]Message),
		typing:   make(map[string]string),
		presence: make(map[string]bool),
	}
}

// SetConversations replaces the conversation list.
func (s *Store) SetConversations(convs []Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]Conversation(nil), convs...)
}

// Conversations returns a snapshot of the conversation list.
func (s *Store) Conversations() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Conversation(nil), s.conversations...)
}

// Conversation returns the conversation with the given ID, if present.
func (s *Store) Conversation(id string) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.conversations {
		if c.ID == id {
			return c, true
		}
	}
	return Conversation{}, false
}

// AddConversation appends a new conversation, minting an ID when the
// caller doesn't supply one. Returns the stored conversation.
func (s *Store) AddConversation(conv Conversation) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.LastActivity.IsZero() {
		conv.LastActivity = time.Now()
	}
	s.conversations = append(s.conversations, conv)
	return conv
}

// RemoveConversation deletes a conversation and its message history.
func (s *Store) RemoveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.conversations {
		if c.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			break
		}
	}
	delete(s.messages, id)
	delete(s.typing, id)
}

// SetMessages replaces the history for a conversation.
func (s *Store) SetMessages(conversationID string, msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[conversationID] = append([]Message(nil), msgs...)
}

// Messages returns a snapshot of a conversation's history in order.
func (s *Store) Messages(conversationID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages[conversationID]...)
}

// Append adds a message to the end of its conversation's history and
// bumps the conversation's last-activity metadata. The message ID is
// minted when empty (locally originated messages).
func (s *Store) Append(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)

	for i := range s.conversations {
		if s.conversations[i].ID == msg.ConversationID {
			s.conversations[i].LastMessage = msg.DisplayText()
			s.conversations[i].LastActivity = msg.Timestamp
			break
		}
	}
	return msg
}

// AddReaction records a reaction on a message. Unknown message IDs are
// ignored; a stale reaction for a removed message is a benign race.
func (s *Store) AddReaction(conversationID string, r Reaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[conversationID]
	for i := range msgs {
		if msgs[i].ID == r.MessageID {
			msgs[i].Reactions = append(msgs[i].Reactions, r)
			return
		}
	}
}

// SetMessageText fills in a message's text after the fact, used when a
// voice message's transcription arrives. Unknown message IDs are ignored.
func (s *Store) SetMessageText(conversationID, messageID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[conversationID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Text = text
			return
		}
	}
}

// MarkRead zeroes the unread counter for a conversation.
func (s *Store) MarkRead(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].Unread = 0
			return
		}
	}
}

// IncrementUnread bumps the unread counter for a conversation.
func (s *Store) IncrementUnread(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].Unread++
			return
		}
	}
}

// SetTyping records which user is typing in a conversation; empty user
// clears the indicator.
func (s *Store) SetTyping(conversationID, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userName == "" {
		delete(s.typing, conversationID)
		return
	}
	s.typing[conversationID] = userName
}

// Typing returns the name of the user typing in a conversation, if any.
func (s *Store) Typing(conversationID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typing[conversationID]
}

// SetPresence records whether a user is online.
func (s *Store) SetPresence(userID string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if online {
		s.presence[userID] = true
		return
	}
	delete(s.presence, userID)
}

// IsOnline reports whether a user is known to be online.
func (s *Store) IsOnline(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presence[userID]
}
