package app

import (
	"context"
	"net/http"
	"time"

	tea "charm.land/bubbletea/v2"

	"talkworld/internal/chat"
	"talkworld/internal/logger"
)

// ConversationsLoadedMsg carries the conversation list fetched at startup.
type ConversationsLoadedMsg struct {
	Conversations []chat.Conversation
	Err           error
}

// MessagesLoadedMsg carries a conversation's message history.
type MessagesLoadedMsg struct {
	ConversationID string
	Messages       []chat.Message
	Err            error
}

// MessageSentMsg reports the outcome of sending a message.
type MessageSentMsg struct {
	Message chat.Message
	Err     error
}

// ConversationCreatedMsg reports a new conversation from the backend.
type ConversationCreatedMsg struct {
	Conversation chat.Conversation
	Err          error
}

// ConversationDeletedMsg reports a conversation deletion.
type ConversationDeletedMsg struct {
	ConversationID string
	Err            error
}

// OTPRequestedMsg reports whether the verification code was sent.
type OTPRequestedMsg struct {
	Phone string
	Err   error
}

// OTPVerifiedMsg reports the outcome of code verification. UserID is
// the server-assigned account ID on success.
type OTPVerifiedMsg struct {
	UserID string
	Err    error
}

// SpeechSynthesizedMsg reports the outcome of reading a message aloud.
type SpeechSynthesizedMsg struct {
	Audio []byte
	Err   error
}

func (m *Model) loadConversations() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		convs, err := backend.Conversations(context.Background())
		return ConversationsLoadedMsg{Conversations: convs, Err: err}
	}
}

func (m *Model) loadMessages(conversationID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		msgs, err := backend.Messages(context.Background(), conversationID)
		return MessagesLoadedMsg{ConversationID: conversationID, Messages: msgs, Err: err}
	}
}

func (m *Model) sendMessage(msg chat.Message) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		sent, err := backend.SendMessage(context.Background(), msg)
		return MessageSentMsg{Message: sent, Err: err}
	}
}

func (m *Model) createConversation(name string, participants []string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		conv, err := backend.CreateConversation(context.Background(), name, participants)
		return ConversationCreatedMsg{Conversation: conv, Err: err}
	}
}

func (m *Model) deleteConversation(conversationID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.DeleteConversation(context.Background(), conversationID)
		return ConversationDeletedMsg{ConversationID: conversationID, Err: err}
	}
}

func (m *Model) requestOTP(phone string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.RequestOTP(context.Background(), phone)
		return OTPRequestedMsg{Phone: phone, Err: err}
	}
}

func (m *Model) verifyOTP(phone, code string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		userID, err := backend.VerifyOTP(context.Background(), phone, code)
		return OTPVerifiedMsg{UserID: userID, Err: err}
	}
}

func (m *Model) speakMessage(text, language string) tea.Cmd {
	speaker := m.speaker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		audio, err := speaker.Synthesize(ctx, text, language, 1.0)
		if err == nil {
			logger.Debug("synthesized %d bytes of speech", len(audio))
		}
		return SpeechSynthesizedMsg{Audio: audio, Err: err}
	}
}

// MessageTranscribedMsg reports the outcome of transcribing a voice
// message.
type MessageTranscribedMsg struct {
	ConversationID string
	MessageID      string
	Text           string
	Err            error
}

// transcribeMessage downloads a voice attachment and runs it through the
// transcription service. The result lands in the message's text.
func (m *Model) transcribeMessage(conversationID string, msg chat.Message) tea.Cmd {
	speaker := m.speaker
	if speaker == nil || msg.Attachment == nil {
		return nil
	}
	att := *msg.Attachment
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
		if err != nil {
			return MessageTranscribedMsg{ConversationID: conversationID, MessageID: msg.ID, Err: err}
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return MessageTranscribedMsg{ConversationID: conversationID, MessageID: msg.ID, Err: err}
		}
		defer resp.Body.Close()

		tr, err := speaker.Transcribe(ctx, att.Name, resp.Body, "")
		if err != nil {
			return MessageTranscribedMsg{ConversationID: conversationID, MessageID: msg.ID, Err: err}
		}
		return MessageTranscribedMsg{ConversationID: conversationID, MessageID: msg.ID, Text: tr.Text}
	}
}

// notifyTyping tells the other participants the user is typing. Calls
// are throttled so holding a key down doesn't flood the socket.
func (m *Model) notifyTyping() tea.Cmd {
	if m.events == nil || m.activeConversation == "" {
		return nil
	}
	if time.Since(m.lastTypingSent) < typingSendInterval {
		return nil
	}
	m.lastTypingSent = time.Now()

	events := m.events
	conversationID := m.activeConversation
	return func() tea.Msg {
		if err := events.SendTyping(conversationID, true); err != nil {
			logger.Debug("typing notification failed: %v", err)
		}
		return nil
	}
}
