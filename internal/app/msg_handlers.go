package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"talkworld/internal/chat"
	"talkworld/internal/logger"
	"talkworld/internal/notification"
	"talkworld/internal/realtime"
)

// MessageTranslatedMsg carries an incoming message after translation.
// On error the message is delivered untranslated.
type MessageTranslatedMsg struct {
	Message chat.Message
}

// TypingExpiredMsg clears a remote typing indicator that was not
// refreshed within its TTL.
type TypingExpiredMsg struct {
	ConversationID string
	UserName       string
}

func (m *Model) handleConversationsLoaded(msg ConversationsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("loading conversations: %v", msg.Err)
		m.header.SetStatus("offline")
		return nil
	}
	m.store.SetConversations(msg.Conversations)
	m.sidebar.SetConversations(msg.Conversations)
	return nil
}

func (m *Model) handleMessagesLoaded(msg MessagesLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("loading messages for %s: %v", msg.ConversationID, msg.Err)
		return nil
	}
	m.store.SetMessages(msg.ConversationID, msg.Messages)
	if m.activeConversation == msg.ConversationID {
		m.chat.SetMessages(msg.Messages)
	}
	return nil
}

func (m *Model) handleMessageSent(msg MessageSentMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("sending message: %v", msg.Err)
		m.header.SetStatus("send failed")
		return nil
	}
	m.header.SetStatus("")
	stored := m.store.Append(msg.Message)
	if m.activeConversation == stored.ConversationID {
		m.chat.SetMessages(m.store.Messages(stored.ConversationID))
	}
	m.sidebar.SetConversations(m.store.Conversations())
	return nil
}

func (m *Model) handleConversationCreated(msg ConversationCreatedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("creating conversation: %v", msg.Err)
		m.modal.SetError("Could not create the chat: " + msg.Err.Error())
		return nil
	}
	m.modal.Hide()
	m.store.AddConversation(msg.Conversation)
	m.sidebar.SetConversations(m.store.Conversations())
	return m.selectConversation(msg.Conversation.ID)
}

func (m *Model) handleConversationDeleted(msg ConversationDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("deleting conversation %s: %v", msg.ConversationID, msg.Err)
		m.modal.SetError("Could not delete the chat: " + msg.Err.Error())
		return nil
	}
	m.modal.Hide()
	m.store.RemoveConversation(msg.ConversationID)
	delete(m.coordinators, msg.ConversationID)
	m.sidebar.SetConversations(m.store.Conversations())
	if m.activeConversation == msg.ConversationID {
		m.activeConversation = ""
		m.header.SetConversationName("")
		m.chat.SetConversation("", "", nil)
		m.focus = FocusSidebar
		m.chat.Blur()
	}
	return nil
}

// handleRealtimeEvent dispatches one websocket event and re-arms the
// listener.
func (m *Model) handleRealtimeEvent(msg RealtimeEventMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.Event.Type {
	case realtime.EventMessageNew:
		cmd = m.handleIncomingMessage(msg.Event)
	case realtime.EventTyping:
		cmd = m.handleTypingEvent(msg.Event)
	case realtime.EventPresence:
		m.handlePresenceEvent(msg.Event)
	case realtime.EventReaction:
		m.handleReactionEvent(msg.Event)
	default:
		logger.Debug("ignoring realtime event type %q", msg.Event.Type)
	}

	listen := m.listenForEvent()
	if cmd == nil {
		return listen
	}
	if listen == nil {
		return cmd
	}
	return tea.Batch(cmd, listen)
}

func (m *Model) handleIncomingMessage(evt realtime.Event) tea.Cmd {
	incoming, err := realtime.DecodeMessage(evt)
	if err != nil {
		logger.Warn("bad message event: %v", err)
		return nil
	}

	profile := m.profile()
	// Our own sends already landed via the REST response.
	if incoming.SenderID == profile.ID {
		return nil
	}

	if m.shouldTranslate(incoming) {
		return m.translateIncoming(incoming)
	}
	return m.deliverIncoming(incoming)
}

// shouldTranslate reports whether an incoming message needs a
// translation pass before display.
func (m *Model) shouldTranslate(msg chat.Message) bool {
	if !m.config.GetAutoTranslate() || m.translator == nil {
		return false
	}
	if msg.Text == "" || msg.OriginalText != "" {
		return false
	}
	target := m.profile().Language
	return target != "" && msg.SourceLanguage != "" && msg.SourceLanguage != target
}

// translateIncoming translates a message into the profile language off
// the Update loop. Translation failure falls back to the original text.
func (m *Model) translateIncoming(msg chat.Message) tea.Cmd {
	translator := m.translator
	target := m.profile().Language
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := translator.Translate(ctx, msg.Text, msg.SourceLanguage, target)
		if err != nil {
			logger.Warn("translating message %s: %v", msg.ID, err)
			return MessageTranslatedMsg{Message: msg}
		}
		msg.OriginalText = msg.Text
		msg.Text = res.TranslatedText
		return MessageTranslatedMsg{Message: msg}
	}
}

// deliverIncoming lands a message in the store and refreshes whatever
// is showing it.
func (m *Model) deliverIncoming(incoming chat.Message) tea.Cmd {
	stored := m.store.Append(incoming)
	m.store.SetTyping(stored.ConversationID, "")
	m.sidebar.SetTyping(stored.ConversationID, "")

	active := m.activeConversation == stored.ConversationID
	if active {
		m.chat.SetMessages(m.store.Messages(stored.ConversationID))
		m.store.MarkRead(stored.ConversationID)
	} else {
		m.store.IncrementUnread(stored.ConversationID)
	}
	m.sidebar.SetConversations(m.store.Conversations())

	if !active && m.config.GetNotificationsEnabled() {
		sender := stored.SenderName
		preview := notification.Preview(stored.DisplayText())
		go func() {
			if err := notification.MessageReceived(sender, preview); err != nil {
				logger.Debug("notification failed: %v", err)
			}
		}()
	}
	return nil
}

func (m *Model) handleTypingEvent(evt realtime.Event) tea.Cmd {
	payload, err := realtime.DecodeTyping(evt)
	if err != nil {
		logger.Warn("bad typing event: %v", err)
		return nil
	}
	m.store.SetTyping(payload.ConversationID, payload.UserName)
	m.sidebar.SetTyping(payload.ConversationID, payload.UserName)
	if payload.UserName == "" {
		return nil
	}
	conversationID := payload.ConversationID
	userName := payload.UserName
	return tea.Tick(typingIndicatorTTL, func(time.Time) tea.Msg {
		return TypingExpiredMsg{ConversationID: conversationID, UserName: userName}
	})
}

func (m *Model) handleTypingExpired(msg TypingExpiredMsg) {
	// A fresher indicator may have replaced the one that expired.
	if m.store.Typing(msg.ConversationID) != msg.UserName {
		return
	}
	m.store.SetTyping(msg.ConversationID, "")
	m.sidebar.SetTyping(msg.ConversationID, "")
}

// handleMessageTranscribed fills a finished transcription into the voice
// message it belongs to.
func (m *Model) handleMessageTranscribed(msg MessageTranscribedMsg) {
	if msg.Err != nil {
		logger.Warn("transcription failed for %s: %v", msg.MessageID, msg.Err)
		return
	}
	m.store.SetMessageText(msg.ConversationID, msg.MessageID, msg.Text)
	if msg.ConversationID == m.activeConversation {
		m.chat.SetMessages(m.store.Messages(msg.ConversationID))
	}
}

func (m *Model) handlePresenceEvent(evt realtime.Event) {
	payload, err := realtime.DecodePresence(evt)
	if err != nil {
		logger.Warn("bad presence event: %v", err)
		return
	}
	m.store.SetPresence(payload.UserID, payload.Online)
	for _, conv := range m.store.Conversations() {
		for _, participant := range conv.Participants {
			if participant == payload.UserID {
				m.sidebar.SetOnline(conv.ID, payload.Online)
				break
			}
		}
	}
}

func (m *Model) handleReactionEvent(evt realtime.Event) {
	reaction, err := realtime.DecodeReaction(evt)
	if err != nil {
		logger.Warn("bad reaction event: %v", err)
		return
	}
	conversationID, ok := m.conversationOfMessage(reaction.MessageID)
	if !ok {
		logger.Debug("reaction for unknown message %s", reaction.MessageID)
		return
	}
	m.store.AddReaction(conversationID, reaction)
	if m.activeConversation == conversationID {
		m.chat.SetMessages(m.store.Messages(conversationID))
	}
}

// conversationOfMessage finds which conversation holds a message. The
// reaction payload carries only the message ID.
func (m *Model) conversationOfMessage(messageID string) (string, bool) {
	for _, conv := range m.store.Conversations() {
		for _, msg := range m.store.Messages(conv.ID) {
			if msg.ID == messageID {
				return conv.ID, true
			}
		}
	}
	return "", false
}
