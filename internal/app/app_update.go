package app

import (
	tea "charm.land/bubbletea/v2"

	"talkworld/internal/keys"
	"talkworld/internal/logger"
	"talkworld/internal/ui"
	"talkworld/internal/ui/modals"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case StartupModalMsg:
		return m, m.handleStartupModals()

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		return m, m.routeMouseEvents(msg)

	case ui.ConversationSelectedMsg:
		return m, m.selectConversation(msg.ConversationID)

	case ui.SendMessageMsg:
		return m, m.handleSendRequest(msg)

	case ui.ReactionCloseMsg:
		if m.chat.ConversationID() == msg.ConversationID {
			m.chat.ApplyDelayedClose(msg.Token)
		}
		return m, nil

	case ui.SpeakMessageMsg:
		if m.speaker == nil {
			return m, nil
		}
		return m, m.speakMessage(msg.Text, msg.Language)

	case ui.TranscribeMessageMsg:
		return m, m.transcribeMessage(msg.ConversationID, msg.Message)

	case ui.ClipboardErrorMsg:
		logger.Warn("clipboard: %v", msg.Error)
		return m, nil

	case ConversationsLoadedMsg:
		return m, m.handleConversationsLoaded(msg)

	case MessagesLoadedMsg:
		return m, m.handleMessagesLoaded(msg)

	case MessageSentMsg:
		return m, m.handleMessageSent(msg)

	case ConversationCreatedMsg:
		return m, m.handleConversationCreated(msg)

	case ConversationDeletedMsg:
		return m, m.handleConversationDeleted(msg)

	case OTPRequestedMsg:
		m.handleOTPRequested(msg)
		return m, nil

	case OTPVerifiedMsg:
		return m, m.handleOTPVerified(msg)

	case RealtimeConnectedMsg:
		return m, m.handleRealtimeConnected(msg)

	case RealtimeEventMsg:
		return m, m.handleRealtimeEvent(msg)

	case RealtimeClosedMsg:
		return m, m.handleRealtimeClosed()

	case reconnectTickMsg:
		return m, m.connectRealtime()

	case MessageTranslatedMsg:
		return m, m.deliverIncoming(msg.Message)

	case TypingExpiredMsg:
		m.handleTypingExpired(msg)
		return m, nil

	case SpeechSynthesizedMsg:
		if msg.Err != nil {
			logger.Warn("speech synthesis failed: %v", msg.Err)
		}
		return m, nil

	case MessageTranscribedMsg:
		m.handleMessageTranscribed(msg)
		return m, nil
	}

	// Everything else (blink ticks, animation frames) goes to whichever
	// component is live.
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}
	return m, m.chat.Update(msg)
}

// handleKeyPress routes key events: modal first, then global shortcuts,
// then the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m, m.handleModalKey(msg)
	}

	switch msg.String() {
	case keys.CtrlC:
		return m, tea.Quit
	case "q":
		// Only quit on 'q' when sidebar is focused (so user can type 'q' in chat)
		if m.focus == FocusSidebar {
			return m, tea.Quit
		}
	case keys.Tab:
		m.toggleFocus()
		return m, nil
	case keys.CtrlN:
		m.modal.Show(modals.NewNewChatState())
		return m, nil
	case keys.CtrlD:
		if m.focus == FocusSidebar {
			if conv := m.sidebar.Selected(); conv != nil {
				m.modal.Show(modals.NewConfirmDeleteState(conv.ID, conv.Name))
			}
		}
		return m, nil
	case "s":
		if m.focus == FocusSidebar {
			m.showSettingsModal()
			return m, nil
		}
	case keys.CtrlV:
		// Image paste into the composer; text paste arrives as a
		// separate paste event and is unaffected.
		if m.focus == FocusChat && !m.chat.Browsing() {
			m.handleImagePaste()
			return m, nil
		}
	}

	if m.focus == FocusSidebar {
		if cmd := m.routeSidebarFocusedEvents(msg); cmd != nil {
			return m, cmd
		}
		return m, m.sidebar.Update(msg)
	}

	cmds := []tea.Cmd{m.chat.Update(msg)}
	// Printable input in the composer signals typing to the peers.
	if msg.Text != "" && !m.chat.Browsing() {
		cmds = append(cmds, m.notifyTyping())
	}
	return m, tea.Batch(cmds...)
}

// handleSendRequest builds the outgoing message from the composer
// payload. A staged reply is folded in as a quote block.
func (m *Model) handleSendRequest(msg ui.SendMessageMsg) tea.Cmd {
	profile := m.profile()
	outgoing := buildOutgoingMessage(msg, profile.ID, profile.Name, profile.Language)
	return m.sendMessage(outgoing)
}
