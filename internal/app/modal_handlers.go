package app

import (
	tea "charm.land/bubbletea/v2"

	"talkworld/internal/config"
	"talkworld/internal/keys"
	"talkworld/internal/logger"
	"talkworld/internal/ui"
	"talkworld/internal/ui/modals"
)

// handleStartupModals shows the onboarding modals on first launch.
func (m *Model) handleStartupModals() tea.Cmd {
	if !m.config.HasSeenWelcome() {
		m.modal.Show(modals.NewWelcomeState())
		return nil
	}
	if !m.config.HasProfile() {
		m.showProfileModal()
	}
	return nil
}

func (m *Model) showProfileModal() {
	p := m.config.GetProfile()
	m.modal.Show(modals.NewProfileState(p.Name, p.Phone, p.Language))
}

func (m *Model) showSettingsModal() {
	themeNames := ui.ThemeNames()
	themes := make([]string, len(themeNames))
	for i, name := range themeNames {
		themes[i] = string(name)
	}
	m.modal.Show(modals.NewSettingsState(
		themes,
		string(ui.CurrentThemeName()),
		m.profile().Language,
		m.config.GetNotificationsEnabled(),
		m.config.GetAutoTranslate(),
	))
}

// handleModalKey routes modal key events to the handler for the open
// modal state.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.WelcomeState:
		return m.handleWelcomeModal(key)
	case *modals.ProfileState:
		return m.handleProfileModal(key, msg, s)
	case *modals.OTPState:
		return m.handleOTPModal(key, msg, s)
	case *modals.NewChatState:
		return m.handleNewChatModal(key, msg, s)
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleWelcomeModal(key string) tea.Cmd {
	switch key {
	case keys.Enter, keys.Escape:
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			logger.Warn("saving config: %v", err)
		}
		if !m.config.HasProfile() {
			m.showProfileModal()
			return nil
		}
		m.modal.Hide()
	}
	return nil
}

func (m *Model) handleProfileModal(key string, msg tea.KeyPressMsg, s *modals.ProfileState) tea.Cmd {
	switch key {
	case keys.Enter:
		name, phone := s.GetName(), s.GetPhone()
		if name == "" {
			m.modal.SetError("Enter your name")
			return nil
		}
		if phone == "" {
			m.modal.SetError("Enter your phone number")
			return nil
		}
		m.pendingProfile.Name = name
		m.pendingProfile.Phone = phone
		m.pendingProfile.Language = s.GetLanguage()
		m.modal.Show(modals.NewOTPState(phone))
		return m.requestOTP(phone)
	case keys.Escape:
		// Onboarding can't be skipped without an account.
		if m.config.HasProfile() {
			m.modal.Hide()
		}
		return nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleOTPModal(key string, msg tea.KeyPressMsg, s *modals.OTPState) tea.Cmd {
	switch key {
	case keys.Enter:
		code := s.GetCode()
		if len(code) != 6 {
			m.modal.SetError("Enter the 6-digit code")
			return nil
		}
		return m.verifyOTP(s.Phone, code)
	case keys.Escape:
		// Back to the profile form; the phone number may be wrong.
		m.showProfileModal()
		return nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleNewChatModal(key string, msg tea.KeyPressMsg, s *modals.NewChatState) tea.Cmd {
	switch key {
	case keys.Enter:
		participants := s.GetParticipants()
		if len(participants) == 0 {
			m.modal.SetError("Enter at least one phone number")
			return nil
		}
		return m.createConversation(s.GetName(), participants)
	case keys.Escape:
		m.modal.Hide()
		return nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, s *modals.ConfirmDeleteState) tea.Cmd {
	switch key {
	case keys.Enter:
		if !s.Confirmed() {
			m.modal.Hide()
			return nil
		}
		return m.deleteConversation(s.ConversationID)
	case keys.Escape:
		m.modal.Hide()
		return nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, s *modals.SettingsState) tea.Cmd {
	switch key {
	case keys.Enter:
		if s.ThemeChanged() {
			ui.SetThemeByName(s.GetSelectedTheme())
			m.config.SetTheme(s.GetSelectedTheme())
		}
		if lang := s.GetLanguage(); lang != "" && lang != m.profile().Language {
			p := m.config.GetProfile()
			p.Language = lang
			m.config.SetProfile(p)
		}
		m.config.SetNotificationsEnabled(s.NotificationsEnabled)
		m.config.SetAutoTranslate(s.AutoTranslate)
		if err := m.config.Save(); err != nil {
			logger.Warn("saving config: %v", err)
		}
		m.modal.Hide()
		return nil
	case keys.Escape:
		m.modal.Hide()
		return nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

func (m *Model) handleOTPRequested(msg OTPRequestedMsg) {
	if msg.Err != nil {
		logger.Error("requesting OTP: %v", msg.Err)
		m.modal.SetError("Could not send the code: " + msg.Err.Error())
	}
}

func (m *Model) handleOTPVerified(msg OTPVerifiedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Error("verifying OTP: %v", msg.Err)
		m.modal.SetError("Verification failed. Check the code and try again.")
		return nil
	}

	profile := m.pendingProfile
	profile.ID = msg.UserID
	m.config.SetProfile(profile)
	if err := m.config.Save(); err != nil {
		logger.Warn("saving config: %v", err)
	}
	m.pendingProfile = config.Profile{}
	m.modal.Hide()

	return tea.Batch(m.loadConversations(), m.connectRealtime())
}
