package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"talkworld/internal/keys"
)

// =============================================================================
// NewChatState - State for the new conversation modal
// =============================================================================

type NewChatState struct {
	participants string
	name         string

	form *huh.Form
}

func (*NewChatState) modalState() {}

func (s *NewChatState) Title() string { return "New Chat" }

func (s *NewChatState) Help() string {
	return "Tab: next field  Enter: create  Esc: cancel"
}

func (s *NewChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *NewChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetParticipants returns the entered participants, split on commas with
// blanks dropped.
func (s *NewChatState) GetParticipants() []string {
	var out []string
	for _, p := range strings.Split(s.participants, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetName returns the optional group name.
func (s *NewChatState) GetName() string {
	return strings.TrimSpace(s.name)
}

// NewNewChatState creates the new-conversation form.
func NewNewChatState() *NewChatState {
	s := &NewChatState{}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Who to chat with").
			Description("Phone numbers, comma separated for a group").
			Placeholder("+1 555 0101, +1 555 0102").
			CharLimit(ModalInputCharLimit).
			Value(&s.participants),
		huh.NewInput().
			Title("Group name").
			Description("Optional, only used for group chats").
			CharLimit(64).
			Value(&s.name),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

// =============================================================================
// ConfirmDeleteState - State for the delete conversation confirmation
// =============================================================================

type ConfirmDeleteState struct {
	ConversationID   string
	ConversationName string

	// 0 = cancel, 1 = delete
	choice int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Chat" }

func (s *ConfirmDeleteState) Help() string {
	return "←/→ to choose, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	warning := lipgloss.NewStyle().
		Foreground(ColorWarning).
		Width(46).
		Render("Delete \"" + TruncateString(s.ConversationName, 30) + "\"? Its message history will be removed from this device.")

	items := RenderSelectableList([]string{"Cancel", "Delete"}, s.choice)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, warning, "", items, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "left", "h", keys.Up, "k":
			s.choice = 0
		case "right", "l", keys.Down, "j":
			s.choice = 1
		case keys.Tab:
			s.choice = 1 - s.choice
		}
	}
	return s, nil
}

// Confirmed returns true when Delete is the highlighted choice.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.choice == 1
}

// NewConfirmDeleteState creates a confirmation for deleting a conversation.
func NewConfirmDeleteState(conversationID, conversationName string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ConversationID:   conversationID,
		ConversationName: conversationName,
	}
}
