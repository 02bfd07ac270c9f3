package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"talkworld/internal/chat"
	"talkworld/internal/keys"
)

// ConversationSelectedMsg is sent when the user opens a conversation from
// the sidebar.
type ConversationSelectedMsg struct {
	ConversationID string
}

// Sidebar renders the conversation list.
type Sidebar struct {
	width  int
	height int

	conversations []chat.Conversation
	cursor        int
	scrollOffset  int

	typing map[string]string // conversation ID -> name of who is typing
	online map[string]bool   // conversation ID -> any participant online
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{
		typing: make(map[string]string),
		online: make(map[string]bool),
	}
}

// SetSize sets the sidebar dimensions (including borders).
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetConversations replaces the conversation list, clamping the cursor.
func (s *Sidebar) SetConversations(conversations []chat.Conversation) {
	s.conversations = conversations
	if s.cursor >= len(conversations) {
		s.cursor = len(conversations) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// SetTyping records who is typing in a conversation. Empty name clears it.
func (s *Sidebar) SetTyping(conversationID, name string) {
	if name == "" {
		delete(s.typing, conversationID)
		return
	}
	s.typing[conversationID] = name
}

// SetOnline records whether any participant of a conversation is online.
func (s *Sidebar) SetOnline(conversationID string, online bool) {
	if online {
		s.online[conversationID] = true
	} else {
		delete(s.online, conversationID)
	}
}

// Selected returns the conversation under the cursor, or nil when the
// list is empty.
func (s *Sidebar) Selected() *chat.Conversation {
	if s.cursor < 0 || s.cursor >= len(s.conversations) {
		return nil
	}
	conv := s.conversations[s.cursor]
	return &conv
}

// SelectConversation moves the cursor to the conversation with the given
// ID if present.
func (s *Sidebar) SelectConversation(id string) {
	for i, conv := range s.conversations {
		if conv.ID == id {
			s.cursor = i
			return
		}
	}
}

// Update handles key events while the sidebar has focus.
func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case keys.Down, "j":
		if s.cursor < len(s.conversations)-1 {
			s.cursor++
		}
	case keys.Home:
		s.cursor = 0
	case keys.End:
		s.cursor = len(s.conversations) - 1
	case keys.Enter:
		if selected := s.Selected(); selected != nil {
			id := selected.ID
			return func() tea.Msg {
				return ConversationSelectedMsg{ConversationID: id}
			}
		}
	}
	return nil
}

// visibleRange returns the window of conversations to render, keeping the
// cursor in view.
func (s *Sidebar) visibleRange(maxRows int) (start, end int) {
	if maxRows <= 0 || len(s.conversations) == 0 {
		return 0, 0
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+maxRows {
		s.scrollOffset = s.cursor - maxRows + 1
	}
	start = s.scrollOffset
	end = start + maxRows
	if end > len(s.conversations) {
		end = len(s.conversations)
	}
	return start, end
}

// View renders the sidebar content (without the outer panel border).
func (s *Sidebar) View(focused bool) string {
	vc := GetViewContext()
	innerWidth := vc.InnerWidth(s.width)
	innerHeight := vc.InnerHeight(s.height)

	if len(s.conversations) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Padding(0, 1).
			Render("No chats yet. ctrl+n to start one.")
		return lipgloss.Place(innerWidth, innerHeight, lipgloss.Left, lipgloss.Top, empty)
	}

	var b strings.Builder
	// Each item takes two rows: name line and detail line.
	start, end := s.visibleRange(innerHeight / 2)
	for i := start; i < end; i++ {
		conv := s.conversations[i]
		b.WriteString(s.renderItem(conv, i == s.cursor && focused, innerWidth))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderItem renders one conversation row: presence dot, name, typing
// indicator or last-message preview, unread badge.
func (s *Sidebar) renderItem(conv chat.Conversation, selected bool, width int) string {
	dot := "  "
	if s.online[conv.ID] {
		dot = SidebarOnlineStyle.Render("● ")
	}

	var badge string
	if conv.Unread > 0 {
		badge = SidebarUnreadStyle.Render(fmt.Sprintf("%d", conv.Unread))
	}

	var detail string
	if name, ok := s.typing[conv.ID]; ok {
		detail = SidebarTypingStyle.Render(runewidth.Truncate(name+" is typing…", width-4, "…"))
	} else if conv.LastMessage != "" {
		detail = ReplySnippetStyle.Render(runewidth.Truncate(conv.LastMessage, width-4, "…"))
	}

	// name [badge], truncated to fit
	nameWidth := width - lipgloss.Width(dot) - lipgloss.Width(badge) - 3
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := runewidth.Truncate(conv.Name, nameWidth, "…")

	line := dot + name
	if badge != "" {
		pad := width - lipgloss.Width(line) - lipgloss.Width(badge) - 2
		if pad < 1 {
			pad = 1
		}
		line += strings.Repeat(" ", pad) + badge
	}
	// Always two rows so scrolling math stays uniform.
	line += "\n"
	if detail != "" {
		line += "  " + detail
	}

	if selected {
		return SidebarSelectedStyle.Width(width).Render(line)
	}
	return SidebarItemStyle.Width(width).Render(line)
}
