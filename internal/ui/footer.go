package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	bindings        []KeyBinding
	hasConversation bool // Whether a conversation is open
	sidebarFocused  bool // Whether sidebar has focus
	selectionMode   bool // Whether messages are selected
	selectionCount  int  // How many messages are selected
	popoverVisible  bool // Whether the context menu or reaction picker is open
	replyActive     bool // Whether a reply draft is staged
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "ctrl+d", Desc: "delete"},
			{Key: "s", Desc: "settings"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasConversation, sidebarFocused, selectionMode bool, selectionCount int, popoverVisible, replyActive bool) {
	f.hasConversation = hasConversation
	f.sidebarFocused = sidebarFocused
	f.selectionMode = selectionMode
	f.selectionCount = selectionCount
	f.popoverVisible = popoverVisible
	f.replyActive = replyActive
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// activeBindings returns the bindings for the current context.
func (f *Footer) activeBindings() []KeyBinding {
	if f.popoverVisible && !f.sidebarFocused {
		return []KeyBinding{
			{Key: "↑/↓/←/→", Desc: "navigate"},
			{Key: "enter", Desc: "choose"},
			{Key: "esc", Desc: "dismiss"},
		}
	}
	if f.selectionMode && !f.sidebarFocused {
		return []KeyBinding{
			{Key: "space", Desc: "toggle"},
			{Key: "y", Desc: fmt.Sprintf("copy %d selected", f.selectionCount)},
			{Key: "esc", Desc: "clear selection"},
		}
	}
	if !f.sidebarFocused && f.hasConversation {
		bindings := []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "o", Desc: "message menu"},
			{Key: "e", Desc: "react"},
			{Key: "space", Desc: "select"},
			{Key: "tab", Desc: "switch pane"},
		}
		if f.replyActive {
			bindings = append(bindings, KeyBinding{Key: "esc", Desc: "cancel reply"})
		}
		return bindings
	}

	var visible []KeyBinding
	for _, b := range f.bindings {
		// Can't switch to chat without a conversation
		if b.Key == "tab" && !f.hasConversation {
			continue
		}
		// Sidebar-only bindings hidden when chat is focused
		if (b.Key == "ctrl+d" || b.Key == "s" || b.Key == "q") && !f.sidebarFocused {
			continue
		}
		if (b.Key == "ctrl+d" || b.Key == "pgup/dn") && !f.hasConversation {
			continue
		}
		visible = append(visible, b)
	}
	return visible
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.activeBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
