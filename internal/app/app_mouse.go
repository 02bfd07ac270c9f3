package app

import (
	tea "charm.land/bubbletea/v2"

	"talkworld/internal/keys"
	"talkworld/internal/ui"
)

// routeMouseEvents routes mouse events to the chat panel with
// coordinate adjustment. Clicks over the sidebar are ignored for now;
// conversation switching is keyboard driven.
func (m *Model) routeMouseEvents(msg tea.Msg) tea.Cmd {
	if m.activeConversation == "" {
		return nil
	}
	sidebarWidth := ui.GetViewContext().SidebarWidth

	switch mouseMsg := msg.(type) {
	case tea.MouseClickMsg:
		if mouseMsg.X > sidebarWidth {
			return m.chat.Update(adjustMouseClickMsg(mouseMsg, sidebarWidth))
		}

	case tea.MouseMotionMsg:
		if mouseMsg.X > sidebarWidth {
			return m.chat.Update(adjustMouseMotionMsg(mouseMsg, sidebarWidth))
		}

	case tea.MouseReleaseMsg:
		if mouseMsg.X > sidebarWidth {
			return m.chat.Update(adjustMouseReleaseMsg(mouseMsg, sidebarWidth))
		}

	case tea.MouseWheelMsg:
		if mouseMsg.X > sidebarWidth {
			return m.chat.Update(mouseMsg)
		}
	}

	return nil
}

// routeSidebarFocusedEvents routes scroll keys to the chat panel even
// when the sidebar is focused, so browsing the list doesn't strand the
// open conversation's scrollback.
func (m *Model) routeSidebarFocusedEvents(msg tea.KeyPressMsg) tea.Cmd {
	if m.activeConversation == "" {
		return nil
	}
	// Home/end stay with the sidebar cursor; only paging scrolls chat.
	switch msg.String() {
	case keys.PgUp, keys.PgDown:
		return m.chat.Update(msg)
	}
	return nil
}

// adjustMouseClickMsg adjusts mouse click coordinates for the chat panel.
// X is adjusted by subtracting sidebar width, Y by subtracting header height.
func adjustMouseClickMsg(msg tea.MouseClickMsg, sidebarWidth int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseMotionMsg adjusts mouse motion coordinates for the chat panel.
func adjustMouseMotionMsg(msg tea.MouseMotionMsg, sidebarWidth int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseReleaseMsg adjusts mouse release coordinates for the chat panel.
func adjustMouseReleaseMsg(msg tea.MouseReleaseMsg, sidebarWidth int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      msg.X - sidebarWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}
