package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"talkworld/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string. Useful for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateFooterContext()

	header := m.header.View()
	footer := m.footer.View()

	vc := ui.GetViewContext()
	sidebarView := m.panelStyle(m.focus == FocusSidebar).
		Width(vc.InnerWidth(vc.SidebarWidth)).
		Height(vc.InnerHeight(vc.ContentHeight)).
		Render(m.sidebar.View(m.focus == FocusSidebar))
	chatView := m.panelStyle(m.focus == FocusChat).
		Width(vc.InnerWidth(vc.ChatWidth)).
		Height(vc.InnerHeight(vc.ContentHeight)).
		Render(m.chat.View(m.focus == FocusChat))

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarView,
		chatView,
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}

func (m *Model) panelStyle(focused bool) lipgloss.Style {
	if focused {
		return ui.PanelFocusedStyle
	}
	return ui.PanelStyle
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	coord := m.activeCoordinator()
	selectionMode := coord != nil && coord.SelectionMode()
	selectionCount := 0
	if coord != nil {
		selectionCount = coord.SelectionCount()
	}
	popoverVisible := coord != nil && coord.AnyPopoverVisible()
	replyActive := coord != nil && coord.ReplyTo() != nil

	m.footer.SetContext(
		m.activeConversation != "",
		m.focus == FocusSidebar,
		selectionMode,
		selectionCount,
		popoverVisible,
		replyActive,
	)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	vc := ui.GetViewContext()
	vc.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(vc.TerminalWidth)
	m.footer.SetWidth(vc.TerminalWidth)
	m.sidebar.SetSize(vc.SidebarWidth, vc.ContentHeight)
	m.chat.SetSize(vc.ChatWidth, vc.ContentHeight)
}
