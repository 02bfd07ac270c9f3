package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"talkworld/internal/chat"
	"talkworld/internal/config"
	"talkworld/internal/ui"
	"talkworld/internal/ui/modals"
)

func TestNew_DefaultsToSidebarFocus(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	if m.focus != FocusSidebar {
		t.Errorf("focus = %v, want FocusSidebar", m.focus)
	}
	if m.activeConversation != "" {
		t.Errorf("activeConversation = %q, want empty", m.activeConversation)
	}
}

func TestInit_ReturnsStartupCmd(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	if m.Init() == nil {
		t.Fatal("Init() = nil, want command")
	}
}

func TestStartupModal_WelcomeOnFirstLaunch(t *testing.T) {
	cfg := testConfig(t)
	cfg.WelcomeShown = false
	m, _ := testModel(t, cfg)

	m.Update(StartupModalMsg{})

	if !m.modal.IsVisible() {
		t.Fatal("modal not visible after startup")
	}
	if _, ok := m.modal.State.(*modals.WelcomeState); !ok {
		t.Errorf("modal state = %T, want *modals.WelcomeState", m.modal.State)
	}
}

func TestStartupModal_ProfileWhenNoAccount(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetProfile(config.Profile{})
	m, _ := testModel(t, cfg)

	m.Update(StartupModalMsg{})

	if _, ok := m.modal.State.(*modals.ProfileState); !ok {
		t.Errorf("modal state = %T, want *modals.ProfileState", m.modal.State)
	}
}

func TestStartupModal_SkippedWhenSignedIn(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	m.Update(StartupModalMsg{})
	if m.modal.IsVisible() {
		t.Error("modal visible for a signed-in profile")
	}
}

func TestSelectConversation_OpensChatAndMovesFocus(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	cmd := m.selectConversation("c1")

	if m.focus != FocusChat {
		t.Errorf("focus = %v, want FocusChat", m.focus)
	}
	if m.activeConversation != "c1" {
		t.Errorf("activeConversation = %q, want c1", m.activeConversation)
	}
	if m.chat.ConversationID() != "c1" {
		t.Errorf("chat conversation = %q, want c1", m.chat.ConversationID())
	}
	// History is already cached, no fetch needed.
	if cmd != nil {
		t.Error("expected no load command for cached conversation")
	}
}

func TestSelectConversation_FetchesUncachedHistory(t *testing.T) {
	m, backend := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	backend.messages["c2"] = []chat.Message{
		{ID: "m9", ConversationID: "c2", SenderID: "u2", Text: "dinner at 8"},
	}

	cmd := m.selectConversation("c2")
	if cmd == nil {
		t.Fatal("expected a load command for uncached conversation")
	}

	msg := runCmd(cmd)
	loaded, ok := msg.(MessagesLoadedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want MessagesLoadedMsg", msg)
	}
	m.Update(loaded)

	if got := len(m.store.Messages("c2")); got != 1 {
		t.Errorf("store has %d messages, want 1", got)
	}
	if got := len(m.chat.Messages()); got != 1 {
		t.Errorf("chat shows %d messages, want 1", got)
	}
}

func TestSelectConversation_UnknownIDIsNoop(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	cmd := m.selectConversation("nope")
	if cmd != nil || m.activeConversation != "" {
		t.Error("unknown conversation should be ignored")
	}
}

func TestToggleFocus_RequiresOpenConversation(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	m.toggleFocus()
	if m.focus != FocusSidebar {
		t.Error("focus moved to chat with no conversation open")
	}

	seedConversations(m)
	m.selectConversation("c1")
	m.toggleFocus()
	if m.focus != FocusSidebar {
		t.Error("toggle from chat should land on sidebar")
	}
	m.toggleFocus()
	if m.focus != FocusChat {
		t.Error("toggle back should land on chat")
	}
}

func TestTabKeyTogglesFocus(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	m.selectConversation("c1")

	m.Update(keyPress("tab"))
	if m.focus != FocusSidebar {
		t.Errorf("focus = %v after tab, want FocusSidebar", m.focus)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	_, cmd := m.Update(keyPress("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}

	_, cmd = m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q on sidebar should quit")
	}

	seedConversations(m)
	m.selectConversation("c1")
	_, cmd = m.Update(keyPress("q"))
	if msg := runCmd(cmd); msg != nil {
		if _, quit := msg.(tea.QuitMsg); quit {
			t.Error("q while chatting should not quit")
		}
	}
}

func TestCtrlN_OpensNewChatModal(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	m.Update(keyPress("ctrl+n"))

	if !m.modal.IsVisible() {
		t.Fatal("modal not shown")
	}
	if _, ok := m.modal.State.(*modals.NewChatState); !ok {
		t.Errorf("modal state = %T, want *modals.NewChatState", m.modal.State)
	}
}

func TestCtrlD_OpensDeleteConfirmation(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	m.Update(keyPress("ctrl+d"))

	if !m.modal.IsVisible() {
		t.Fatal("modal not shown")
	}
	s, ok := m.modal.State.(*modals.ConfirmDeleteState)
	if !ok {
		t.Fatalf("modal state = %T, want *modals.ConfirmDeleteState", m.modal.State)
	}
	if s.ConversationID != "c1" {
		t.Errorf("delete target = %q, want c1", s.ConversationID)
	}
}

func TestSettingsKey_SidebarOnly(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	m.Update(keyPress("s"))
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatalf("modal state = %T, want *modals.SettingsState", m.modal.State)
	}
	m.modal.Hide()

	seedConversations(m)
	m.selectConversation("c1")
	m.Update(keyPress("s"))
	if m.modal.IsVisible() {
		t.Error("settings opened while typing in chat")
	}
}

func TestSendMessage_RoundTrip(t *testing.T) {
	m, backend := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	m.selectConversation("c1")

	_, cmd := m.Update(ui.SendMessageMsg{ConversationID: "c1", Text: "hello"})
	if cmd == nil {
		t.Fatal("send produced no command")
	}
	msg := runCmd(cmd)
	sent, ok := msg.(MessageSentMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want MessageSentMsg", msg)
	}
	if sent.Err != nil {
		t.Fatalf("send failed: %v", sent.Err)
	}
	if len(backend.sentMessages) != 1 {
		t.Fatalf("backend got %d messages, want 1", len(backend.sentMessages))
	}
	if backend.sentMessages[0].SenderID != "me" {
		t.Errorf("sender = %q, want me", backend.sentMessages[0].SenderID)
	}

	m.Update(sent)
	msgs := m.store.Messages("c1")
	if len(msgs) != 2 {
		t.Fatalf("store has %d messages, want 2", len(msgs))
	}
	if msgs[1].Text != "hello" {
		t.Errorf("stored text = %q", msgs[1].Text)
	}
}

func TestRenderToString_ShowsLoadingWithoutSize(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q, want Loading...", got)
	}
}

func TestRenderToString_RendersPanels(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	view := m.RenderToString()
	if view == "" || view == "Loading..." {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestClose_ShutsDownEventSource(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	events := newFakeEvents()
	m.events = events

	m.Close()

	if !events.closed {
		t.Error("Close did not close the event source")
	}
	if m.events != nil {
		t.Error("events not cleared")
	}
}
