package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestProfileState_Values(t *testing.T) {
	s := NewProfileState("  Ana ", " +1 555 0100 ", "")

	if got := s.GetName(); got != "Ana" {
		t.Errorf("GetName() = %q, want %q", got, "Ana")
	}
	if got := s.GetPhone(); got != "+1 555 0100" {
		t.Errorf("GetPhone() = %q, want %q", got, "+1 555 0100")
	}
	if got := s.GetLanguage(); got != "en" {
		t.Errorf("GetLanguage() = %q, want default %q", got, "en")
	}
}

func TestProfileState_Render(t *testing.T) {
	s := NewProfileState("", "", "es")
	rendered := s.Render()

	if !strings.Contains(rendered, "Set Up Your Profile") {
		t.Error("Render should contain the title")
	}
	if !strings.Contains(rendered, "Phone number") {
		t.Error("Render should contain the phone field")
	}
}

func TestOTPState_Code(t *testing.T) {
	s := NewOTPState("+1 555 0100")

	if got := s.GetCode(); got != "" {
		t.Errorf("GetCode() on fresh state = %q, want empty", got)
	}
	if !strings.Contains(s.Render(), "+1 555 0100") {
		t.Error("Render should show the phone the code was sent to")
	}
}

func TestNewChatState_Participants(t *testing.T) {
	s := NewNewChatState()
	s.participants = " +1 555 0101 , , +1 555 0102,"

	got := s.GetParticipants()
	want := []string{"+1 555 0101", "+1 555 0102"}
	if len(got) != len(want) {
		t.Fatalf("GetParticipants() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("participant[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewChatState_EmptyParticipants(t *testing.T) {
	s := NewNewChatState()
	if got := s.GetParticipants(); got != nil {
		t.Errorf("GetParticipants() on empty input = %v, want nil", got)
	}
}

func TestConfirmDeleteState_Toggle(t *testing.T) {
	s := NewConfirmDeleteState("c1", "Family")

	if s.Confirmed() {
		t.Fatal("fresh confirm state should default to cancel")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if !s.Confirmed() {
		t.Error("right should select Delete")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Confirmed() {
		t.Error("left should select Cancel")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !s.Confirmed() {
		t.Error("tab should toggle to Delete")
	}
}

func TestConfirmDeleteState_TruncatesLongName(t *testing.T) {
	long := strings.Repeat("x", 80)
	s := NewConfirmDeleteState("c1", long)

	if strings.Contains(s.Render(), long) {
		t.Error("Render should truncate very long conversation names")
	}
}

func TestSettingsState_SyncFromMultiSelect(t *testing.T) {
	s := NewSettingsState([]string{"teal", "nord"}, "teal", "en", true, false)

	if !s.NotificationsEnabled {
		t.Error("notifications should start enabled")
	}
	if s.AutoTranslate {
		t.Error("auto-translate should start disabled")
	}

	s.generalOptions = []string{optionAutoTranslate}
	s.syncFromMultiSelect()

	if s.NotificationsEnabled {
		t.Error("notifications should be disabled after sync")
	}
	if !s.AutoTranslate {
		t.Error("auto-translate should be enabled after sync")
	}
}

func TestSettingsState_ThemeChanged(t *testing.T) {
	s := NewSettingsState([]string{"teal", "nord"}, "teal", "en", false, false)

	if s.ThemeChanged() {
		t.Error("theme should be unchanged initially")
	}
	s.selectedTheme = "nord"
	if !s.ThemeChanged() {
		t.Error("theme change should be detected")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString short = %q", got)
	}
	if got := TruncateString("a very long string here", 10); got != "a very ..." {
		t.Errorf("TruncateString long = %q", got)
	}
}

func TestRenderSelectableList(t *testing.T) {
	out := RenderSelectableList([]string{"Cancel", "Delete"}, 1)
	if !strings.Contains(out, "> Delete") {
		t.Errorf("selected item should carry the > prefix, got %q", out)
	}
	if !strings.Contains(out, "  Cancel") {
		t.Errorf("unselected item should be indented, got %q", out)
	}
}
