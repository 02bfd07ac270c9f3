package modals

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	selectedTheme    string
	OriginalTheme    string // To detect if theme changed
	selectedLanguage string

	NotificationsEnabled bool
	AutoTranslate        bool

	// MultiSelect bindings
	generalOptions []string

	form *huh.Form
}

const (
	optionNotifications = "notifications"
	optionAutoTranslate = "auto-translate"
)

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect bindings.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
	s.AutoTranslate = slices.Contains(s.generalOptions, optionAutoTranslate)
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetLanguage returns the selected interface language code.
func (s *SettingsState) GetLanguage() string {
	return s.selectedLanguage
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(themes []string, currentTheme, currentLanguage string,
	notificationsEnabled, autoTranslate bool) *SettingsState {

	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		selectedLanguage:     currentLanguage,
		NotificationsEnabled: notificationsEnabled,
		AutoTranslate:        autoTranslate,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i, name := range themes {
		themeOptions[i] = huh.NewOption(name, name)
	}

	languageOptions := make([]huh.Option[string], len(SupportedLanguages))
	for i, lang := range SupportedLanguages {
		languageOptions[i] = huh.NewOption(lang.Name, lang.Code)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Translate incoming messages", optionAutoTranslate).
			Selected(autoTranslate),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if autoTranslate {
		s.generalOptions = append(s.generalOptions, optionAutoTranslate)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewSelect[string]().
			Title("Your language").
			Options(languageOptions...).
			Height(6).
			Value(&s.selectedLanguage),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
