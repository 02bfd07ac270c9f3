package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// WelcomeState - State for the first-time user welcome modal
// =============================================================================

type WelcomeState struct{}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to Talk World!" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(50).
		Render("Talk World lets you chat with anyone in any language. Messages are translated automatically, and you can listen to them in your own language too.")

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  ctrl+n  Start a new chat\n  Tab     Switch between chats and messages\n  e       React to a message")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState() *WelcomeState {
	return &WelcomeState{}
}

// =============================================================================
// ProfileState - State for the profile setup modal
// =============================================================================

type ProfileState struct {
	name     string
	phone    string
	language string

	form *huh.Form
}

func (*ProfileState) modalState() {}

func (s *ProfileState) Title() string { return "Set Up Your Profile" }

func (s *ProfileState) Help() string {
	return "Tab: next field  Enter: continue  Esc: quit"
}

func (s *ProfileState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ProfileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetName returns the entered display name.
func (s *ProfileState) GetName() string {
	return strings.TrimSpace(s.name)
}

// GetPhone returns the entered phone number.
func (s *ProfileState) GetPhone() string {
	return strings.TrimSpace(s.phone)
}

// GetLanguage returns the selected language code.
func (s *ProfileState) GetLanguage() string {
	return s.language
}

// NewProfileState creates the profile form, pre-filled with any existing
// values.
func NewProfileState(name, phone, language string) *ProfileState {
	if language == "" {
		language = "en"
	}

	s := &ProfileState{
		name:     name,
		phone:    phone,
		language: language,
	}

	languageOptions := make([]huh.Option[string], len(SupportedLanguages))
	for i, lang := range SupportedLanguages {
		languageOptions[i] = huh.NewOption(lang.Name, lang.Code)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("How should people see you?").
			CharLimit(64).
			Value(&s.name),
		huh.NewInput().
			Title("Phone number").
			Description("Used to sign in and find your chats").
			Placeholder("+1 555 0100").
			CharLimit(24).
			Value(&s.phone),
		huh.NewSelect[string]().
			Title("Your language").
			Description("Incoming messages are translated into this language").
			Options(languageOptions...).
			Height(8).
			Value(&s.language),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

// =============================================================================
// OTPState - State for the one-time code verification modal
// =============================================================================

type OTPState struct {
	Phone string
	code  string

	form *huh.Form
}

func (*OTPState) modalState() {}

func (s *OTPState) Title() string { return "Verify Your Number" }

func (s *OTPState) Help() string {
	return "Enter: verify  Esc: go back"
}

func (s *OTPState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sentTo := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginBottom(1).
		Render("We sent a 6-digit code to " + s.Phone)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sentTo, s.form.View(), help)
}

func (s *OTPState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetCode returns the entered verification code.
func (s *OTPState) GetCode() string {
	return strings.TrimSpace(s.code)
}

// NewOTPState creates the verification form for the given phone number.
func NewOTPState(phone string) *OTPState {
	s := &OTPState{Phone: phone}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Code").
			Placeholder("000000").
			CharLimit(6).
			Value(&s.code),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10)

	initHuhForm(s.form)
	return s
}
