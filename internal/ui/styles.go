package ui

import (
	"charm.land/lipgloss/v2"

	"talkworld/internal/ui/modals"
)

// Color palette - derived from the active theme
var (
	ColorPrimary     = lipgloss.Color(BuiltinThemes[DefaultTheme].Primary)
	ColorSecondary   = lipgloss.Color(BuiltinThemes[DefaultTheme].Secondary)
	ColorMuted       = lipgloss.Color(BuiltinThemes[DefaultTheme].TextMuted)
	ColorBorder      = lipgloss.Color(BuiltinThemes[DefaultTheme].Border)
	ColorBorderFocus = lipgloss.Color(BuiltinThemes[DefaultTheme].GetBorderFocus())
	ColorBg          = lipgloss.Color(BuiltinThemes[DefaultTheme].Bg)
	ColorText        = lipgloss.Color(BuiltinThemes[DefaultTheme].Text)
	ColorTextMuted   = lipgloss.Color(BuiltinThemes[DefaultTheme].TextMuted)
	ColorTextInverse = lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse)
	ColorOutgoing    = lipgloss.Color(BuiltinThemes[DefaultTheme].Outgoing)
	ColorIncoming    = lipgloss.Color(BuiltinThemes[DefaultTheme].Incoming)
	ColorWarning     = lipgloss.Color(BuiltinThemes[DefaultTheme].Warning)
	ColorInfo        = lipgloss.Color(BuiltinThemes[DefaultTheme].Info)
	ColorError       = lipgloss.Color(BuiltinThemes[DefaultTheme].Error)
	ColorSuccess     = lipgloss.Color(BuiltinThemes[DefaultTheme].Success)
	ColorOnline      = lipgloss.Color(BuiltinThemes[DefaultTheme].Online)
	ColorUnread      = lipgloss.Color(BuiltinThemes[DefaultTheme].Unread)
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text)).
				Bold(true).
				Padding(0, 1)

	SidebarUnreadStyle = lipgloss.NewStyle().
				Background(ColorUnread).
				Foreground(ColorTextInverse).
				Bold(true).
				Padding(0, 1)

	SidebarTypingStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	SidebarOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorOnline)
)

// Chat styles
var (
	ChatOutgoingStyle = lipgloss.NewStyle().
				Foreground(ColorOutgoing).
				Bold(true)

	ChatIncomingStyle = lipgloss.NewStyle().
				Foreground(ColorIncoming).
				Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ChatReactionStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ChatOriginalTextStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	ChatAttachmentStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Selection mode styles
var (
	SelectionMarkerStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	SelectionBarStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(ColorTextInverse).
				Bold(true).
				Padding(0, 1)
)

// Reply banner styles
var (
	ReplyBannerStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorPrimary).
				PaddingLeft(1)

	ReplySenderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	ReplySnippetStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Popover styles (context menu, reaction picker)
var (
	PopoverStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	PopoverItemStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	PopoverSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(ColorText).
				Bold(true)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Markdown rendering styles (updated by regenerateStyles)
var (
	MarkdownBoldStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCode)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	MarkdownCodeBlockStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	MarkdownLinkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownLink)).
				Underline(true)
)

// Text selection style (updated by regenerateStyles)
var (
	TextSelectionStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionBg)).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionFg))

	// TextSelectionFlashStyle is used briefly when text is copied to indicate success
	TextSelectionFlashStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].Success)).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse))
)

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorOutgoing = lipgloss.Color(t.Outgoing)
	ColorIncoming = lipgloss.Color(t.Incoming)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorOnline = lipgloss.Color(t.Online)
	ColorUnread = lipgloss.Color(t.Unread)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	SidebarItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	SidebarUnreadStyle = lipgloss.NewStyle().
		Background(ColorUnread).
		Foreground(ColorTextInverse).
		Bold(true).
		Padding(0, 1)

	SidebarTypingStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	SidebarOnlineStyle = lipgloss.NewStyle().
		Foreground(ColorOnline)

	ChatOutgoingStyle = lipgloss.NewStyle().
		Foreground(ColorOutgoing).
		Bold(true)

	ChatIncomingStyle = lipgloss.NewStyle().
		Foreground(ColorIncoming).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatReactionStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatOriginalTextStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ChatAttachmentStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	SelectionMarkerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	SelectionBarStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorTextInverse).
		Bold(true).
		Padding(0, 1)

	ReplyBannerStyle = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)

	ReplySenderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ReplySnippetStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PopoverStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	PopoverItemStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	PopoverSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(ColorText).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownCodeBlockStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)

	TextSelectionStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.TextSelectionBg)).
		Foreground(lipgloss.Color(t.TextSelectionFg))

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.Success)).
		Foreground(lipgloss.Color(t.TextInverse))
}

// RefreshModalStyles pushes the current palette into the modals package.
// Must be called at startup and after every theme change.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, SidebarItemStyle, SidebarSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
