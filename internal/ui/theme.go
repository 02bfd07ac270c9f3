// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI, allowing users
// to customize the visual appearance of Talk World.
package ui

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for info, sender names)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Outgoing string // Sender label for the local user's messages
	Incoming string // Sender label for other participants' messages
	Warning  string
	Error    string
	Info     string
	Success  string
	Online   string // Presence dot for online contacts
	Unread   string // Unread badge background

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownCode   string // Inline code
	MarkdownCodeBg string // Code background
	MarkdownLink   string // Links and detected URLs

	// Text selection colors
	TextSelectionBg string
	TextSelectionFg string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeTeal    ThemeName = "teal"
	ThemeNord    ThemeName = "nord"
	ThemeDracula ThemeName = "dracula"
	ThemeLight   ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeTeal

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeTeal: {
		Name:            "Teal",
		Primary:         "#0D9488",
		Secondary:       "#38BDF8",
		Bg:              "#111B21",
		Text:            "#E9EDEF",
		TextMuted:       "#8696A0",
		TextInverse:     "#111B21",
		Outgoing:        "#4ADE80",
		Incoming:        "#38BDF8",
		Warning:         "#F59E0B",
		Error:           "#EF4444",
		Info:            "#38BDF8",
		Success:         "#22C55E",
		Online:          "#22C55E",
		Unread:          "#0D9488",
		Border:          "#2A3942",
		MarkdownCode:    "#5EEAD4",
		MarkdownCodeBg:  "#1C2A30",
		MarkdownLink:    "#53BDEB",
		TextSelectionBg: "#134E4A",
		TextSelectionFg: "#E9EDEF",
	},
	ThemeNord: {
		Name:            "Nord",
		Primary:         "#88C0D0",
		Secondary:       "#81A1C1",
		Bg:              "#2E3440",
		Text:            "#ECEFF4",
		TextMuted:       "#D8DEE9",
		TextInverse:     "#2E3440",
		Outgoing:        "#A3BE8C",
		Incoming:        "#88C0D0",
		Warning:         "#EBCB8B",
		Error:           "#BF616A",
		Info:            "#81A1C1",
		Success:         "#A3BE8C",
		Online:          "#A3BE8C",
		Unread:          "#5E81AC",
		Border:          "#4C566A",
		MarkdownCode:    "#A3BE8C",
		MarkdownCodeBg:  "#242933",
		MarkdownLink:    "#88C0D0",
		TextSelectionBg: "#434C5E",
		TextSelectionFg: "#ECEFF4",
	},
	ThemeDracula: {
		Name:            "Dracula",
		Primary:         "#BD93F9",
		Secondary:       "#8BE9FD",
		Bg:              "#282A36",
		Text:            "#F8F8F2",
		TextMuted:       "#6272A4",
		TextInverse:     "#282A36",
		Outgoing:        "#50FA7B",
		Incoming:        "#8BE9FD",
		Warning:         "#FFB86C",
		Error:           "#FF5555",
		Info:            "#8BE9FD",
		Success:         "#50FA7B",
		Online:          "#50FA7B",
		Unread:          "#BD93F9",
		Border:          "#44475A",
		MarkdownCode:    "#50FA7B",
		MarkdownCodeBg:  "#21222C",
		MarkdownLink:    "#8BE9FD",
		TextSelectionBg: "#44475A",
		TextSelectionFg: "#F8F8F2",
	},
	ThemeLight: {
		Name:            "Light",
		Primary:         "#0F766E",
		Secondary:       "#0369A1",
		Bg:              "#FFFFFF",
		BgSelected:      "#CCFBF1",
		Text:            "#1F2937",
		TextMuted:       "#6B7280",
		TextInverse:     "#FFFFFF",
		Outgoing:        "#15803D",
		Incoming:        "#0369A1",
		Warning:         "#B45309",
		Error:           "#DC2626",
		Info:            "#0369A1",
		Success:         "#15803D",
		Online:          "#15803D",
		Unread:          "#0F766E",
		Border:          "#D1D5DB",
		MarkdownCode:    "#0F766E",
		MarkdownCodeBg:  "#F3F4F6",
		MarkdownLink:    "#0369A1",
		TextSelectionBg: "#99F6E4",
		TextSelectionFg: "#1F2937",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeTeal,
		ThemeNord,
		ThemeDracula,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to Teal if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}
