// Package modals provides modal dialog state types for the UI.
// Each modal type implements the ModalState interface with its own state
// struct, ensuring type-safe access to modal-specific fields.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// LanguageOption is a selectable interface/translation language.
type LanguageOption struct {
	Code string
	Name string
}

// SupportedLanguages lists the languages offered in the profile and
// settings forms. The translate server accepts many more; these are the
// ones surfaced in the picker.
var SupportedLanguages = []LanguageOption{
	{"en", "English"},
	{"es", "Español"},
	{"fr", "Français"},
	{"de", "Deutsch"},
	{"it", "Italiano"},
	{"pt", "Português"},
	{"nl", "Nederlands"},
	{"ru", "Русский"},
	{"tr", "Türkçe"},
	{"ar", "العربية"},
	{"hi", "हिन्दी"},
	{"zh", "中文"},
	{"ja", "日本語"},
	{"ko", "한국어"},
}
