// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// ReplyBannerHeight is the height of the reply banner above the composer
	ReplyBannerHeight = 1

	// SelectionBarHeight is the height of the selection action bar
	SelectionBarHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth is the smallest terminal width the layout supports
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest terminal height the layout supports
	MinTerminalHeight = 10
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Popover dimensions
const (
	// ContextMenuWidth is the width of the message context menu popover
	ContextMenuWidth = 24

	// ReactionPickerWidth is the width of the quick reaction picker popover
	ReactionPickerWidth = 26
)

// QuickReactions are the emoji offered by the reaction picker, in display order.
var QuickReactions = []string{"👍", "❤️", "😂", "😮", "😢", "🙏"}
