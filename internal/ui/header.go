package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width            int
	conversationName string
	status           string // connection status, e.g. "offline"
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversationName sets the active conversation name to display
func (h *Header) SetConversationName(name string) {
	h.conversationName = name
}

// SetStatus sets the connection status shown on the right. Empty means
// connected and nothing is displayed.
func (h *Header) SetStatus(status string) {
	h.status = status
}

// View renders the header
func (h *Header) View() string {
	titleText := " talkworld"
	var rightText string
	if h.conversationName != "" {
		rightText = h.conversationName
	}
	if h.status != "" {
		if rightText != "" {
			rightText += " "
		}
		rightText += "[" + h.status + "]"
	}
	if rightText != "" {
		rightText += " "
	}

	paddingLen := h.width - len(titleText) - len(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent)
}

// parseHexColor parses a hex color string (e.g., "#0D9488") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background
// fading from the primary color into the main background.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	statusColor := lipgloss.Color(theme.TextMuted)

	// Mute the connection-status portion of the text
	statusStart := -1
	if h.status != "" {
		statusStart = strings.Index(content, "["+h.status+"]")
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < len(" talkworld")) // Bold for the app title

		if statusStart >= 0 && i >= statusStart {
			style = style.Foreground(statusColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
