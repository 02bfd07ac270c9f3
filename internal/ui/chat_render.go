package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"talkworld/internal/chat"
	"talkworld/internal/interaction"
)

// Compiled regex patterns for inline markdown
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

// highlightCode applies syntax highlighting to fenced code using chroma.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// wrapText wraps text to the specified width, handling ANSI escape codes.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// renderInlineMarkdown applies inline formatting (bold, inline code, link
// detection) to a single message line.
func renderInlineMarkdown(line string) string {
	// Protect inline code spans from further formatting.
	type codeSpan struct {
		placeholder string
		rendered    string
	}
	var codeSpans []codeSpan
	codeIdx := 0

	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		placeholder := fmt.Sprintf("\x00CODE%d\x00", codeIdx)
		codeSpans = append(codeSpans, codeSpan{
			placeholder: placeholder,
			rendered:    MarkdownInlineCodeStyle.Render(code),
		})
		codeIdx++
		return placeholder
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		text := boldPattern.FindStringSubmatch(match)[1]
		return MarkdownBoldStyle.Render(text)
	})

	// Plain URLs become tappable-looking links.
	for _, url := range interaction.DetectURLs(line) {
		line = strings.Replace(line, url, MarkdownLinkStyle.Render(url), 1)
	}

	for _, cs := range codeSpans {
		line = strings.Replace(line, cs.placeholder, cs.rendered, 1)
	}

	return line
}

// renderMessageBody renders message text with code fences highlighted and
// inline markdown applied, wrapped to width.
func renderMessageBody(text string, width int) string {
	var out []string
	var codeLines []string
	var codeLang string
	inCode := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				highlighted := highlightCode(strings.Join(codeLines, "\n"), codeLang)
				out = append(out, MarkdownCodeBlockStyle.Render(highlighted))
				codeLines = nil
				inCode = false
			} else {
				codeLang = strings.TrimPrefix(trimmed, "```")
				inCode = true
			}
			continue
		}
		if inCode {
			codeLines = append(codeLines, line)
			continue
		}
		out = append(out, wrapText(renderInlineMarkdown(line), width))
	}

	// Unterminated fence: render what we have as code anyway.
	if inCode && len(codeLines) > 0 {
		highlighted := highlightCode(strings.Join(codeLines, "\n"), codeLang)
		out = append(out, MarkdownCodeBlockStyle.Render(highlighted))
	}

	return strings.Join(out, "\n")
}

// refresh re-renders the message list into the viewport and rebuilds the
// line-to-message index used for mouse hits and cursor scrolling.
func (c *Chat) refresh() {
	if c.conversationID == "" {
		return
	}

	wrapWidth := c.viewport.Width() - 4
	if wrapWidth < 10 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	c.lineToMessage = c.lineToMessage[:0]

	for i, msg := range c.messages {
		rendered := c.renderMessage(i, msg, wrapWidth)
		for _, line := range strings.Split(rendered, "\n") {
			sb.WriteString(line)
			sb.WriteString("\n")
			c.lineToMessage = append(c.lineToMessage, i)
		}
		// Blank separator between messages; attribute it to the message
		// above so paragraph selection and click mapping stay sane.
		if i < len(c.messages)-1 {
			sb.WriteString("\n")
			c.lineToMessage = append(c.lineToMessage, i)
		}
	}

	c.viewport.SetContent(strings.TrimRight(sb.String(), "\n"))
}

// renderMessage renders one message: header line (marker, sender, time),
// body, optional original-text subtext, optional reactions line.
func (c *Chat) renderMessage(idx int, msg chat.Message, width int) string {
	outgoing := msg.SenderID == c.localUserID

	marker := "   "
	if c.coordinator.SelectionMode() {
		if c.coordinator.IsSelected(msg.ID) {
			marker = SelectionMarkerStyle.Render("[✓]")
		} else {
			marker = "[ ]"
		}
	} else if c.mode == modeBrowse && idx == c.cursor {
		marker = SelectionMarkerStyle.Render(" ▸ ")
	}

	senderStyle := ChatIncomingStyle
	sender := msg.SenderName
	if outgoing {
		senderStyle = ChatOutgoingStyle
		sender = "You"
	}
	if sender == "" {
		sender = msg.SenderID
	}

	header := marker + " " + senderStyle.Render(sender) + " " +
		ChatTimestampStyle.Render(msg.Timestamp.Format("15:04"))

	lines := []string{header}
	if text := msg.DisplayText(); text != "" {
		body := ChatMessageStyle.Render(renderMessageBody(text, width))
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, "    "+l)
		}
	}

	if msg.Attachment != nil {
		lines = append(lines, "    "+ChatAttachmentStyle.Render(attachmentLabel(*msg.Attachment)))
	}

	// Translated messages keep the original underneath.
	if msg.OriginalText != "" && msg.Text != "" && msg.OriginalText != msg.Text {
		orig := wrapText(msg.OriginalText, width-2)
		for _, l := range strings.Split(orig, "\n") {
			lines = append(lines, "    "+ChatOriginalTextStyle.Render(l))
		}
	}

	if len(msg.Reactions) > 0 {
		lines = append(lines, "    "+ChatReactionStyle.Render(formatReactions(msg.Reactions)))
	}

	return strings.Join(lines, "\n")
}

// formatReactions collapses reactions into "👍 2  ❤️ 1" keeping first-seen
// emoji order.
func formatReactions(reactions []chat.Reaction) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range reactions {
		if counts[r.Emoji] == 0 {
			order = append(order, r.Emoji)
		}
		counts[r.Emoji]++
	}
	parts := make([]string, 0, len(order))
	for _, emoji := range order {
		parts = append(parts, fmt.Sprintf("%s %d", emoji, counts[emoji]))
	}
	return strings.Join(parts, "  ")
}

// attachmentLabel picks an icon for an attachment by media type.
func attachmentLabel(att chat.Attachment) string {
	switch {
	case strings.HasPrefix(att.MimeType, "audio/"):
		return "🎤 " + att.Name
	case strings.HasPrefix(att.MimeType, "image/"):
		return "🖼 " + att.Name
	}
	return "📎 " + att.Name
}

// isVoiceMessage reports whether a message carries an audio attachment.
func isVoiceMessage(m chat.Message) bool {
	return m.Attachment != nil && strings.HasPrefix(m.Attachment.MimeType, "audio/")
}

// renderAttachmentChip shows the staged image above the composer.
func (c *Chat) renderAttachmentChip() string {
	vc := GetViewContext()
	width := vc.InnerWidth(c.width)

	line := ReplySenderStyle.Render(attachmentLabel(*c.pendingAttachment)) + "  " +
		FooterDescStyle.Render("esc to remove")
	return ReplyBannerStyle.Width(width).Render(line)
}

// renderReplyBanner shows who is being replied to above the composer.
func (c *Chat) renderReplyBanner() string {
	draft := c.coordinator.ReplyTo()
	if draft == nil {
		return ""
	}

	vc := GetViewContext()
	width := vc.InnerWidth(c.width)

	label := ReplySenderStyle.Render("↩ " + draft.SenderName)
	snippet := draft.Snippet
	if draft.Attachment != nil && snippet == "" {
		snippet = "📎 " + draft.Attachment.Name
	}
	avail := width - lipgloss.Width(label) - 10
	if avail > 0 {
		snippet = runewidth.Truncate(snippet, avail, "…")
	}
	line := label + " " + ReplySnippetStyle.Render(snippet) + "  " +
		FooterDescStyle.Render("esc to cancel")

	return ReplyBannerStyle.Width(width).Render(line)
}

// renderSelectionBar shows the multi-select count and actions.
func (c *Chat) renderSelectionBar() string {
	vc := GetViewContext()
	width := vc.InnerWidth(c.width)

	count := c.coordinator.SelectionCount()
	noun := "messages"
	if count == 1 {
		noun = "message"
	}
	line := fmt.Sprintf("%d %s selected   y: copy   esc: cancel", count, noun)
	return SelectionBarStyle.Width(width).Render(line)
}

// renderContextMenu renders the message action menu at its popover size.
func (c *Chat) renderContextMenu() string {
	var sb strings.Builder
	for i, item := range contextMenuItems {
		style := PopoverItemStyle
		if i == c.menuIndex {
			style = PopoverSelectedStyle
		}
		sb.WriteString(style.Width(ContextMenuWidth - BorderSize - 2).Render(item))
		if i < len(contextMenuItems)-1 {
			sb.WriteString("\n")
		}
	}
	return PopoverStyle.Render(sb.String())
}

// renderReactionPicker renders the emoji row with the current choice
// highlighted.
func (c *Chat) renderReactionPicker() string {
	parts := make([]string, len(QuickReactions))
	for i, emoji := range QuickReactions {
		if i == c.pickerIndex {
			parts[i] = PopoverSelectedStyle.Render(" " + emoji + " ")
		} else {
			parts[i] = " " + emoji + " "
		}
	}
	return PopoverStyle.Render(strings.Join(parts, ""))
}

// overlayPopovers draws the visible popover on top of the viewport view
// using an ultraviolet screen buffer, anchored near its target message.
func (c *Chat) overlayPopovers(view string) string {
	if c.coordinator == nil || !c.coordinator.AnyPopoverVisible() {
		return view
	}

	width := c.viewport.Width()
	height := c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	var popover string
	var anchor interaction.PopoverState
	if menu := c.coordinator.ContextMenu(); menu.Visible {
		popover = c.renderContextMenu()
		anchor = menu
	} else {
		popover = c.renderReactionPicker()
		anchor = c.coordinator.QuickReactions()
	}

	popWidth := lipgloss.Width(popover)
	popHeight := lipgloss.Height(popover)

	x := anchor.X
	y := anchor.Y
	if x+popWidth > width {
		x = width - popWidth
	}
	if y+popHeight > height {
		y = height - popHeight
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)
	uv.NewStyledString(popover).Draw(scr, uv.Rect(x, y, popWidth, popHeight))

	return scr.Render()
}
