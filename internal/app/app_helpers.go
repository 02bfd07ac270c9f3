package app

import (
	"strings"
	"time"

	"talkworld/internal/chat"
	"talkworld/internal/logger"
	"talkworld/internal/ui"
)

// quoteSnippetMax caps how much of a replied-to message is quoted.
const quoteSnippetMax = 280

// buildOutgoingMessage assembles the chat.Message for a composer send.
// A staged reply draft becomes a leading quote block, WhatsApp style:
//
//	> Ana: see you at eight
//
//	sounds good
func buildOutgoingMessage(msg ui.SendMessageMsg, senderID, senderName, language string) chat.Message {
	text := msg.Text
	if msg.ReplyTo != nil {
		text = formatQuote(msg.ReplyTo.SenderName, msg.ReplyTo.Snippet) + "\n\n" + text
	}
	return chat.Message{
		ConversationID: msg.ConversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		Text:           text,
		SourceLanguage: language,
		Attachment:     msg.Attachment,
		Timestamp:      time.Now(),
	}
}

// handleImagePaste reads an image from the clipboard and stages it on the
// composer. Non-image clipboard content is ignored so text paste keeps
// working.
func (m *Model) handleImagePaste() {
	img, err := m.readImage()
	if err != nil {
		logger.Debug("image paste: clipboard read failed: %v", err)
		return
	}
	if img == nil {
		return
	}
	if err := img.Validate(); err != nil {
		logger.Warn("image paste rejected: %v", err)
		return
	}
	m.chat.AttachImage(img.Data, img.MediaType)
}

// formatQuote renders quoted text with "> " line prefixes, truncating
// long originals.
func formatQuote(senderName, quoted string) string {
	if runes := []rune(quoted); len(runes) > quoteSnippetMax {
		quoted = string(runes[:quoteSnippetMax]) + "…"
	}
	lines := strings.Split(quoted, "\n")
	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString("> ")
		if i == 0 && senderName != "" {
			sb.WriteString(senderName)
			sb.WriteString(": ")
		}
		sb.WriteString(line)
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
