package app

import (
	"talkworld/internal/clipboard"
	"talkworld/internal/logger"
)

// clipboardWriter adapts the native clipboard to the interaction
// coordinator's collaborator interface. Write failures are logged and
// otherwise swallowed; the OSC 52 path in the chat panel still runs.
type clipboardWriter struct{}

func (clipboardWriter) WriteText(text string) {
	if err := clipboard.WriteText(text); err != nil {
		logger.Warn("clipboard write failed: %v", err)
	}
}

// reactionSender forwards reactions to the backend. Sends are
// fire-and-forget; the authoritative reaction comes back as a realtime
// event.
type reactionSender struct {
	backend Backend
}

func (r reactionSender) SendReaction(messageID, emoji string) {
	if r.backend == nil {
		return
	}
	r.backend.SendReaction(messageID, emoji)
}
