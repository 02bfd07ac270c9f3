// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"talkworld/internal/logger"
)

const maxPreviewLen = 120

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	// Use empty string for icon - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// MessageReceived notifies about a new message in an inactive
// conversation. Long previews are truncated.
func MessageReceived(sender, preview string) error {
	return Send(sender, Preview(preview))
}

// Preview trims a message body down to notification length.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPreviewLen {
		return text
	}
	return string(runes[:maxPreviewLen-1]) + "…"
}
