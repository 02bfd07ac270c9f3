// Package interaction owns the transient, per-conversation interaction
// state for a message list: multi-select, the reply draft, the message
// context menu, and the quick-reaction picker.
//
// One Coordinator is created per open conversation and discarded when the
// conversation closes, so interaction state never leaks across
// conversations. All intents are invoked synchronously from the UI event
// loop; the Coordinator performs no I/O of its own beyond notifying the
// injected collaborators.
//
// The context menu and reaction picker are mutually exclusive: opening
// either closes the other. Every lookup by message ID degrades to a silent
// no-op when the message is gone — a message removed from view mid-gesture
// is a benign race, not a fault — but unconditional post-conditions
// (closing the menu, clearing the selection) still apply.
package interaction

import (
	"strings"
	"time"

	"talkworld/internal/chat"
)

// ReactionCloseDelay is how long the reaction picker stays visible after a
// reaction is chosen, as a brief visual confirmation. Hosts without a
// rendering layer may apply the close immediately.
const ReactionCloseDelay = 200 * time.Millisecond

// Clipboard is the system clipboard collaborator. Writes are best-effort
// and fire-and-forget.
type Clipboard interface {
	WriteText(text string)
}

// Reactions is the message-reaction collaborator. Sends are
// fire-and-forget; delivery failures are the host's concern.
type Reactions interface {
	SendReaction(messageID, emoji string)
}

// PopoverState describes one of the two anchored popovers (context menu or
// reaction picker). TargetID and the anchor are retained after a close;
// Visible is the sole gate.
type PopoverState struct {
	TargetID string
	X, Y     int
	Visible  bool
}

// CloseToken identifies a scheduled delayed close of the reaction picker.
// The generation ties the token to the picker opening that produced it, so
// a stale timer never closes a picker that was reopened for another
// message in the meantime.
type CloseToken struct {
	TargetID   string
	generation int
}

// Coordinator composes the four interaction state slices and exposes the
// intent API. Zero value is not usable; construct with New.
type Coordinator struct {
	selection map[string]struct{}
	reply     *ReplyDraft
	menu      PopoverState
	picker    PopoverState
	pickerGen int // bumped on every picker open; guards delayed closes

	clipboard Clipboard
	reactions Reactions
}

// New creates a Coordinator with all slices empty.
func New(clipboard Clipboard, reactions Reactions) *Coordinator {
	return &Coordinator{
		selection: make(map[string]struct{}),
		clipboard: clipboard,
		reactions: reactions,
	}
}

// Selection

// ToggleMessageSelection adds the message to the selection if absent,
// removes it if present. Unknown IDs are fine; the selection is just a set
// of identifiers.
func (c *Coordinator) ToggleMessageSelection(id string) {
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
		return
	}
	c.selection[id] = struct{}{}
}

// ClearSelection empties the selection set.
func (c *Coordinator) ClearSelection() {
	clear(c.selection)
}

// IsSelected reports whether a message is in the selection set.
func (c *Coordinator) IsSelected(id string) bool {
	_, ok := c.selection[id]
	return ok
}

// SelectionMode reports whether any message is selected.
func (c *Coordinator) SelectionMode() bool {
	return len(c.selection) > 0
}

// SelectionCount returns the number of selected messages.
func (c *Coordinator) SelectionCount() int {
	return len(c.selection)
}

// Popovers

// ShowContextMenu opens the context menu for a message at the given
// anchor, closing the reaction picker if it is open.
func (c *Coordinator) ShowContextMenu(id string, x, y int) {
	c.picker.Visible = false
	c.menu = PopoverState{TargetID: id, X: x, Y: y, Visible: true}
}

// HideContextMenu closes the context menu. Idempotent.
func (c *Coordinator) HideContextMenu() {
	c.menu.Visible = false
}

// ShowQuickReactions opens the reaction picker for a message at the given
// anchor, closing the context menu if it is open. Any pending delayed
// close from a previous opening is invalidated.
func (c *Coordinator) ShowQuickReactions(id string, x, y int) {
	c.menu.Visible = false
	c.pickerGen++
	c.picker = PopoverState{TargetID: id, X: x, Y: y, Visible: true}
}

// HideQuickReactions closes the reaction picker. Idempotent.
func (c *Coordinator) HideQuickReactions() {
	c.picker.Visible = false
}

// ContextMenu returns the context menu state.
func (c *Coordinator) ContextMenu() PopoverState {
	return c.menu
}

// QuickReactions returns the reaction picker state.
func (c *Coordinator) QuickReactions() PopoverState {
	return c.picker
}

// AnyPopoverVisible reports whether either popover is open. The host uses
// this to scope its global escape / click-outside handling: dismissal
// events are routed here only while a popover is visible.
func (c *Coordinator) AnyPopoverVisible() bool {
	return c.menu.Visible || c.picker.Visible
}

// DismissPopovers closes both popovers (escape key, click outside).
func (c *Coordinator) DismissPopovers() {
	c.menu.Visible = false
	c.picker.Visible = false
}

// Reply

// SetReplyToMessage stages a reply draft snapshotted from the message,
// replacing any previous draft. Passing nil clears the draft.
func (c *Coordinator) SetReplyToMessage(msg *chat.Message) {
	if msg == nil {
		c.reply = nil
		return
	}
	draft := newReplyDraft(*msg)
	c.reply = &draft
}

// ClearReply drops the reply draft unconditionally.
func (c *Coordinator) ClearReply() {
	c.reply = nil
}

// ReplyTo returns a copy of the current reply draft, or nil when no reply
// is staged.
func (c *Coordinator) ReplyTo() *ReplyDraft {
	if c.reply == nil {
		return nil
	}
	draft := *c.reply
	return &draft
}

// Context menu actions

// HandleReply looks the message up in the supplied list and stages a reply
// draft for it. The context menu closes whether or not the message is
// found.
func (c *Coordinator) HandleReply(id string, messages []chat.Message) {
	if msg, ok := findMessage(id, messages); ok {
		c.SetReplyToMessage(&msg)
	}
	c.menu.Visible = false
}

// HandleCopy copies the message's text to the clipboard. Missing messages
// and empty text skip the write; the context menu closes regardless.
func (c *Coordinator) HandleCopy(id string, messages []chat.Message) {
	if msg, ok := findMessage(id, messages); ok {
		if text := msg.DisplayText(); text != "" {
			c.clipboard.WriteText(text)
		}
	}
	c.menu.Visible = false
}

// HandleCopySelected concatenates the text of every selected message in
// the order of the supplied list (not selection order), separated by blank
// lines, and writes the result to the clipboard when non-empty. The
// selection is cleared afterward in every case.
func (c *Coordinator) HandleCopySelected(messages []chat.Message) {
	var parts []string
	for _, msg := range messages {
		if !c.IsSelected(msg.ID) {
			continue
		}
		if text := msg.DisplayText(); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		c.clipboard.WriteText(strings.Join(parts, "\n\n"))
	}
	c.ClearSelection()
}

// Reactions

// React sends a reaction for the message and returns a token the host
// should redeliver via ApplyDelayedClose after ReactionCloseDelay, keeping
// the picker briefly visible as feedback. Non-visual hosts may apply the
// token immediately.
func (c *Coordinator) React(id, emoji string) CloseToken {
	c.reactions.SendReaction(id, emoji)
	return CloseToken{TargetID: id, generation: c.pickerGen}
}

// ApplyDelayedClose closes the reaction picker if it is still showing the
// same target from the same opening that produced the token. A token made
// stale by a reopen or an explicit hide is a no-op.
func (c *Coordinator) ApplyDelayedClose(tok CloseToken) {
	if !c.picker.Visible {
		return
	}
	if tok.generation != c.pickerGen || tok.TargetID != c.picker.TargetID {
		return
	}
	c.picker.Visible = false
}

// Reset clears all four state slices (conversation closed or torn down).
func (c *Coordinator) Reset() {
	clear(c.selection)
	c.reply = nil
	c.menu = PopoverState{}
	c.picker = PopoverState{}
	c.pickerGen++
}

// findMessage returns the message with the given ID from the list.
func findMessage(id string, messages []chat.Message) (chat.Message, bool) {
	for _, msg := range messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return chat.Message{}, false
}
