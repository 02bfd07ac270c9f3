package ui

import (
	"encoding/base64"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"talkworld/internal/chat"
	"talkworld/internal/interaction"
	"talkworld/internal/keys"
)

// SendMessageMsg is sent when the user submits the composer.
type SendMessageMsg struct {
	ConversationID string
	Text           string
	ReplyTo        *interaction.ReplyDraft
	Attachment     *chat.Attachment
}

// ReactionCloseMsg redelivers a delayed-close token for the reaction
// picker after the confirmation delay.
type ReactionCloseMsg struct {
	ConversationID string
	Token          interaction.CloseToken
}

// SpeakMessageMsg asks the app to synthesize the cursor message aloud.
type SpeakMessageMsg struct {
	Text     string
	Language string
}

// TranscribeMessageMsg asks the app to transcribe a voice message.
type TranscribeMessageMsg struct {
	ConversationID string
	Message        chat.Message
}

// chatMode distinguishes the composer from message browsing.
type chatMode int

const (
	modeCompose chatMode = iota
	modeBrowse
)

// Chat is the conversation pane: message history viewport on top, reply
// banner and composer below. Message gestures (select, menu, react) are
// routed through the interaction coordinator for the open conversation.
type Chat struct {
	viewport viewport.Model
	textarea textarea.Model

	conversationID string
	localUserID    string
	messages       []chat.Message
	coordinator    *interaction.Coordinator

	mode   chatMode
	cursor int // message index for browse-mode gestures

	// Image staged from a clipboard paste, sent with the next submit.
	pendingAttachment *chat.Attachment

	// Popover list positions
	menuIndex   int
	pickerIndex int

	width  int
	height int

	// Maps rendered content lines to message indexes, rebuilt on render.
	lineToMessage []int

	// Text selection state (mouse), viewport-relative coordinates
	selectionStartCol   int
	selectionStartLine  int
	selectionEndCol     int
	selectionEndLine    int
	selectionActive     bool
	selectionFlashFrame int

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int
}

// contextMenuItems are the actions offered by the message context menu.
var contextMenuItems = []string{"Reply", "Copy", "Select", "Speak"}

// NewChat creates the conversation pane.
func NewChat() *Chat {
	ta := textarea.New()
	ta.Placeholder = "Type a message…"
	ta.SetHeight(TextareaHeight)
	ta.ShowLineNumbers = false
	ta.Focus()

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Chat{
		viewport:            vp,
		textarea:            ta,
		cursor:              -1,
		selectionStartCol:   -1,
		selectionStartLine:  -1,
		selectionEndCol:     -1,
		selectionEndLine:    -1,
		selectionFlashFrame: -1,
	}
}

// SetConversation points the pane at a conversation. The coordinator is
// the per-conversation interaction state owned by the app layer.
func (c *Chat) SetConversation(conversationID, localUserID string, coordinator *interaction.Coordinator) {
	c.conversationID = conversationID
	c.localUserID = localUserID
	c.coordinator = coordinator
	c.mode = modeCompose
	c.cursor = -1
	c.pendingAttachment = nil
	c.SelectionClear()
	c.textarea.Reset()
	c.refresh()
	c.viewport.GotoBottom()
}

// ConversationID returns the open conversation's ID.
func (c *Chat) ConversationID() string {
	return c.conversationID
}

// SetMessages replaces the rendered message list.
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = messages
	if c.cursor >= len(messages) {
		c.cursor = len(messages) - 1
	}
	c.refresh()
	if c.mode == modeCompose {
		c.viewport.GotoBottom()
	}
}

// Messages returns the current message list.
func (c *Chat) Messages() []chat.Message {
	return c.messages
}

// AttachImage stages a pasted image as the next send's attachment. The
// image travels inline as a data URL; the backend re-hosts it on receipt.
func (c *Chat) AttachImage(data []byte, mediaType string) {
	c.pendingAttachment = &chat.Attachment{
		URL:      "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Name:     "pasted-" + time.Now().Format("150405") + ".png",
		MimeType: mediaType,
	}
}

// HasPendingAttachment reports whether an image is staged on the composer.
func (c *Chat) HasPendingAttachment() bool {
	return c.pendingAttachment != nil
}

// SetSize sets the pane dimensions (including borders).
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	vc := GetViewContext()
	innerWidth := vc.InnerWidth(width)

	viewportHeight := height - InputTotalHeight - BorderSize
	if c.replyBannerVisible() {
		viewportHeight -= ReplyBannerHeight
	}
	if c.selectionBarVisible() {
		viewportHeight -= SelectionBarHeight
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.textarea.SetWidth(innerWidth - BorderSize)
	c.refresh()
}

// Focus focuses the composer.
func (c *Chat) Focus() {
	c.textarea.Focus()
}

// Blur removes focus from the composer.
func (c *Chat) Blur() {
	c.textarea.Blur()
}

// Browsing reports whether the pane is in message-browse mode.
func (c *Chat) Browsing() bool {
	return c.mode == modeBrowse
}

// cursorMessage returns the message under the browse cursor.
func (c *Chat) cursorMessage() *chat.Message {
	if c.cursor < 0 || c.cursor >= len(c.messages) {
		return nil
	}
	return &c.messages[c.cursor]
}

// Update handles input while the chat pane has focus.
func (c *Chat) Update(msg tea.Msg) tea.Cmd {
	if c.coordinator == nil {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return c.handleKey(msg)
	case tea.MouseClickMsg:
		// Coordinates arrive pre-adjusted to the pane; shift inside
		// the panel border.
		return c.handleMouseButton(msg.Button, msg.X-1, msg.Y-1)
	case tea.MouseMotionMsg:
		if c.selectionActive {
			c.EndSelection(msg.X-1, msg.Y-1)
		}
		return nil
	case tea.MouseReleaseMsg:
		if c.selectionActive {
			c.SelectionStop()
			return c.CopySelectedText()
		}
		return nil
	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return cmd
	case SelectionFlashMsg:
		return c.advanceSelectionFlash()
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

func (c *Chat) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	// Popovers swallow all keys while visible.
	if c.coordinator.AnyPopoverVisible() {
		return c.handlePopoverKey(key)
	}

	switch key {
	case keys.Escape:
		return c.handleEscape()
	case keys.PgUp, keys.PgDown, "home", "end":
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return cmd
	}

	if c.mode == modeBrowse {
		return c.handleBrowseKey(key)
	}
	return c.handleComposeKey(msg, key)
}

// handleEscape walks the dismissal order: popover, text selection,
// message selection, reply, pending attachment, then browse mode itself.
func (c *Chat) handleEscape() tea.Cmd {
	switch {
	case c.coordinator.AnyPopoverVisible():
		c.coordinator.DismissPopovers()
	case c.HasTextSelection():
		c.SelectionClear()
	case c.coordinator.SelectionMode():
		c.coordinator.ClearSelection()
	case c.coordinator.ReplyTo() != nil:
		c.coordinator.ClearReply()
	case c.pendingAttachment != nil:
		c.pendingAttachment = nil
	case c.mode == modeBrowse:
		c.mode = modeCompose
		c.textarea.Focus()
	}
	c.refresh()
	return nil
}

func (c *Chat) handleComposeKey(msg tea.KeyPressMsg, key string) tea.Cmd {
	switch key {
	case keys.Enter:
		text := c.textarea.Value()
		attachment := c.pendingAttachment
		if text == "" && attachment == nil {
			return nil
		}
		draft := c.coordinator.ReplyTo()
		c.coordinator.ClearReply()
		c.textarea.Reset()
		c.pendingAttachment = nil
		conversationID := c.conversationID
		c.refresh()
		return func() tea.Msg {
			return SendMessageMsg{ConversationID: conversationID, Text: text, ReplyTo: draft, Attachment: attachment}
		}
	case keys.Up:
		// An empty composer hands the up key over to message browsing.
		if c.textarea.Value() == "" {
			c.enterBrowse()
			return nil
		}
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

func (c *Chat) enterBrowse() {
	c.mode = modeBrowse
	c.textarea.Blur()
	if c.cursor < 0 || c.cursor >= len(c.messages) {
		c.cursor = len(c.messages) - 1
	}
	c.refresh()
}

func (c *Chat) handleBrowseKey(key string) tea.Cmd {
	switch key {
	case keys.Up, "k":
		if c.cursor > 0 {
			c.cursor--
			c.scrollCursorIntoView()
		}
	case keys.Down, "j":
		if c.cursor < len(c.messages)-1 {
			c.cursor++
			c.scrollCursorIntoView()
		} else {
			// Past the newest message: back to the composer.
			c.mode = modeCompose
			c.textarea.Focus()
		}
	case keys.Space:
		if m := c.cursorMessage(); m != nil {
			c.coordinator.ToggleMessageSelection(m.ID)
		}
	case "y":
		c.coordinator.HandleCopySelected(c.messages)
	case "o":
		if m := c.cursorMessage(); m != nil {
			x, y := c.cursorAnchor()
			c.coordinator.ShowContextMenu(m.ID, x, y)
			c.menuIndex = 0
		}
	case "e":
		if m := c.cursorMessage(); m != nil {
			x, y := c.cursorAnchor()
			c.coordinator.ShowQuickReactions(m.ID, x, y)
			c.pickerIndex = 0
		}
	case "t":
		if m := c.cursorMessage(); m != nil && isVoiceMessage(*m) {
			target := *m
			conversationID := c.conversationID
			c.refresh()
			return func() tea.Msg {
				return TranscribeMessageMsg{ConversationID: conversationID, Message: target}
			}
		}
	}
	c.refresh()
	return nil
}

func (c *Chat) handlePopoverKey(key string) tea.Cmd {
	if key == keys.Escape {
		c.coordinator.DismissPopovers()
		c.refresh()
		return nil
	}

	if menu := c.coordinator.ContextMenu(); menu.Visible {
		return c.handleMenuKey(key)
	}
	if picker := c.coordinator.QuickReactions(); picker.Visible {
		return c.handlePickerKey(key, picker)
	}
	return nil
}

func (c *Chat) handleMenuKey(key string) tea.Cmd {
	switch key {
	case keys.Up, "k":
		if c.menuIndex > 0 {
			c.menuIndex--
		}
	case keys.Down, "j":
		if c.menuIndex < len(contextMenuItems)-1 {
			c.menuIndex++
		}
	case keys.Enter:
		menu := c.coordinator.ContextMenu()
		cmd := c.invokeMenuItem(menu.TargetID)
		c.refresh()
		return cmd
	}
	c.refresh()
	return nil
}

func (c *Chat) invokeMenuItem(targetID string) tea.Cmd {
	switch contextMenuItems[c.menuIndex] {
	case "Reply":
		c.coordinator.HandleReply(targetID, c.messages)
		c.mode = modeCompose
		c.textarea.Focus()
	case "Copy":
		c.coordinator.HandleCopy(targetID, c.messages)
	case "Select":
		c.coordinator.ToggleMessageSelection(targetID)
		c.coordinator.HideContextMenu()
	case "Speak":
		c.coordinator.HideContextMenu()
		if m, ok := findByID(targetID, c.messages); ok {
			text := m.DisplayText()
			lang := m.SourceLanguage
			return func() tea.Msg {
				return SpeakMessageMsg{Text: text, Language: lang}
			}
		}
	}
	return nil
}

func (c *Chat) handlePickerKey(key string, picker interaction.PopoverState) tea.Cmd {
	switch key {
	case "left", "h":
		if c.pickerIndex > 0 {
			c.pickerIndex--
		}
	case "right", "l":
		if c.pickerIndex < len(QuickReactions)-1 {
			c.pickerIndex++
		}
	case keys.Enter:
		token := c.coordinator.React(picker.TargetID, QuickReactions[c.pickerIndex])
		conversationID := c.conversationID
		c.refresh()
		return tea.Tick(interaction.ReactionCloseDelay, func(time.Time) tea.Msg {
			return ReactionCloseMsg{ConversationID: conversationID, Token: token}
		})
	}
	c.refresh()
	return nil
}

// ApplyDelayedClose forwards a reaction-picker close token to the
// coordinator and re-renders.
func (c *Chat) ApplyDelayedClose(token interaction.CloseToken) {
	if c.coordinator == nil {
		return
	}
	c.coordinator.ApplyDelayedClose(token)
	c.refresh()
}

func (c *Chat) handleMouseButton(button tea.MouseButton, x, y int) tea.Cmd {
	switch button {
	case tea.MouseRight:
		if idx, ok := c.messageAt(y); ok {
			c.cursor = idx
			c.coordinator.ShowContextMenu(c.messages[idx].ID, x, y)
			c.menuIndex = 0
			c.refresh()
		}
		return nil
	case tea.MouseLeft:
		if c.coordinator.AnyPopoverVisible() {
			// Click outside dismisses popovers.
			c.coordinator.DismissPopovers()
			c.refresh()
			return nil
		}
		return c.handleMouseClick(x, y)
	}
	return nil
}

// messageAt maps a viewport-relative row to a message index.
func (c *Chat) messageAt(y int) (int, bool) {
	line := c.viewport.YOffset() + y
	if line < 0 || line >= len(c.lineToMessage) {
		return 0, false
	}
	idx := c.lineToMessage[line]
	if idx < 0 || idx >= len(c.messages) {
		return 0, false
	}
	return idx, true
}

// cursorAnchor returns a viewport-relative anchor next to the cursor
// message for popover placement.
func (c *Chat) cursorAnchor() (x, y int) {
	for line, idx := range c.lineToMessage {
		if idx == c.cursor {
			return 2, line - c.viewport.YOffset() + 1
		}
	}
	return 2, 1
}

func (c *Chat) scrollCursorIntoView() {
	for line, idx := range c.lineToMessage {
		if idx == c.cursor {
			if line < c.viewport.YOffset() {
				c.viewport.SetYOffset(line)
			} else if line >= c.viewport.YOffset()+c.viewport.Height() {
				c.viewport.SetYOffset(line - c.viewport.Height() + 1)
			}
			return
		}
	}
}

func (c *Chat) replyBannerVisible() bool {
	return c.coordinator != nil && c.coordinator.ReplyTo() != nil
}

func (c *Chat) selectionBarVisible() bool {
	return c.coordinator != nil && c.coordinator.SelectionMode()
}

// View renders the chat pane (without the outer panel border).
func (c *Chat) View(focused bool) string {
	if c.conversationID == "" {
		vc := GetViewContext()
		empty := StatusLoadingStyle.Render("Select a chat to start messaging")
		return lipgloss.Place(vc.InnerWidth(c.width), vc.InnerHeight(c.height),
			lipgloss.Center, lipgloss.Center, empty)
	}

	view := c.viewport.View()
	view = c.selectionView(view)
	view = c.overlayPopovers(view)

	parts := []string{view}

	if c.selectionBarVisible() {
		parts = append(parts, c.renderSelectionBar())
	}
	if c.replyBannerVisible() {
		parts = append(parts, c.renderReplyBanner())
	}
	if c.pendingAttachment != nil {
		parts = append(parts, c.renderAttachmentChip())
	}

	inputStyle := ChatInputStyle
	if focused && c.mode == modeCompose {
		inputStyle = ChatInputFocusedStyle
	}
	parts = append(parts, inputStyle.Render(c.textarea.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func findByID(id string, messages []chat.Message) (chat.Message, bool) {
	for _, m := range messages {
		if m.ID == id {
			return m, true
		}
	}
	return chat.Message{}, false
}
