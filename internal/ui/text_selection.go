// Text selection coordinate system
//
// Mouse events arrive pre-adjusted to chat-panel coordinates; the chat
// Update method subtracts the 1-cell panel border, so all selection
// coordinates here are relative to the viewport content area ((0,0) is
// the top-left visible cell).
//
// ANSI escape codes are stripped before text extraction so coordinates
// align with visible character positions rather than raw byte offsets.
package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"talkworld/internal/clipboard"
	"talkworld/internal/logger"
)

// ClipboardErrorMsg is sent when a native clipboard write fails.
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashMsg advances the brief highlight flash shown after a copy.
type SelectionFlashMsg time.Time

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells

	selectionFlashFrames = 2
)

// SelectionFlashTick returns a command that advances the copy flash.
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SelectionFlashMsg(t)
	})
}

// StartSelection begins a text selection at the given coordinates.
func (c *Chat) StartSelection(col, line int) {
	c.selectionStartCol = col
	c.selectionStartLine = line
	c.selectionEndCol = col
	c.selectionEndLine = line
	c.selectionActive = true
}

// EndSelection updates the end position of the selection during drag.
func (c *Chat) EndSelection(col, line int) {
	if !c.selectionActive {
		return
	}
	c.selectionEndCol = col
	c.selectionEndLine = line
}

// SelectionStop ends the drag but keeps the selection visible.
func (c *Chat) SelectionStop() {
	c.selectionActive = false
}

// SelectionClear clears the selection entirely.
func (c *Chat) SelectionClear() {
	c.selectionStartCol = -1
	c.selectionStartLine = -1
	c.selectionEndCol = -1
	c.selectionEndLine = -1
	c.selectionActive = false
	c.selectionFlashFrame = -1
}

// HasTextSelection returns true if there is an active or completed selection.
func (c *Chat) HasTextSelection() bool {
	return c.selectionStartCol >= 0 && c.selectionStartLine >= 0 &&
		(c.selectionEndCol != c.selectionStartCol || c.selectionEndLine != c.selectionStartLine)
}

// handleMouseClick handles left clicks and detects double/triple clicks.
func (c *Chat) handleMouseClick(x, y int) tea.Cmd {
	now := time.Now()

	if now.Sub(c.lastClickTime) <= doubleClickThreshold &&
		abs(x-c.lastClickX) <= clickTolerance &&
		abs(y-c.lastClickY) <= clickTolerance {
		c.clickCount++
	} else {
		c.clickCount = 1
	}

	c.lastClickTime = now
	c.lastClickX = x
	c.lastClickY = y

	switch c.clickCount {
	case 1:
		c.StartSelection(x, y)
	case 2:
		// Double click selects the word and copies immediately
		c.SelectWord(x, y)
		return c.CopySelectedText()
	case 3:
		// Triple click selects the message paragraph
		c.SelectParagraph(x, y)
		c.clickCount = 0
		return c.CopySelectedText()
	}

	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWord selects the word at the given position using uniseg word
// boundaries.
func (c *Chat) SelectWord(col, line int) {
	content := c.viewport.View()
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	// Walk the whole line's word segments. IsWordBoundary reports a
	// segment ending after the current grapheme, so the segment start is
	// carried forward from the previous boundary.
	gr := uniseg.NewGraphemes(currentLine)
	pos := 0
	segStart := 0
	startCol, endCol := -1, -1
	for gr.Next() {
		next := pos + len(gr.Str())
		if gr.IsWordBoundary() {
			if col >= segStart && col < next {
				startCol = segStart
				endCol = next
				break
			}
			segStart = next
		}
		pos = next
	}
	if startCol < 0 {
		return
	}

	c.selectionStartCol = startCol
	c.selectionStartLine = line
	c.selectionEndCol = endCol
	c.selectionEndLine = line
	c.selectionActive = false
}

// SelectParagraph selects the contiguous block of non-blank lines at the
// given position. Messages are separated by blank lines, so this selects
// one message's visible text.
func (c *Chat) SelectParagraph(col, line int) {
	content := c.viewport.View()
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	startLine := line
	endLine := line

	for startLine > 0 {
		prevLine := ansi.Strip(lines[startLine-1])
		if strings.TrimSpace(prevLine) == "" {
			break
		}
		startLine--
	}

	for endLine < len(lines)-1 {
		nextLine := ansi.Strip(lines[endLine+1])
		if strings.TrimSpace(nextLine) == "" {
			break
		}
		endLine++
	}

	lastLineWidth := len(ansi.Strip(lines[endLine]))

	c.selectionStartCol = 0
	c.selectionStartLine = startLine
	c.selectionEndCol = lastLineWidth
	c.selectionEndLine = endLine
	c.selectionActive = false
}

// selectionArea returns the selection normalized to reading order: the
// user may drag from bottom-right to top-left, so start must be swapped
// ahead of end before extraction or rendering.
func (c *Chat) selectionArea() (startCol, startLine, endCol, endLine int) {
	startCol = c.selectionStartCol
	startLine = c.selectionStartLine
	endCol = c.selectionEndCol
	endLine = c.selectionEndLine

	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}

	return
}

// GetSelectedText extracts the selected text from the visible viewport
// content, stripping ANSI codes so column positions match what the user
// sees.
func (c *Chat) GetSelectedText() string {
	if !c.HasTextSelection() {
		return ""
	}

	content := c.viewport.View()
	lines := strings.Split(content, "\n")

	startCol, startLine, endCol, endLine := c.selectionArea()

	var result strings.Builder

	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := ansi.Strip(lines[y])

		var lineStart, lineEnd int
		if y == startLine {
			lineStart = startCol
		}
		if y == endLine {
			lineEnd = endCol
		} else {
			lineEnd = len(line)
		}

		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > len(line) {
			lineEnd = len(line)
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		if lineStart < len(line) {
			result.WriteString(line[lineStart:lineEnd])
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// CopySelectedText copies the selected text to the clipboard and starts
// the flash animation.
func (c *Chat) CopySelectedText() tea.Cmd {
	if !c.HasTextSelection() {
		return nil
	}

	selectedText := c.GetSelectedText()
	if selectedText == "" {
		return nil
	}

	c.selectionFlashFrame = 0

	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(selectedText),
		// Native clipboard fallback
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.Log("Failed to write to clipboard: %v", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		SelectionFlashTick(),
	)
}

// advanceSelectionFlash steps the post-copy highlight; the selection is
// cleared when the flash finishes.
func (c *Chat) advanceSelectionFlash() tea.Cmd {
	if c.selectionFlashFrame < 0 {
		return nil
	}
	c.selectionFlashFrame++
	if c.selectionFlashFrame >= selectionFlashFrames {
		c.SelectionClear()
		return nil
	}
	return SelectionFlashTick()
}

// selectionView applies selection highlighting to the rendered view using
// an ultraviolet screen buffer.
func (c *Chat) selectionView(view string) string {
	if !c.HasTextSelection() {
		return view
	}

	width := c.viewport.Width()
	height := c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	startCol, startLine, endCol, endLine := c.selectionArea()

	// Flash frame uses the copied-confirmation style
	var selBg, selFg color.Color
	if c.selectionFlashFrame == 0 {
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	for y := startLine; y <= endLine && y < height; y++ {
		var xStart, xEnd int
		switch {
		case y == startLine && y == endLine:
			xStart = startCol
			xEnd = endCol
		case y == startLine:
			xStart = startCol
			xEnd = width
		case y == endLine:
			xStart = 0
			xEnd = endCol
		default:
			xStart = 0
			xEnd = width
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
