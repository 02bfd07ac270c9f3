package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"talkworld/internal/chat"
	"talkworld/internal/interaction"
)

// locate finds needle's visible position in the rendered viewport.
func locate(c *Chat, needle string) (col, row int) {
	for y, line := range strings.Split(c.viewport.View(), "\n") {
		if idx := strings.Index(ansi.Strip(line), needle); idx >= 0 {
			return idx, y
		}
	}
	return -1, -1
}

func newSelectionChat() *Chat {
	c := NewChat()
	coord := interaction.New(&nopClipboard{}, &nopReactions{})
	c.SetConversation("c1", "me", coord)
	c.SetSize(80, 24)
	c.SetMessages([]chat.Message{
		{ID: "1", SenderID: "u1", SenderName: "Ana", Text: "hello world from here", Timestamp: time.Now()},
		{ID: "2", SenderID: "u1", SenderName: "Ana", Text: "second message", Timestamp: time.Now()},
	})
	return c
}

func TestStartSelection(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(5, 10)

	if c.selectionStartCol != 5 || c.selectionStartLine != 10 {
		t.Errorf("start position wrong: got (%d, %d)", c.selectionStartCol, c.selectionStartLine)
	}
	if c.selectionEndCol != 5 || c.selectionEndLine != 10 {
		t.Errorf("end position should match start: got (%d, %d)", c.selectionEndCol, c.selectionEndLine)
	}
	if !c.selectionActive {
		t.Error("expected active selection after StartSelection")
	}
}

func TestEndSelection(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(5, 10)
	c.EndSelection(20, 12)

	if c.selectionEndCol != 20 || c.selectionEndLine != 12 {
		t.Errorf("end position wrong: got (%d, %d)", c.selectionEndCol, c.selectionEndLine)
	}
}

func TestEndSelection_InactiveIsNoop(t *testing.T) {
	c := newSelectionChat()
	c.EndSelection(20, 12)

	if c.selectionEndCol != -1 || c.selectionEndLine != -1 {
		t.Errorf("expected no change when inactive, got (%d, %d)", c.selectionEndCol, c.selectionEndLine)
	}
}

func TestSelectionStop_PreservesPositions(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(5, 10)
	c.EndSelection(20, 12)
	c.SelectionStop()

	if c.selectionActive {
		t.Error("expected inactive after SelectionStop")
	}
	if c.selectionStartCol != 5 || c.selectionEndCol != 20 {
		t.Error("positions should be preserved after SelectionStop")
	}
}

func TestSelectionClear(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(5, 10)
	c.EndSelection(20, 12)
	c.SelectionClear()

	if c.selectionActive {
		t.Error("expected inactive after SelectionClear")
	}
	if c.selectionStartCol != -1 || c.selectionStartLine != -1 {
		t.Error("expected positions reset to -1")
	}
	if c.HasTextSelection() {
		t.Error("HasTextSelection should be false after clear")
	}
}

func TestHasTextSelection(t *testing.T) {
	c := newSelectionChat()

	if c.HasTextSelection() {
		t.Error("fresh chat should have no selection")
	}

	c.StartSelection(5, 10)
	if c.HasTextSelection() {
		t.Error("zero-width selection should not count")
	}

	c.EndSelection(20, 10)
	if !c.HasTextSelection() {
		t.Error("expected selection after drag")
	}
}

func TestSelectionArea_NormalizesBackwardDrag(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(20, 12)
	c.EndSelection(5, 10)

	startCol, startLine, endCol, endLine := c.selectionArea()
	if startLine != 10 || startCol != 5 || endLine != 12 || endCol != 20 {
		t.Errorf("normalized = (%d,%d)-(%d,%d)", startCol, startLine, endCol, endLine)
	}
}

func TestSelectionArea_NormalizesSameLineBackward(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(20, 10)
	c.EndSelection(5, 10)

	startCol, _, endCol, _ := c.selectionArea()
	if startCol != 5 || endCol != 20 {
		t.Errorf("normalized cols = %d-%d", startCol, endCol)
	}
}

func TestGetSelectedText_SingleLine(t *testing.T) {
	c := newSelectionChat()

	col, row := locate(c, "hello")
	if row < 0 {
		t.Fatal("could not locate message text in viewport")
	}

	c.StartSelection(col, row)
	c.EndSelection(col+len("hello world"), row)
	c.SelectionStop()

	got := c.GetSelectedText()
	if got != "hello world" {
		t.Errorf("GetSelectedText() = %q, want %q", got, "hello world")
	}
}

func TestGetSelectedText_EmptyWithoutSelection(t *testing.T) {
	c := newSelectionChat()
	if got := c.GetSelectedText(); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestHandleMouseClick_DetectsDoubleClick(t *testing.T) {
	c := newSelectionChat()

	c.handleMouseClick(10, 1)
	if c.clickCount != 1 {
		t.Fatalf("first click count = %d", c.clickCount)
	}

	c.handleMouseClick(11, 1)
	if c.clickCount != 2 {
		t.Errorf("second nearby click count = %d, want 2", c.clickCount)
	}
}

func TestHandleMouseClick_FarClickResetsCount(t *testing.T) {
	c := newSelectionChat()

	c.handleMouseClick(10, 1)
	c.handleMouseClick(40, 10)
	if c.clickCount != 1 {
		t.Errorf("distant click count = %d, want 1", c.clickCount)
	}
}

func TestSelectWord(t *testing.T) {
	c := newSelectionChat()

	col, row := locate(c, "world")
	if row < 0 {
		t.Fatal("could not locate word in viewport")
	}

	c.SelectWord(col+2, row) // middle of "world"

	if got := c.GetSelectedText(); got != "world" {
		t.Errorf("SelectWord selected %q, want %q", got, "world")
	}
}

func TestSelectWord_Edges(t *testing.T) {
	tests := []struct {
		name   string
		word   string
		offset func(word string) int
	}{
		{"first grapheme", "world", func(string) int { return 0 }},
		{"last grapheme", "world", func(w string) int { return len(w) - 1 }},
		{"word after indent", "hello", func(string) int { return 1 }},
		{"last word on line", "here", func(w string) int { return len(w) - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newSelectionChat()

			col, row := locate(c, tt.word)
			if row < 0 {
				t.Fatalf("could not locate %q in viewport", tt.word)
			}

			c.SelectWord(col+tt.offset(tt.word), row)

			if got := c.GetSelectedText(); got != tt.word {
				t.Errorf("SelectWord selected %q, want %q", got, tt.word)
			}
		})
	}
}

func TestSelectParagraph_SelectsOneMessage(t *testing.T) {
	c := newSelectionChat()

	_, row := locate(c, "second")
	if row < 0 {
		t.Fatal("could not locate message in viewport")
	}

	c.SelectParagraph(0, row)

	got := c.GetSelectedText()
	if !strings.Contains(got, "second message") {
		t.Errorf("paragraph selection missing text: %q", got)
	}
	if strings.Contains(got, "hello world") {
		t.Errorf("paragraph selection crossed the blank separator: %q", got)
	}
}

func TestAdvanceSelectionFlash_ClearsSelection(t *testing.T) {
	c := newSelectionChat()
	c.StartSelection(0, 0)
	c.EndSelection(5, 0)
	c.selectionFlashFrame = 0

	cmd := c.advanceSelectionFlash()
	for cmd != nil && c.selectionFlashFrame >= 0 {
		cmd = c.advanceSelectionFlash()
	}

	if c.HasTextSelection() {
		t.Error("selection should be cleared when the flash finishes")
	}
}
