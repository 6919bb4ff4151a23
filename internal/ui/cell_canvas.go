package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas wraps a cellbuf.Screen so lipgloss-rendered blocks can be stacked
// into one frame before it is handed back to Bubble Tea as a string.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int

	// offset of this canvas when composed onto a parent canvas
	x, y int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// SetOffset records where the canvas lands when composed onto a parent.
func (c *Canvas) SetOffset(x, y int) {
	if c == nil {
		return
	}
	c.x, c.y = x, y
}

// Offset reports the position set by SetOffset.
func (c *Canvas) Offset() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.x, c.y
}

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes the provided block starting at x,y. Each line starts
// at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range splitLines(content) {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Compose draws a child canvas at its own offset.
func (c *Canvas) Compose(child *Canvas) {
	if c == nil || child == nil {
		return
	}
	x, y := child.Offset()
	c.DrawStringAt(x, y, child.Render())
}

// Render returns the frame as a newline-delimited string and releases the
// underlying screen.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}
