package ui

import (
	"github.com/charmbracelet/lipgloss"

	"goalmanager/internal/ui/pointer"
)

// Layer is anything stacked above the base view: the modal host, the icon
// picker, the blocking notice, toasts.
type Layer interface {
	Render() *Canvas
}

// block is a rendered piece of UI plus the pointer regions inside it,
// relative to the block's top-left corner.
type block struct {
	content string
	regions []region
}

type region struct {
	marker string
	rect   pointer.Rect
}

func rectAt(x, y, width, height int) pointer.Rect {
	return pointer.Rect{X: x, Y: y, Width: width, Height: height}
}

func (b block) empty() bool { return b.content == "" }

func (b block) size() (int, int) {
	return blockDimensions(b.content)
}

// placement is a block positioned on screen.
type placement struct {
	block
	x, y int
	bg   lipgloss.TerminalColor
}

// Render implements Layer.
func (p placement) Render() *Canvas {
	if p.empty() {
		return nil
	}
	w, h := p.size()
	canvas := NewCanvas(w, h)
	if p.bg != nil {
		canvas.Fill(p.bg)
	}
	canvas.DrawStringAt(0, 0, p.content)
	canvas.SetOffset(p.x, p.y)
	return canvas
}

// mark registers the placement's regions on the document in screen
// coordinates, with the whole block under outer.
func (p placement) mark(doc *pointer.Document, outer string) {
	if p.empty() || doc == nil {
		return
	}
	if outer != "" {
		w, h := p.size()
		doc.Mark(outer, pointer.Rect{X: p.x, Y: p.y, Width: w, Height: h})
	}
	for _, r := range p.regions {
		doc.Mark(r.marker, pointer.Rect{
			X:      p.x + r.rect.X,
			Y:      p.y + r.rect.Y,
			Width:  r.rect.Width,
			Height: r.rect.Height,
		})
	}
}

// composeLayers stacks layers over base on a width x height frame.
func composeLayers(base string, width, height int, layers ...Layer) string {
	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, base)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		canvas.Compose(layer.Render())
	}
	return canvas.Render()
}

func blockDimensions(content string) (int, int) {
	lines := splitLines(content)
	width := maxLineWidth(lines)
	if width <= 0 {
		width = 1
	}
	height := len(lines)
	if height <= 0 {
		height = 1
	}
	return width, height
}

func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	if topMargin < 0 {
		topMargin = 0
	}
	if bottomMargin < 0 {
		bottomMargin = 0
	}

	usableHeight := containerHeight - topMargin - bottomMargin
	if usableHeight < contentHeight {
		usableHeight = contentHeight
	}

	y := topMargin
	if usableHeight > contentHeight {
		y = topMargin + (usableHeight-contentHeight)/2
	}
	maxY := containerHeight - bottomMargin - contentHeight
	if y > maxY {
		y = maxY
	}
	if y < topMargin {
		y = topMargin
	}
	if y < 0 {
		y = 0
	}

	x := (containerWidth - contentWidth) / 2
	if x < 0 {
		x = 0
	}

	return x, y
}
