package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"goalmanager/internal/goals"
	"goalmanager/internal/ui/theme"
)

// Goal list column widths.
const (
	colIcon   = 3
	colAmount = 14
	colDate   = 11
	colDue    = 12
	colStatus = 10
)

// View implements tea.Model.
func (m *App) View() string {
	base, layers := m.layout()
	return composeLayers(base, m.width, m.height, layers...)
}

// layout renders the frame pieces and re-marks every pointer region so the
// next press is resolved against what is on screen.
func (m *App) layout() (string, []Layer) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height
	m.doc.ClearRegions()

	base := m.renderBase(width, height)

	var layers []Layer
	switch {
	case m.form != nil:
		body := m.form.Render()
		bw, bh := body.size()
		x, y := centeredOffsets(width, height, bw, bh, 1, 1)
		form := placement{block: body, x: x, y: y, bg: theme.Current().Background()}
		form.mark(m.doc, markerForm)
		layers = append(layers, form)

		if pick, ok := m.form.RenderPicker(); ok {
			pw, ph := pick.size()
			px := x + (bw-pw)/2
			py := y + (bh-ph)/2
			if px < 0 {
				px = 0
			}
			if py < 0 {
				py = 0
			}
			picker := placement{block: pick, x: px, y: py, bg: theme.Current().Background()}
			picker.mark(m.doc, markerIconPicker)
			layers = append(layers, picker)
		}

		if notice, ok := m.form.RenderNotice(); ok {
			nw, nh := notice.size()
			nx, ny := centeredOffsets(width, height, nw, nh, 0, 0)
			n := placement{block: notice, x: nx, y: ny, bg: theme.Current().Background()}
			n.mark(m.doc, markerNotice)
			layers = append(layers, n)
		}
	case m.detail != nil:
		body := m.detail.Render()
		bw, bh := body.size()
		x, y := centeredOffsets(width, height, bw, bh, 1, 1)
		detail := placement{block: body, x: x, y: y, bg: theme.Current().Background()}
		detail.mark(m.doc, markerDetail)
		layers = append(layers, detail)
	}

	if toast := m.toastLayer(width, height); toast != nil {
		layers = append(layers, toast)
	}
	return base, layers
}

func (m *App) renderBase(width, height int) string {
	all := m.store.Goals.All()

	title := "GOALS"
	if m.version != "" {
		title = fmt.Sprintf("GOALS v%s", m.version)
	}
	header := styleAppHeader().Render(title) + " " + styleMuted().Render(fmt.Sprintf("%d goals", len(all)))

	listHeight := height - 3
	if listHeight < 1 {
		listHeight = 1
	}
	if m.cursor >= len(all) {
		m.cursor = len(all) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.listTop {
		m.listTop = m.cursor
	}
	if m.cursor >= m.listTop+listHeight {
		m.listTop = m.cursor - listHeight + 1
	}

	lines := []string{header, styleMuted().Render(m.renderColumnHeader(width))}
	if len(all) == 0 {
		lines = append(lines, "", styleMuted().Render("  No goals yet. Press n to create one."))
	}
	for i := m.listTop; i < len(all) && i < m.listTop+listHeight; i++ {
		row := m.renderGoalRow(all[i], width)
		if i == m.cursor {
			row = styleSelectedRow().Render(row)
		}
		m.doc.Mark(fmt.Sprintf("%s%d", markerGoalRow, i), rectAt(0, len(lines), width, 1))
		lines = append(lines, row)
	}
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderFooter(width))
	return strings.Join(lines, "\n")
}

func (m *App) nameWidth(width int) int {
	w := width - colIcon - colAmount - colDate - colDue - colStatus - 1
	if w < 10 {
		w = 10
	}
	return w
}

func (m *App) renderColumnHeader(width int) string {
	return " " + padRight("", colIcon) +
		padRight("Name", m.nameWidth(width)) +
		padRight("Target", colAmount) +
		padRight("Date", colDate) +
		padRight("Due", colDue) +
		padRight("Status", colStatus)
}

func (m *App) renderGoalRow(g goals.Goal, width int) string {
	icon := "·"
	if g.HasIcon() {
		icon = *g.Icon
	}
	date := ""
	if g.TargetDate != nil {
		date = formatDate(g.TargetDate)
	}
	return " " + padRight(icon, colIcon) +
		padRight(g.DisplayName(), m.nameWidth(width)) +
		padRight(formatTarget(g.TargetAmount), colAmount) +
		padRight(date, colDate) +
		padRight(FormatDueIn(g.TargetDate), colDue) +
		padRight(string(g.Status), colStatus)
}

func (m *App) renderFooter(width int) string {
	bindings := []key.Binding{m.keys.Up, m.keys.Enter, m.keys.New, m.keys.Copy, m.keys.Theme, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styleKeyPill().Render(h.Key)+" "+styleKeyDesc().Render(h.Desc))
	}
	return truncateCell(strings.Join(parts, "  "), width)
}

// toastLayer renders the active toast anchored bottom-right.
func (m *App) toastLayer(width, height int) Layer {
	if !m.toastVisible || m.toastText == "" {
		return nil
	}
	remaining := int((toastDuration - time.Since(m.toastStart)).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	countdown := fmt.Sprintf("[%ds]", remaining+1)
	toastWidth := lipgloss.Width(m.toastText)
	if toastWidth < 24 {
		toastWidth = 24
	}
	pad := toastWidth - lipgloss.Width(countdown)
	if pad < 0 {
		pad = 0
	}
	content := styleSuccessToast().Render(m.toastText + "\n" + strings.Repeat(" ", pad) + countdown)
	tw, th := blockDimensions(content)
	x := width - tw - 2
	if x < 0 {
		x = 0
	}
	y := height - th - 2
	if y < 0 {
		y = 0
	}
	return placement{block: block{content: content}, x: x, y: y, bg: theme.Current().Background()}
}
