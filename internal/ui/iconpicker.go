package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	markerPickerClose = "icon-picker-close"
	markerPickerCell  = "icon-cell-"

	pickerColumns   = 8
	pickerCellWidth = 4
)

// iconNames lets the filter match the default palette by word.
var iconNames = map[string]string{
	"🎯": "target goal dart",
	"🏖": "beach holiday vacation",
	"🏠": "house home",
	"🚗": "car",
	"✈": "plane travel flight",
	"🎓": "graduation school education",
	"💍": "ring wedding",
	"👶": "baby",
	"💰": "money bag savings",
	"📈": "chart growth invest",
	"🏦": "bank",
	"💳": "card credit debt",
	"🛟": "emergency buoy safety",
	"🎁": "gift present",
	"🎸": "guitar music",
	"📚": "books study",
	"💻": "laptop computer",
	"📱": "phone mobile",
	"🏋": "gym fitness",
	"🚲": "bike bicycle",
	"⛺": "tent camping",
	"🎮": "game console",
	"🐶": "dog pet",
	"🌱": "plant garden",
}

// IconPicker is a grid of icon tokens. Choosing one calls OnSelect; the
// picker itself keeps no notion of the current icon.
type IconPicker struct {
	OnSelect func(token string)

	tokens    []string
	visible   []int
	cursor    int
	filter    textinput.Model
	filtering bool
	keys      PickerKeyMap
}

func NewIconPicker(tokens []string) IconPicker {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter"
	fi.CharLimit = 24
	fi.Width = pickerColumns*pickerCellWidth - 2
	p := IconPicker{
		tokens: append([]string(nil), tokens...),
		filter: fi,
		keys:   DefaultPickerKeyMap(),
	}
	p.applyFilter()
	return p
}

// Reset clears the filter and cursor, ready for a fresh open.
func (p *IconPicker) Reset() {
	p.filtering = false
	p.filter.Blur()
	p.filter.SetValue("")
	p.cursor = 0
	p.applyFilter()
}

// Tokens returns the currently visible tokens.
func (p IconPicker) Tokens() []string {
	out := make([]string, 0, len(p.visible))
	for _, idx := range p.visible {
		out = append(out, p.tokens[idx])
	}
	return out
}

// Current returns the token under the cursor.
func (p IconPicker) Current() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return "", false
	}
	return p.tokens[p.visible[p.cursor]], true
}

// Filtering reports whether the filter input has the keyboard.
func (p IconPicker) Filtering() bool { return p.filtering }

func (p IconPicker) Update(msg tea.Msg) (IconPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if p.filtering {
		switch keyMsg.Type {
		case tea.KeyEnter:
			p.filtering = false
			p.filter.Blur()
			return p, nil
		case tea.KeyEsc:
			p.filtering = false
			p.filter.Blur()
			p.filter.SetValue("")
			p.applyFilter()
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(keyMsg)
		p.applyFilter()
		return p, cmd
	}

	switch {
	case key.Matches(keyMsg, p.keys.Left):
		p.move(-1)
	case key.Matches(keyMsg, p.keys.Right):
		p.move(1)
	case key.Matches(keyMsg, p.keys.Up):
		p.move(-pickerColumns)
	case key.Matches(keyMsg, p.keys.Down):
		p.move(pickerColumns)
	case key.Matches(keyMsg, p.keys.Filter):
		p.filtering = true
		return p, p.filter.Focus()
	case key.Matches(keyMsg, p.keys.Select):
		if token, ok := p.Current(); ok {
			p.choose(token)
		}
	}
	return p, nil
}

// Press handles a press on one of the picker's own regions. It reports
// whether the marker was a cell.
func (p IconPicker) Press(marker string) bool {
	if !strings.HasPrefix(marker, markerPickerCell) {
		return false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(marker, markerPickerCell))
	if err != nil || idx < 0 || idx >= len(p.visible) {
		return false
	}
	p.choose(p.tokens[p.visible[idx]])
	return true
}

func (p IconPicker) choose(token string) {
	if p.OnSelect != nil {
		p.OnSelect(token)
	}
}

func (p *IconPicker) move(delta int) {
	if len(p.visible) == 0 {
		return
	}
	next := p.cursor + delta
	if next < 0 || next >= len(p.visible) {
		return
	}
	p.cursor = next
}

func (p *IconPicker) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	visible := make([]int, 0, len(p.tokens))
	for i, token := range p.tokens {
		if query == "" || token == query || strings.Contains(iconNames[token], query) {
			visible = append(visible, i)
		}
	}
	p.visible = visible
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Render draws the picker box. Regions are relative to its top-left corner.
func (p IconPicker) Render() block {
	innerWidth := pickerColumns * pickerCellWidth
	style := stylePicker()
	offsetX := style.GetBorderLeftSize() + style.GetPaddingLeft()
	offsetY := style.GetBorderTopSize() + style.GetPaddingTop()

	var lines []string
	var regions []region

	closeLabel := " × "
	closeWidth := lipgloss.Width(closeLabel)
	header := padRight(styleTitle().Render("Pick an icon"), innerWidth-closeWidth) + styleRemoveButton().Render(closeLabel)
	regions = append(regions, region{
		marker: markerPickerClose,
		rect:   rectAt(offsetX+innerWidth-closeWidth, offsetY, closeWidth, 1),
	})
	lines = append(lines, header)

	if p.filtering || p.filter.Value() != "" {
		lines = append(lines, p.filter.View())
	}

	if len(p.visible) == 0 {
		lines = append(lines, styleMuted().Render(padRight("No icons match", innerWidth)))
	}
	cell := lipgloss.NewStyle().Width(pickerCellWidth).Align(lipgloss.Center)
	for rowStart := 0; rowStart < len(p.visible); rowStart += pickerColumns {
		row := len(lines)
		var cells []string
		for col := 0; col < pickerColumns && rowStart+col < len(p.visible); col++ {
			idx := rowStart + col
			s := cell
			if idx == p.cursor {
				s = s.Inherit(stylePickerCursor())
			}
			cells = append(cells, s.Render(p.tokens[p.visible[idx]]))
			regions = append(regions, region{
				marker: fmt.Sprintf("%s%d", markerPickerCell, idx),
				rect:   rectAt(offsetX+col*pickerCellWidth, offsetY+row, pickerCellWidth, 1),
			})
		}
		lines = append(lines, padRight(strings.Join(cells, ""), innerWidth))
	}

	lines = append(lines, "", styleMuted().Render("⏎ pick  / filter  esc close"))
	return block{
		content: style.Render(strings.Join(lines, "\n")),
		regions: regions,
	}
}
