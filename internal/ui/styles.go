package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"goalmanager/internal/ui/theme"
)

// Styles are functions so a theme switch takes effect on the next frame.

func baseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Width(formLabelWidth)
}

func styleValue() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text()).Bold(true)
}

func styleMissing() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Warning()).Italic(true)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Foreground(theme.Current().Text()).
		Bold(true)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(modalPadY, modalPadX)
}

func styleInput(focused bool) lipgloss.Style {
	border := theme.Current().BorderNormal()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func styleAddIcon(focused bool) lipgloss.Style {
	border := theme.Current().BorderNormal()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(dashedBorder).
		BorderForeground(border).
		Foreground(theme.Current().TextMuted()).
		Align(lipgloss.Center)
}

func styleCurrentIcon(focused bool) lipgloss.Style {
	border := theme.Current().BorderNormal()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func styleButton(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal()).
		Foreground(theme.Current().Text()).
		Padding(0, 2)
	if focused {
		s = s.BorderForeground(theme.Current().BorderFocused()).Bold(true)
	}
	return s
}

func stylePrimaryButton(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Foreground(theme.Current().Primary()).
		Bold(true).
		Padding(0, 2)
	if focused {
		s = s.BorderForeground(theme.Current().Accent()).Foreground(theme.Current().Accent())
	}
	return s
}

func styleRemoveButton() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error()).
		Bold(true)
}

func styleLinkButton() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		Underline(true)
}

func stylePicker() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Padding(0, 1)
}

func stylePickerCursor() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Foreground(theme.Current().Accent())
}

func styleNotice() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Current().Error()).
		Foreground(theme.Current().Text()).
		Padding(1, 3)
}

func styleSuccessToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Success()).
		Foreground(theme.Current().Text()).
		Padding(0, 1)
}

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Secondary()).
		Bold(true).
		Padding(0, 1)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
