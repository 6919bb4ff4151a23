// Package theme provides the semantic colors used by the goal manager UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors the UI draws with.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // focused borders, header, primary button
	Secondary() lipgloss.AdaptiveColor // field labels
	Accent() lipgloss.AdaptiveColor    // titles, selected icon

	Error() lipgloss.AdaptiveColor   // remove icon, blocking notice
	Warning() lipgloss.AdaptiveColor // missing values
	Success() lipgloss.AdaptiveColor // toasts, progress

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // selected rows, picker cells

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
}

// palette is a Theme backed by plain values.
type palette struct {
	primary, secondary, accent   lipgloss.AdaptiveColor
	errorColor, warning, success lipgloss.AdaptiveColor
	text, textMuted              lipgloss.AdaptiveColor
	background, backgroundSecond lipgloss.AdaptiveColor
	borderNormal, borderFocused  lipgloss.AdaptiveColor
}

func (p palette) Primary() lipgloss.AdaptiveColor             { return p.primary }
func (p palette) Secondary() lipgloss.AdaptiveColor           { return p.secondary }
func (p palette) Accent() lipgloss.AdaptiveColor              { return p.accent }
func (p palette) Error() lipgloss.AdaptiveColor               { return p.errorColor }
func (p palette) Warning() lipgloss.AdaptiveColor             { return p.warning }
func (p palette) Success() lipgloss.AdaptiveColor             { return p.success }
func (p palette) Text() lipgloss.AdaptiveColor                { return p.text }
func (p palette) TextMuted() lipgloss.AdaptiveColor           { return p.textMuted }
func (p palette) Background() lipgloss.AdaptiveColor          { return p.background }
func (p palette) BackgroundSecondary() lipgloss.AdaptiveColor { return p.backgroundSecond }
func (p palette) BorderNormal() lipgloss.AdaptiveColor        { return p.borderNormal }
func (p palette) BorderFocused() lipgloss.AdaptiveColor       { return p.borderFocused }

func c(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Registration order matters: the first theme is the default.
func init() {
	RegisterTheme("tokyonight", palette{
		primary:          c("#2e7de9", "#82aaff"),
		secondary:        c("#9854f1", "#c099ff"),
		accent:           c("#b15c00", "#ff966c"),
		errorColor:       c("#f52a65", "#ff757f"),
		warning:          c("#b15c00", "#ff966c"),
		success:          c("#587539", "#c3e88d"),
		text:             c("#3760bf", "#c8d3f5"),
		textMuted:        c("#848cb5", "#828bb8"),
		background:       c("#e1e2e7", "#222436"),
		backgroundSecond: c("#d0d5e3", "#2f334d"),
		borderNormal:     c("#a8aecb", "#444a73"),
		borderFocused:    c("#2e7de9", "#82aaff"),
	})
	RegisterTheme("dracula", palette{
		primary:          c("#7e57c2", "#bd93f9"),
		secondary:        c("#0097a7", "#8be9fd"),
		accent:           c("#f9a825", "#f1fa8c"),
		errorColor:       c("#d32f2f", "#ff5555"),
		warning:          c("#ef6c00", "#ffb86c"),
		success:          c("#388e3c", "#50fa7b"),
		text:             c("#212121", "#f8f8f2"),
		textMuted:        c("#757575", "#6272a4"),
		background:       c("#ffffff", "#282a36"),
		backgroundSecond: c("#e0e0e0", "#44475a"),
		borderNormal:     c("#bdbdbd", "#6272a4"),
		borderFocused:    c("#7e57c2", "#bd93f9"),
	})
	RegisterTheme("nord", palette{
		primary:          c("#5e81ac", "#88c0d0"),
		secondary:        c("#81a1c1", "#81a1c1"),
		accent:           c("#8fbcbb", "#8fbcbb"),
		errorColor:       c("#bf616a", "#bf616a"),
		warning:          c("#d08770", "#d08770"),
		success:          c("#a3be8c", "#a3be8c"),
		text:             c("#2e3440", "#eceff4"),
		textMuted:        c("#3b4252", "#8b95a7"),
		background:       c("#eceff4", "#2e3440"),
		backgroundSecond: c("#e5e9f0", "#3b4252"),
		borderNormal:     c("#4c566a", "#434c5e"),
		borderFocused:    c("#434c5e", "#4c566a"),
	})
	RegisterTheme("catppuccin", palette{
		primary:          c("#1e66f5", "#89b4fa"),
		secondary:        c("#8839ef", "#cba6f7"),
		accent:           c("#fe640b", "#fab387"),
		errorColor:       c("#d20f39", "#f38ba8"),
		warning:          c("#fe640b", "#fab387"),
		success:          c("#40a02b", "#a6e3a1"),
		text:             c("#4c4f69", "#cdd6f4"),
		textMuted:        c("#9ca0b0", "#6c7086"),
		background:       c("#eff1f5", "#1e1e2e"),
		backgroundSecond: c("#e6e9ef", "#313244"),
		borderNormal:     c("#9ca0b0", "#6c7086"),
		borderFocused:    c("#1e66f5", "#89b4fa"),
	})
}
