package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the goal list and detail shortcuts.
// Related bindings (Up/Down) share help text since they render as one pill.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	New    key.Binding
	Copy   key.Binding
	Theme  key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings for the goal list.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "Move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓", "Move"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New goal"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy ID"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// FormKeyMap holds the create goal form bindings. None of them are plain
// runes so typing into the inputs is never intercepted.
type FormKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Remove   key.Binding
}

func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧Tab", "Prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("⏎", "Select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "Create"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Remove: key.NewBinding(
			key.WithKeys("backspace", "delete", "x"),
			key.WithHelp("x", "Remove icon"),
		),
	}
}

// DateKeyMap holds the date field bindings.
type DateKeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Today     key.Binding
	Clear     key.Binding
	Commit    key.Binding
	Abort     key.Binding
}

func DefaultDateKeyMap() DateKeyMap {
	return DateKeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "Day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←/→", "Day"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "Month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓", "Month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Today"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "Clear"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Set date"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Discard"),
		),
	}
}

// PickerKeyMap holds the icon picker bindings.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Filter key.Binding
	Close  key.Binding
}

func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("←↑↓→", "Move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("←↑↓→", "Move"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←↑↓→", "Move"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←↑↓→", "Move"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Pick"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
	}
}
