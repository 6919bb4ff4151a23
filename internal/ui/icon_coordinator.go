package ui

import (
	"goalmanager/internal/debug"
	"goalmanager/internal/ui/pointer"
)

// markerIconPicker marks the picker overlay. Presses inside it never count
// as outside interaction.
const markerIconPicker = "icon-picker"

// IconPickerState is the overlay state owned by IconCoordinator.
type IconPickerState int

const (
	IconPickerClosed IconPickerState = iota
	IconPickerOpen
)

func (s IconPickerState) String() string {
	if s == IconPickerOpen {
		return "open"
	}
	return "closed"
}

// IconCoordinator drives the icon picker overlay. While the overlay is open
// it keeps exactly one listener on the pointer document so a press outside
// the picker closes it.
type IconCoordinator struct {
	draft *Draft
	doc   *pointer.Document

	state          IconPickerState
	removeListener func()
}

func NewIconCoordinator(draft *Draft, doc *pointer.Document) *IconCoordinator {
	return &IconCoordinator{draft: draft, doc: doc}
}

func (c *IconCoordinator) State() IconPickerState { return c.state }

func (c *IconCoordinator) IsOpen() bool { return c.state == IconPickerOpen }

// Open shows the picker. The triggering press, if any, stops propagating so
// the outside listener never sees the press that opened it. Opening while
// already open only stops the press.
func (c *IconCoordinator) Open(ev *pointer.Event) {
	if ev != nil {
		ev.StopPropagation()
	}
	if c.state == IconPickerOpen {
		return
	}
	c.state = IconPickerOpen
	if c.doc != nil {
		c.removeListener = c.doc.AddListener(c.handleDocumentPress)
	}
	debug.Event("icon picker opened")
}

// Select sets the draft icon and closes the picker in one step.
func (c *IconCoordinator) Select(token string) {
	if c.state != IconPickerOpen {
		return
	}
	c.draft.SetIcon(token)
	c.exitOpen()
	debug.Event("icon selected", "icon", token)
}

// Close hides the picker without touching the icon.
func (c *IconCoordinator) Close() {
	if c.state != IconPickerOpen {
		return
	}
	c.exitOpen()
	debug.Event("icon picker closed")
}

// RemoveIcon clears the draft icon. The overlay state is left alone.
func (c *IconCoordinator) RemoveIcon() {
	c.draft.ClearIcon()
}

// Teardown releases the document listener when the form goes away.
func (c *IconCoordinator) Teardown() {
	c.state = IconPickerClosed
	c.detach()
}

func (c *IconCoordinator) handleDocumentPress(ev *pointer.Event) {
	if c.state != IconPickerOpen {
		return
	}
	if ev.Closest(markerIconPicker) {
		return
	}
	c.exitOpen()
	debug.Event("icon picker dismissed by outside press", "target", ev.Target())
}

func (c *IconCoordinator) exitOpen() {
	c.state = IconPickerClosed
	c.detach()
}

func (c *IconCoordinator) detach() {
	if c.removeListener != nil {
		c.removeListener()
		c.removeListener = nil
	}
}
