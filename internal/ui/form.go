package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"goalmanager/internal/goals"
	"goalmanager/internal/ui/pointer"
)

// FormFocus is the zone holding the keyboard in the create goal form.
type FormFocus int

// Focus zones in tab order.
const (
	FocusName FormFocus = iota
	FocusDate
	FocusAmount
	FocusIcon
	FocusCancel
	FocusCreate
	focusCount
)

// GoalAdder receives created goals.
type GoalAdder interface {
	Add(goals.Goal)
}

// DisplaySurface is the shared modal host the form lives in.
type DisplaySurface interface {
	SetContent(content any)
	SetKind(kind string)
	SetOpen(open bool)
}

// CreateGoalFormOptions configures a CreateGoalForm.
type CreateGoalFormOptions struct {
	Creator  goals.Creator
	Goals    GoalAdder
	Display  DisplaySurface
	Document *pointer.Document
	Palette  []string
	Now      func() time.Time

	// SingleSubmit ignores submits while a create call is running.
	SingleSubmit bool
}

// CreateGoalForm collects a goal draft and hands it to the creator.
type CreateGoalForm struct {
	draft   *Draft
	icons   *IconCoordinator
	creator goals.Creator
	goals   GoalAdder
	display DisplaySurface

	name    textinput.Model
	amount  textinput.Model
	date    DateField
	picker  IconPicker
	spinner spinner.Model

	focus        FormFocus
	keys         FormKeyMap
	notice       string
	singleSubmit bool
	inFlight     int
}

func NewCreateGoalForm(opts CreateGoalFormOptions) *CreateGoalForm {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	draft := NewDraft(now())

	name := textinput.New()
	name.Placeholder = "Enter goal name..."
	name.Prompt = ""
	name.CharLimit = 120
	name.Width = formInputWidth

	amount := textinput.New()
	amount.Placeholder = "Enter amount..."
	amount.Prompt = ""
	amount.CharLimit = 18
	amount.Width = formAmountWidth

	date := NewDateField(draft.TargetDate(), now)
	date.OnChange = draft.SetTargetDate

	icons := NewIconCoordinator(draft, opts.Document)
	picker := NewIconPicker(opts.Palette)
	picker.OnSelect = icons.Select

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	// Name is focused on open.
	name.Focus()

	return &CreateGoalForm{
		draft:        draft,
		icons:        icons,
		creator:      opts.Creator,
		goals:        opts.Goals,
		display:      opts.Display,
		name:         name,
		amount:       amount,
		date:         date,
		picker:       picker,
		spinner:      sp,
		focus:        FocusName,
		keys:         DefaultFormKeyMap(),
		singleSubmit: opts.SingleSubmit,
	}
}

// Init implements tea.Model.
func (f *CreateGoalForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *CreateGoalForm) Draft() *Draft { return f.draft }

func (f *CreateGoalForm) Icons() *IconCoordinator { return f.icons }

func (f *CreateGoalForm) Focus() FormFocus { return f.focus }

// Notice returns the blocking notice text, empty when none is shown.
func (f *CreateGoalForm) Notice() string { return f.notice }

// Creating reports whether a create call is outstanding.
func (f *CreateGoalForm) Creating() bool { return f.inFlight > 0 }

// Teardown releases resources held on behalf of the form.
func (f *CreateGoalForm) Teardown() {
	f.icons.Teardown()
}

// Update implements tea.Model.
func (f *CreateGoalForm) Update(msg tea.Msg) (*CreateGoalForm, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if f.inFlight == 0 {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd
	case tea.KeyMsg:
		return f, f.handleKey(msg)
	}
	return f, f.passToFocusedInput(msg)
}

func (f *CreateGoalForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	if f.notice != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			f.notice = ""
		}
		return nil
	}

	if f.icons.IsOpen() {
		if msg.Type == tea.KeyEsc && !f.picker.Filtering() {
			f.icons.Close()
			return nil
		}
		var cmd tea.Cmd
		f.picker, cmd = f.picker.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, f.keys.Submit):
		return f.Submit()
	case key.Matches(msg, f.keys.Cancel):
		if f.focus == FocusDate && f.date.Editing() {
			var cmd tea.Cmd
			f.date, cmd = f.date.Update(msg)
			return cmd
		}
		f.Cancel()
		return nil
	case key.Matches(msg, f.keys.Next):
		return f.setFocus((f.focus + 1) % focusCount)
	case key.Matches(msg, f.keys.Prev):
		return f.setFocus((f.focus + focusCount - 1) % focusCount)
	}

	return f.handleZoneInput(msg)
}

func (f *CreateGoalForm) handleZoneInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case FocusName:
		if msg.Type == tea.KeyEnter {
			return f.setFocus(FocusDate)
		}
		f.name, cmd = f.name.Update(msg)
		f.draft.SetName(f.name.Value())
	case FocusDate:
		if msg.Type == tea.KeyEnter && !f.date.Editing() {
			return f.setFocus(FocusAmount)
		}
		f.date, cmd = f.date.Update(msg)
	case FocusAmount:
		if msg.Type == tea.KeyEnter {
			return f.setFocus(FocusIcon)
		}
		f.amount, cmd = f.amount.Update(msg)
		if shown := f.draft.SetTargetAmountText(f.amount.Value()); shown != f.amount.Value() {
			f.amount.SetValue(shown)
		}
	case FocusIcon:
		switch {
		case key.Matches(msg, f.keys.Activate):
			f.openPicker(nil)
		case key.Matches(msg, f.keys.Remove):
			f.icons.RemoveIcon()
		}
	case FocusCancel:
		if key.Matches(msg, f.keys.Activate) {
			f.Cancel()
		}
	case FocusCreate:
		if key.Matches(msg, f.keys.Activate) {
			return f.Submit()
		}
	}
	return cmd
}

// passToFocusedInput forwards non-key messages such as cursor blinks.
func (f *CreateGoalForm) passToFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case FocusName:
		f.name, cmd = f.name.Update(msg)
	case FocusAmount:
		f.amount, cmd = f.amount.Update(msg)
	}
	return cmd
}

func (f *CreateGoalForm) setFocus(next FormFocus) tea.Cmd {
	if next == f.focus {
		return nil
	}
	switch f.focus {
	case FocusName:
		f.name.Blur()
	case FocusDate:
		f.date.Blur()
	case FocusAmount:
		f.amount.Blur()
	}
	f.focus = next
	switch next {
	case FocusName:
		return f.name.Focus()
	case FocusDate:
		f.date.Focus()
	case FocusAmount:
		return f.amount.Focus()
	}
	return nil
}

// openPicker resets the picker grid on a fresh open and hands the press to
// the coordinator.
func (f *CreateGoalForm) openPicker(ev *pointer.Event) {
	if !f.icons.IsOpen() {
		f.picker.Reset()
	}
	f.icons.Open(ev)
}

// HandlePress routes a pointer press to the form's own controls. It runs
// before document listeners see the event.
func (f *CreateGoalForm) HandlePress(ev *pointer.Event) tea.Cmd {
	if f.notice != "" {
		ev.StopPropagation()
		if ev.Closest(markerNoticeOK) {
			f.notice = ""
		}
		return nil
	}

	if f.icons.IsOpen() && ev.Closest(markerIconPicker) {
		if ev.Closest(markerPickerClose) {
			f.icons.Close()
			return nil
		}
		f.picker.Press(ev.Target())
		return nil
	}

	switch ev.Target() {
	case markerAddIcon, markerChangeIcon:
		cmd := f.setFocus(FocusIcon)
		f.openPicker(ev)
		return cmd
	case markerRemoveIcon:
		cmd := f.setFocus(FocusIcon)
		f.icons.RemoveIcon()
		return cmd
	case markerCancel:
		f.Cancel()
		return nil
	case markerCreate:
		return f.Submit()
	case markerName:
		return f.setFocus(FocusName)
	case markerDate:
		return f.setFocus(FocusDate)
	case markerAmount:
		return f.setFocus(FocusAmount)
	}
	return nil
}
