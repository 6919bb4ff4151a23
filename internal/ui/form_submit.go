package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"goalmanager/internal/debug"
	appErrors "goalmanager/internal/errors"
	"goalmanager/internal/goals"
	"goalmanager/internal/store"
)

const requiredFieldsNotice = "Please fill in all required fields"

var validate = validator.New(validator.WithRequiredStructEnabled())

// completeness is the subset of the draft that must be present to submit.
// A zero amount counts as missing.
type completeness struct {
	Name         string     `validate:"required"`
	TargetDate   *time.Time `validate:"required"`
	TargetAmount float64    `validate:"required"`
}

// checkComplete reports which required draft fields are missing.
func checkComplete(d *Draft) error {
	c := completeness{
		Name:       strings.TrimSpace(d.Name()),
		TargetDate: d.TargetDate(),
	}
	if amount := d.TargetAmount(); amount != nil {
		c.TargetAmount = *amount
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var missing []string
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
	}
	return appErrors.New(appErrors.CodeValidation, "missing "+strings.Join(missing, ", "), err)
}

// goalCreateResultMsg carries the outcome of a create call back to the form
// that issued it.
type goalCreateResultMsg struct {
	form *CreateGoalForm
	goal *goals.Goal
	err  error
}

// Submit validates the draft and, when complete, starts the create call with
// the icon as its only argument.
func (f *CreateGoalForm) Submit() tea.Cmd {
	if err := checkComplete(f.draft); err != nil {
		f.notice = requiredFieldsNotice
		debug.Event("create goal blocked", "error", err)
		return nil
	}
	if f.singleSubmit && f.inFlight > 0 {
		debug.Event("create goal ignored, call already running")
		return nil
	}
	if f.creator == nil {
		debug.Event("create goal skipped, no creator configured")
		return nil
	}

	f.inFlight++
	icon := f.draft.Icon()
	creator := f.creator
	create := func() tea.Msg {
		goal, err := creator.Create(context.Background(), icon)
		return goalCreateResultMsg{form: f, goal: goal, err: err}
	}
	if f.inFlight == 1 {
		return tea.Batch(create, f.spinner.Tick)
	}
	return create
}

// finishCreate applies a create result. Failures leave the form as it was.
func (f *CreateGoalForm) finishCreate(msg goalCreateResultMsg) {
	if f.inFlight > 0 {
		f.inFlight--
	}
	if msg.err != nil {
		debug.Event("create goal failed", "error", msg.err, "code", appErrors.CodeOf(msg.err))
		return
	}
	if msg.goal == nil {
		debug.Event("create goal returned no goal")
		return
	}
	goal := *msg.goal
	if f.goals != nil {
		f.goals.Add(goal)
	}
	if f.display != nil {
		f.display.SetContent(goal)
		f.display.SetKind(store.KindGoal)
	}
	debug.Event("create goal published", "id", goal.ID)
}

// Cancel closes the modal host. Nothing else changes.
func (f *CreateGoalForm) Cancel() {
	if f.display != nil {
		f.display.SetOpen(false)
	}
}
