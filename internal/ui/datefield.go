package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const dateLayout = "2006-01-02"

// DateField is a keyboard date control. It owns no form state: every change
// is reported through OnChange and the caller decides what to store.
type DateField struct {
	OnChange func(*time.Time)

	value   *time.Time
	input   textinput.Model
	keys    DateKeyMap
	focused bool
	editing bool
	invalid bool
	now     func() time.Time
}

func NewDateField(value *time.Time, now func() time.Time) DateField {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(dateLayout)
	ti.Prompt = ""
	ti.Width = len(dateLayout) + 1
	d := DateField{
		input: ti,
		keys:  DefaultDateKeyMap(),
		now:   now,
	}
	d.SetValue(value)
	return d
}

// Value returns a copy of the current date.
func (d DateField) Value() *time.Time {
	if d.value == nil {
		return nil
	}
	v := *d.value
	return &v
}

// SetValue replaces the shown date without calling OnChange.
func (d *DateField) SetValue(t *time.Time) {
	if t == nil {
		d.value = nil
		return
	}
	v := *t
	d.value = &v
}

func (d *DateField) Focus() { d.focused = true }

// Blur leaves the field and drops any half-typed date.
func (d *DateField) Blur() {
	d.focused = false
	d.stopEditing()
}

func (d DateField) Focused() bool { return d.focused }

// Editing reports whether a typed date is being entered.
func (d DateField) Editing() bool { return d.editing }

func (d DateField) Update(msg tea.Msg) (DateField, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !d.focused {
		return d, nil
	}
	if d.editing {
		return d.updateEditing(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, d.keys.PrevDay):
		d.shift(0, -1)
	case key.Matches(keyMsg, d.keys.NextDay):
		d.shift(0, 1)
	case key.Matches(keyMsg, d.keys.NextMonth):
		d.shift(1, 0)
	case key.Matches(keyMsg, d.keys.PrevMonth):
		d.shift(-1, 0)
	case key.Matches(keyMsg, d.keys.Today):
		today := startOfDay(d.now())
		d.change(&today)
	case key.Matches(keyMsg, d.keys.Clear):
		d.change(nil)
	case keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) > 0 && isDigit(keyMsg.Runes[0]):
		d.editing = true
		d.invalid = false
		d.input.SetValue("")
		d.input.Focus()
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(keyMsg)
		return d, cmd
	}
	return d, nil
}

func (d DateField) updateEditing(msg tea.KeyMsg) (DateField, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Commit):
		raw := strings.TrimSpace(d.input.Value())
		loc := time.Local
		if d.value != nil {
			loc = d.value.Location()
		}
		t, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			d.invalid = true
			return d, nil
		}
		d.stopEditing()
		d.change(&t)
		return d, nil
	case key.Matches(msg, d.keys.Abort):
		d.stopEditing()
		return d, nil
	}
	d.invalid = false
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DateField) stopEditing() {
	d.editing = false
	d.invalid = false
	d.input.Blur()
	d.input.SetValue("")
}

// shift moves the date by months then days. An absent date starts from today.
func (d *DateField) shift(months, days int) {
	base := startOfDay(d.now())
	if d.value != nil {
		base = *d.value
	}
	next := addMonthsClamped(base, months).AddDate(0, 0, days)
	d.change(&next)
}

func (d *DateField) change(t *time.Time) {
	d.SetValue(t)
	if d.OnChange != nil {
		d.OnChange(d.Value())
	}
}

func (d DateField) View() string {
	if d.editing {
		view := d.input.View()
		if d.invalid {
			view += " " + styleMissing().Render("use YYYY-MM-DD")
		}
		return view
	}
	text := styleMissing().Render("not set")
	if d.value != nil {
		text = styleValue().Render(d.value.Format(dateLayout))
	}
	if d.focused {
		return styleMuted().Render("‹ ") + text + styleMuted().Render(" ›")
	}
	return text
}

// addMonthsClamped adds months keeping the day inside the target month, so
// Jan 31 + 1 month is the last day of February.
func addMonthsClamped(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}
	y, m, day := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
