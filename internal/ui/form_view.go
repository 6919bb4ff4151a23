package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"goalmanager/internal/ui/theme"
)

// Pointer markers for the form's controls.
const (
	markerForm       = "goal-form"
	markerName       = "name-input"
	markerDate       = "date-field"
	markerAmount     = "amount-input"
	markerAddIcon    = "icon-add"
	markerChangeIcon = "icon-change"
	markerRemoveIcon = "icon-remove"
	markerCancel     = "btn-cancel"
	markerCreate     = "btn-create"
	markerNotice     = "notice"
	markerNoticeOK   = "notice-ok"
)

const (
	formWidth       = 56
	formLabelWidth  = 18
	formInputWidth  = formWidth - 6
	formAmountWidth = 20
	modalPadY       = 1
	modalPadX       = 2
)

// rowPart is one horizontally joined piece of a form row.
type rowPart struct {
	content string
	marker  string
}

// layoutBuilder stacks form rows top to bottom and remembers where each
// marked part landed.
type layoutBuilder struct {
	lines   []string
	regions []region
}

func (b *layoutBuilder) blank() {
	b.lines = append(b.lines, "")
}

func (b *layoutBuilder) add(content, marker string) {
	b.row(rowPart{content: content, marker: marker})
}

func (b *layoutBuilder) row(parts ...rowPart) {
	top := len(b.lines)
	x := 0
	var joined []string
	for _, p := range parts {
		w, h := lipgloss.Width(p.content), lipgloss.Height(p.content)
		if p.marker != "" {
			b.regions = append(b.regions, region{marker: p.marker, rect: rectAt(x, top, w, h)})
		}
		x += w
		joined = append(joined, p.content)
	}
	b.lines = append(b.lines, splitLines(lipgloss.JoinHorizontal(lipgloss.Top, joined...))...)
}

// wrap renders the builder inside style, shifting regions by its frame.
func (b *layoutBuilder) wrap(style lipgloss.Style) block {
	dx := style.GetBorderLeftSize() + style.GetPaddingLeft()
	dy := style.GetBorderTopSize() + style.GetPaddingTop()
	regions := make([]region, len(b.regions))
	for i, r := range b.regions {
		r.rect.X += dx
		r.rect.Y += dy
		regions[i] = r
	}
	return block{
		content: style.Render(strings.Join(b.lines, "\n")),
		regions: regions,
	}
}

// Render draws the form body for the modal host.
func (f *CreateGoalForm) Render() block {
	var b layoutBuilder

	b.add(styleTitle().Render("Create New Goal"), "")
	b.blank()

	b.add(styleInput(f.focus == FocusName).Width(formWidth-2).Render(f.name.View()), markerName)
	b.blank()

	dateLabel := f.fieldLabel("📅 Target Date", FocusDate)
	b.row(rowPart{dateLabel, markerDate}, rowPart{f.date.View(), markerDate})
	b.blank()

	amountLabel := f.fieldLabel("💲 Target Amount", FocusAmount)
	amountView := f.amount.View()
	if f.focus == FocusAmount {
		amountView = styleValue().Render(amountView)
	}
	b.row(rowPart{amountLabel, markerAmount}, rowPart{amountView, markerAmount})
	b.blank()

	f.renderIconSection(&b)
	b.blank()

	cancel := styleButton(f.focus == FocusCancel).Render("Cancel")
	create := stylePrimaryButton(f.focus == FocusCreate).Render("Create Goal")
	gap := formWidth - lipgloss.Width(cancel) - lipgloss.Width(create) - 1
	if gap < 0 {
		gap = 0
	}
	b.row(
		rowPart{content: strings.Repeat(" ", gap)},
		rowPart{cancel, markerCancel},
		rowPart{content: " "},
		rowPart{create, markerCreate},
	)

	status := ""
	if f.inFlight > 0 {
		status = f.spinner.View() + " " + styleMuted().Render("Creating…")
	}
	b.add(status, "")
	b.add(f.renderHints(), "")

	return b.wrap(styleModal())
}

func (f *CreateGoalForm) fieldLabel(text string, zone FormFocus) string {
	style := styleFieldLabel()
	if f.focus == zone {
		style = style.Foreground(theme.Current().Primary()).Bold(true)
	}
	return style.Render(text)
}

func (f *CreateGoalForm) renderIconSection(b *layoutBuilder) {
	focused := f.focus == FocusIcon
	icon := f.draft.Icon()
	if icon == nil {
		b.add(styleAddIcon(focused).Width(formWidth-2).Render("☺  Add icon (optional)"), markerAddIcon)
		return
	}

	box := styleCurrentIcon(focused)
	change := styleLinkButton().Render("☺ Change")
	remove := styleRemoveButton().Render("×")

	var inner layoutBuilder
	inner.row(
		rowPart{content: styleTitle().Render(*icon) + "   "},
		rowPart{change, markerChangeIcon},
		rowPart{content: "  "},
		rowPart{remove, markerRemoveIcon},
	)
	nested := inner.wrap(box)

	top := len(b.lines)
	b.lines = append(b.lines, splitLines(nested.content)...)
	for _, r := range nested.regions {
		r.rect.Y += top
		b.regions = append(b.regions, r)
	}
}

func (f *CreateGoalForm) renderHints() string {
	bindings := []key.Binding{f.keys.Next, f.keys.Submit, f.keys.Cancel}
	if f.focus == FocusIcon && f.draft.HasIcon() {
		bindings = append(bindings, f.keys.Remove)
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styleKeyPill().Render(h.Key)+" "+styleKeyDesc().Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// RenderPicker draws the icon picker overlay when it is open.
func (f *CreateGoalForm) RenderPicker() (block, bool) {
	if !f.icons.IsOpen() {
		return block{}, false
	}
	return f.picker.Render(), true
}

// RenderNotice draws the blocking notice when one is showing.
func (f *CreateGoalForm) RenderNotice() (block, bool) {
	if f.notice == "" {
		return block{}, false
	}
	var b layoutBuilder
	b.add(styleRemoveButton().Render("⚠ "+f.notice), "")
	b.blank()
	b.add(styleButton(true).Render("OK"), markerNoticeOK)
	return b.wrap(styleNotice()), true
}
