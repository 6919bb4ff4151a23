package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"goalmanager/internal/goals"
)

const (
	maxDetailWidth  = 72
	maxDetailHeight = 20
)

// GoalDetail shows a single goal inside the modal host.
type GoalDetail struct {
	goal     goals.Goal
	format   string
	viewport viewport.Model
}

func NewGoalDetail(goal goals.Goal, format string, screenWidth, screenHeight int) *GoalDetail {
	d := &GoalDetail{goal: goal, format: format}
	d.SetSize(screenWidth, screenHeight)
	return d
}

func (d *GoalDetail) Goal() goals.Goal { return d.goal }

// SetSize fits the detail to the screen and re-renders its content.
func (d *GoalDetail) SetSize(screenWidth, screenHeight int) {
	width := clampDimension(screenWidth-8, 20, maxDetailWidth)
	body := buildMarkdownRenderer(d.format, width)(goalMarkdown(d.goal))
	height := clampDimension(screenHeight-8, 3, maxDetailHeight)
	if lines := len(splitLines(body)); lines < height {
		height = lines
	}
	d.viewport = viewport.New(width, height)
	d.viewport.SetContent(body)
}

func (d *GoalDetail) Update(msg tea.Msg) (*GoalDetail, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// Render draws the detail box.
func (d *GoalDetail) Render() block {
	hints := styleKeyPill().Render("y") + " " + styleKeyDesc().Render("Copy ID") + "  " +
		styleKeyPill().Render("esc") + " " + styleKeyDesc().Render("Close")
	content := strings.Join([]string{d.viewport.View(), "", hints}, "\n")
	return block{content: styleModal().Render(content)}
}

// goalMarkdown describes a goal as markdown for glamour.
func goalMarkdown(g goals.Goal) string {
	var b strings.Builder
	title := g.DisplayName()
	if g.HasIcon() {
		title = *g.Icon + " " + title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **ID:** `%s`\n", g.ID)
	fmt.Fprintf(&b, "- **Status:** %s\n", g.Status)
	due := formatDate(g.TargetDate)
	if rel := FormatDueIn(g.TargetDate); rel != "" {
		due += " (" + rel + ")"
	}
	fmt.Fprintf(&b, "- **Target date:** %s\n", due)
	target := "not set"
	if !g.TargetAmount.IsZero() {
		target = formatAmount(g.TargetAmount)
	}
	fmt.Fprintf(&b, "- **Target amount:** %s\n", target)
	fmt.Fprintf(&b, "- **Saved so far:** %s (%s)\n", formatAmount(g.CurrentAmount), formatProgress(g.Progress()))
	if !g.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Created:** %s\n", FormatRelativeTime(g.CreatedAt))
	}
	return b.String()
}

func clampDimension(value, minValue, maxValue int) int {
	if maxValue < minValue {
		maxValue = minValue
	}
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
