package goals

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a stored goal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Goal is a persisted savings goal.
//
// Goals created through Creator.Create are stubs: only the icon is supplied
// by the caller, so Name, TargetDate and TargetAmount start empty and are
// filled in by later edits.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Icon          *string         `json:"icon,omitempty"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// HasIcon reports whether the goal carries an icon token.
func (g Goal) HasIcon() bool {
	return g.Icon != nil
}

// DisplayName returns the goal name, or a placeholder for unnamed stubs.
func (g Goal) DisplayName() string {
	if g.Name == "" {
		return "Untitled goal"
	}
	return g.Name
}

// Progress returns CurrentAmount/TargetAmount clamped to [0, 1]. Goals
// without a target report zero.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return p
}
