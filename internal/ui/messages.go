package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"goalmanager/internal/goals"
)

const toastDuration = 3 * time.Second

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// goalLoadedMsg carries a goal re-read from storage.
type goalLoadedMsg struct {
	id   string
	goal goals.Goal
	err  error
}

const loadTimeout = 5 * time.Second

func loadGoal(client goals.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		g, err := client.Get(ctx, id)
		return goalLoadedMsg{id: id, goal: g, err: err}
	}
}
