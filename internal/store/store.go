// Package store holds the application state shared between the goal list,
// the modal host and the forms rendered inside it.
//
// Both slices are plain setters with no combined transaction: callers that
// need several changes apply them one after another.
package store

import (
	"sync"

	"goalmanager/internal/goals"
)

// Display kinds understood by the modal host.
const (
	KindGoal       = "Goal"
	KindCreateGoal = "CreateGoal"
)

// Store bundles the shared slices.
type Store struct {
	Goals   *Goals
	Display *Display
}

// New returns an empty store with the host closed.
func New() *Store {
	return &Store{
		Goals:   &Goals{},
		Display: &Display{},
	}
}

// Goals is the shared goal collection. It is append-only from the form's
// point of view; Load replaces the whole set after a fetch and Replace
// refreshes a single goal.
type Goals struct {
	mu    sync.RWMutex
	items []goals.Goal
}

// Add appends a goal.
func (s *Goals) Add(g goals.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, g)
}

// Load replaces the collection.
func (s *Goals) Load(list []goals.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]goals.Goal(nil), list...)
}

// All returns a copy of the collection in insertion order.
func (s *Goals) All() []goals.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]goals.Goal(nil), s.items...)
}

// Len returns the number of goals.
func (s *Goals) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps in g for the stored goal with the same ID. It reports
// false, leaving the collection alone, when no such goal is stored.
func (s *Goals) Replace(g goals.Goal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == g.ID {
			s.items[i] = g
			return true
		}
	}
	return false
}

// Get looks a goal up by ID.
func (s *Goals) Get(id string) (goals.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.items {
		if g.ID == id {
			return g, true
		}
	}
	return goals.Goal{}, false
}

// Display is the shared "show this content" slot driving the modal host.
type Display struct {
	mu      sync.RWMutex
	open    bool
	content any
	kind    string
}

// SetContent replaces the content shown by the host.
func (d *Display) SetContent(content any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
}

// SetKind tags the content so the host knows how to render it.
func (d *Display) SetKind(kind string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kind = kind
}

// SetOpen shows or hides the host surface.
func (d *Display) SetOpen(open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = open
}

// Content returns the current content.
func (d *Display) Content() any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Kind returns the current content tag.
func (d *Display) Kind() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.kind
}

// IsOpen reports whether the host surface is visible.
func (d *Display) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.open
}

// Show is a convenience for hosts opening new content: it applies
// SetContent, SetKind and SetOpen(true) in that order.
func (d *Display) Show(kind string, content any) {
	d.SetContent(content)
	d.SetKind(kind)
	d.SetOpen(true)
}
