// Package pointer routes mouse presses through a document-scope listener
// registry, the terminal counterpart of a browser document.
//
// Views mark the screen rectangles they occupy under a marker name, in
// paint order: a region marked later is drawn above the ones before it. A
// press becomes an Event whose target chain is every marked region under
// the point, bottom to top. Element handlers see the event first; if none
// of them stops propagation the event is then delivered to every document
// listener.
package pointer

import "sync"

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Event is a single pointer press.
type Event struct {
	X, Y    int
	targets []string
	stopped bool
}

// Closest reports whether the press landed inside the region marked with
// marker, at any depth.
func (e *Event) Closest(marker string) bool {
	for _, t := range e.targets {
		if t == marker {
			return true
		}
	}
	return false
}

// Target returns the topmost marked region under the press, or "" when the
// press hit unmarked space.
func (e *Event) Target() string {
	if len(e.targets) == 0 {
		return ""
	}
	return e.targets[len(e.targets)-1]
}

// StopPropagation keeps the event from reaching document listeners.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener receives presses at document scope.
type Listener func(*Event)

// Document owns the marked regions and the listener registry.
type Document struct {
	mu        sync.Mutex
	marks     []mark
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
}

type mark struct {
	marker string
	rect   Rect
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		listeners: make(map[uint64]Listener),
	}
}

// Mark records a rectangle occupied by marker above everything marked so
// far. A marker may cover several rectangles.
func (d *Document) Mark(marker string, r Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marks = append(d.marks, mark{marker: marker, rect: r})
}

// ClearRegions forgets every marked region. Listeners are kept.
func (d *Document) ClearRegions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marks = d.marks[:0]
}

// Region returns the most recently marked rectangle for marker.
func (d *Document) Region(marker string) (Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.marks) - 1; i >= 0; i-- {
		if d.marks[i].marker == marker {
			return d.marks[i].rect, true
		}
	}
	return Rect{}, false
}

// AddListener registers l and returns its remover. The remover is safe to
// call more than once.
func (d *Document) AddListener(l Listener) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners[id] = l
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners, id)
			for i, v := range d.order {
				if v == id {
					d.order = append(d.order[:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Document) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// NewEvent builds the event for a press at (x, y). Targets are ordered by
// paint order, so the region drawn on top comes last. A marker hit through
// several rectangles appears once, at its topmost position.
func (d *Document) NewEvent(x, y int) *Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	ev := &Event{X: x, Y: y}
	seen := make(map[string]int)
	for _, m := range d.marks {
		if !m.rect.Contains(x, y) {
			continue
		}
		if i, ok := seen[m.marker]; ok {
			ev.targets = append(ev.targets[:i], ev.targets[i+1:]...)
			for k, v := range seen {
				if v > i {
					seen[k] = v - 1
				}
			}
		}
		seen[m.marker] = len(ev.targets)
		ev.targets = append(ev.targets, m.marker)
	}
	return ev
}

// Dispatch delivers ev to the document listeners registered at the time of
// the call, unless propagation was stopped. A listener removed by an earlier
// listener during the same dispatch is skipped; listeners added during
// dispatch only see later events.
func (d *Document) Dispatch(ev *Event) {
	if ev == nil || ev.stopped {
		return
	}
	d.mu.Lock()
	ids := append([]uint64(nil), d.order...)
	d.mu.Unlock()

	for _, id := range ids {
		d.mu.Lock()
		l, ok := d.listeners[id]
		d.mu.Unlock()
		if !ok {
			continue
		}
		l(ev)
	}
}
