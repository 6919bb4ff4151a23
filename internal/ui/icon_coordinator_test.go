package ui

import (
	"testing"

	"goalmanager/internal/ui/pointer"
)

func newTestCoordinator() (*IconCoordinator, *Draft, *pointer.Document) {
	doc := pointer.NewDocument()
	doc.Mark("goal-form", pointer.Rect{X: 0, Y: 0, Width: 60, Height: 30})
	doc.Mark(markerIconPicker, pointer.Rect{X: 10, Y: 10, Width: 20, Height: 8})
	draft := NewDraft(testNow)
	return NewIconCoordinator(draft, doc), draft, doc
}

func TestIconCoordinatorStartsClosed(t *testing.T) {
	c, _, doc := newTestCoordinator()
	if c.IsOpen() || c.State() != IconPickerClosed {
		t.Fatal("expected closed picker")
	}
	if doc.ListenerCount() != 0 {
		t.Fatalf("expected no listeners, got %d", doc.ListenerCount())
	}
}

func TestIconCoordinatorOpenRegistersOneListener(t *testing.T) {
	c, _, doc := newTestCoordinator()

	c.Open(nil)
	c.Open(nil)
	c.Open(doc.NewEvent(1, 1))

	if !c.IsOpen() {
		t.Fatal("expected open picker")
	}
	if doc.ListenerCount() != 1 {
		t.Fatalf("expected exactly one listener, got %d", doc.ListenerCount())
	}

	c.Close()
	if c.IsOpen() || doc.ListenerCount() != 0 {
		t.Fatalf("expected closed with no listeners, open=%v listeners=%d", c.IsOpen(), doc.ListenerCount())
	}
}

func TestIconCoordinatorRapidToggleNeverLeaks(t *testing.T) {
	c, _, doc := newTestCoordinator()
	for i := 0; i < 50; i++ {
		c.Open(nil)
		if i%3 == 0 {
			c.Open(nil)
		}
		if doc.ListenerCount() != 1 {
			t.Fatalf("iteration %d: expected 1 listener while open, got %d", i, doc.ListenerCount())
		}
		c.Close()
		c.Close()
		if doc.ListenerCount() != 0 {
			t.Fatalf("iteration %d: expected 0 listeners while closed, got %d", i, doc.ListenerCount())
		}
	}
}

func TestIconCoordinatorOpeningPressDoesNotCloseIt(t *testing.T) {
	c, _, doc := newTestCoordinator()

	ev := doc.NewEvent(2, 2)
	c.Open(ev)
	if !ev.Stopped() {
		t.Fatal("expected the opening press to stop propagating")
	}
	doc.Dispatch(ev)

	if !c.IsOpen() {
		t.Fatal("expected picker to stay open after its own opening press")
	}
}

func TestIconCoordinatorOutsidePressCloses(t *testing.T) {
	c, draft, doc := newTestCoordinator()
	draft.SetIcon("🎯")
	c.Open(nil)

	doc.Dispatch(doc.NewEvent(2, 2))

	if c.IsOpen() {
		t.Fatal("expected outside press to close the picker")
	}
	if doc.ListenerCount() != 0 {
		t.Fatalf("expected listener removed, got %d", doc.ListenerCount())
	}
	if !draft.HasIcon() || *draft.Icon() != "🎯" {
		t.Fatal("expected outside press to leave the icon alone")
	}
}

func TestIconCoordinatorInsidePressKeepsOpen(t *testing.T) {
	c, _, doc := newTestCoordinator()
	c.Open(nil)

	doc.Dispatch(doc.NewEvent(12, 12))

	if !c.IsOpen() {
		t.Fatal("expected press inside the picker to keep it open")
	}
	if doc.ListenerCount() != 1 {
		t.Fatalf("expected listener kept, got %d", doc.ListenerCount())
	}
}

func TestIconCoordinatorSelectSetsIconAndCloses(t *testing.T) {
	c, draft, doc := newTestCoordinator()
	c.Open(nil)

	c.Select("🏖")

	if c.IsOpen() {
		t.Fatal("expected picker closed after selection")
	}
	if !draft.HasIcon() || *draft.Icon() != "🏖" {
		t.Fatalf("expected icon 🏖, got %v", draft.Icon())
	}
	if doc.ListenerCount() != 0 {
		t.Fatalf("expected listener removed, got %d", doc.ListenerCount())
	}
}

func TestIconCoordinatorSelectWhileClosedIsIgnored(t *testing.T) {
	c, draft, _ := newTestCoordinator()
	c.Select("🏖")
	if draft.HasIcon() {
		t.Fatal("expected selection without an open picker to be ignored")
	}
}

func TestIconCoordinatorIconSurvivesReopen(t *testing.T) {
	c, draft, _ := newTestCoordinator()

	c.Open(nil)
	c.Select("🎯")
	c.Open(nil)
	if *draft.Icon() != "🎯" {
		t.Fatal("expected reopening to keep the icon")
	}
	c.Close()
	if *draft.Icon() != "🎯" {
		t.Fatal("expected explicit close to keep the icon")
	}

	c.Open(nil)
	c.Select("🏠")
	if *draft.Icon() != "🏠" {
		t.Fatalf("expected replaced icon, got %q", *draft.Icon())
	}
}

func TestIconCoordinatorRemoveIconLeavesOverlayState(t *testing.T) {
	t.Run("WhileOpen", func(t *testing.T) {
		c, draft, doc := newTestCoordinator()
		draft.SetIcon("🎯")
		c.Open(nil)
		c.RemoveIcon()
		if draft.HasIcon() {
			t.Error("expected icon removed")
		}
		if !c.IsOpen() || doc.ListenerCount() != 1 {
			t.Error("expected picker to stay open")
		}
	})

	t.Run("WhileClosed", func(t *testing.T) {
		c, draft, doc := newTestCoordinator()
		draft.SetIcon("🎯")
		c.RemoveIcon()
		if draft.HasIcon() {
			t.Error("expected icon removed")
		}
		if c.IsOpen() || doc.ListenerCount() != 0 {
			t.Error("expected picker to stay closed")
		}
	})
}

func TestIconCoordinatorTeardownReleasesListener(t *testing.T) {
	c, _, doc := newTestCoordinator()
	c.Open(nil)
	c.Teardown()

	if doc.ListenerCount() != 0 {
		t.Fatalf("expected listener released, got %d", doc.ListenerCount())
	}
	doc.Dispatch(doc.NewEvent(2, 2))
	c.Teardown()
}
