package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"goalmanager/internal/goals"
	"goalmanager/internal/store"
)

func TestCreateGoalFormInitialState(t *testing.T) {
	form, host, doc := newTestForm(t, goals.NewMockClient())

	if form.Focus() != FocusName {
		t.Errorf("expected name focused, got %v", form.Focus())
	}
	if form.Icons().IsOpen() {
		t.Error("expected picker closed")
	}
	if doc.ListenerCount() != 0 {
		t.Errorf("expected no listeners, got %d", doc.ListenerCount())
	}
	if got := form.Draft().TargetDate(); got == nil || !got.Equal(testNow) {
		t.Errorf("expected default date now, got %v", got)
	}
	if len(host.calls) != 0 {
		t.Errorf("expected no host calls, got %v", host.calls)
	}
}

func TestCreateGoalFormInputsFeedDraft(t *testing.T) {
	form, _, _ := newTestForm(t, goals.NewMockClient())

	typeInto(form, "Car")
	if form.Draft().Name() != "Car" {
		t.Fatalf("expected name Car, got %q", form.Draft().Name())
	}

	form.Update(keyType(tea.KeyTab))
	form.Update(keyType(tea.KeyRight))
	if got := form.Draft().TargetDate(); got == nil || got.Format(dateLayout) != "2025-06-02" {
		t.Fatalf("expected date moved a day, got %v", got)
	}

	form.Update(keyType(tea.KeyTab))
	typeInto(form, "12a")
	if got := form.Draft().TargetAmount(); got == nil || *got != 12 {
		t.Fatalf("expected leading number 12, got %v", got)
	}
	if got := form.amount.Value(); got != "12" {
		t.Fatalf("expected amount input to show 12, got %q", got)
	}
	form.Update(keyType(tea.KeyBackspace))
	if got := form.Draft().TargetAmount(); got == nil || *got != 1 {
		t.Fatalf("expected amount 1, got %v", got)
	}
	form.Update(keyType(tea.KeyBackspace))
	typeInto(form, "-5")
	if form.Draft().TargetAmount() != nil || form.amount.Value() != "" {
		t.Fatalf("expected negative amount cleared, got %v shown %q", form.Draft().TargetAmount(), form.amount.Value())
	}
	typeInto(form, "2.")
	if got := form.amount.Value(); got != "2." {
		t.Fatalf("expected partial decimal to stay editable, got %q", got)
	}
}

func TestSubmitBlockedWhenIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *Draft)
	}{
		{name: "empty name", setup: func(d *Draft) { d.SetTargetAmountText("100") }},
		{name: "blank name", setup: func(d *Draft) { d.SetName("   "); d.SetTargetAmountText("100") }},
		{name: "no date", setup: func(d *Draft) { d.SetName("Trip"); d.SetTargetDate(nil); d.SetTargetAmountText("100") }},
		{name: "no amount", setup: func(d *Draft) { d.SetName("Trip") }},
		{name: "zero amount", setup: func(d *Draft) { d.SetName("Trip"); d.SetTargetAmountText("0") }},
		{name: "unparseable amount", setup: func(d *Draft) { d.SetName("Trip"); d.SetTargetAmountText("lots") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := goals.NewMockClient()
			form, host, _ := newTestForm(t, client)
			tt.setup(form.Draft())
			name := form.Draft().Name()

			if cmd := form.Submit(); cmd != nil {
				t.Fatal("expected no command for an incomplete draft")
			}
			if form.Notice() != requiredFieldsNotice {
				t.Fatalf("expected blocking notice, got %q", form.Notice())
			}
			if client.Calls() != 0 {
				t.Fatalf("expected no create call, got %d", client.Calls())
			}
			if len(host.calls) != 0 {
				t.Fatalf("expected no host calls, got %v", host.calls)
			}
			if form.Draft().Name() != name {
				t.Fatal("expected draft untouched")
			}
		})
	}
}

func TestCheckCompleteNamesMissingFields(t *testing.T) {
	d := NewDraft(testNow)
	d.SetTargetDate(nil)
	err := checkComplete(d)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"Name", "TargetDate", "TargetAmount"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in %q", field, err.Error())
		}
	}
}

func TestSubmitPublishesCreatedGoal(t *testing.T) {
	client := goals.NewMockClient()
	client.CreateFn = func(_ context.Context, icon *string) (*goals.Goal, error) {
		return &goals.Goal{ID: "g1", Icon: icon, Status: goals.StatusActive}, nil
	}
	form, host, _ := newTestForm(t, client)
	fillValidDraft(form)
	form.Icons().Open(nil)
	form.Icons().Select("🏖")

	res := createResult(t, form.Submit())
	if !form.Creating() {
		t.Fatal("expected create to be in flight")
	}
	form.finishCreate(res)

	if form.Creating() {
		t.Error("expected create to be finished")
	}
	want := []string{"add", "content", "kind:" + store.KindGoal}
	if strings.Join(host.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("expected calls %v, got %v", want, host.calls)
	}
	if host.added[0].ID != "g1" {
		t.Fatalf("expected goal g1 added, got %+v", host.added[0])
	}
	if g, ok := host.content.(goals.Goal); !ok || g.ID != "g1" {
		t.Fatalf("expected content to be the goal, got %#v", host.content)
	}
	if !host.open {
		t.Fatal("expected host to stay open")
	}
}

func TestSubmitSendsOnlyTheIcon(t *testing.T) {
	t.Run("WithIcon", func(t *testing.T) {
		client := goals.NewMockClient()
		form, _, _ := newTestForm(t, client)
		fillValidDraft(form)
		form.Draft().SetIcon("🎯")

		createResult(t, form.Submit())
		if len(client.CreateCallArgs) != 1 || client.CreateCallArgs[0] == nil || *client.CreateCallArgs[0] != "🎯" {
			t.Fatalf("expected icon 🎯 sent, got %v", client.CreateCallArgs)
		}
	})

	t.Run("WithoutIcon", func(t *testing.T) {
		client := goals.NewMockClient()
		form, _, _ := newTestForm(t, client)
		fillValidDraft(form)

		createResult(t, form.Submit())
		if len(client.CreateCallArgs) != 1 || client.CreateCallArgs[0] != nil {
			t.Fatalf("expected absent icon sent, got %v", client.CreateCallArgs)
		}
	})
}

func TestSubmitFailureIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		create func(context.Context, *string) (*goals.Goal, error)
	}{
		{name: "error", create: func(context.Context, *string) (*goals.Goal, error) { return nil, errors.New("boom") }},
		{name: "nil goal", create: func(context.Context, *string) (*goals.Goal, error) { return nil, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := goals.NewMockClient()
			client.CreateFn = tt.create
			form, host, _ := newTestForm(t, client)
			fillValidDraft(form)

			form.finishCreate(createResult(t, form.Submit()))

			if len(host.calls) != 0 {
				t.Fatalf("expected no host calls, got %v", host.calls)
			}
			if form.Notice() != "" {
				t.Fatalf("expected no notice, got %q", form.Notice())
			}
			if form.Draft().Name() != "Beach trip" {
				t.Fatalf("expected draft kept, got %q", form.Draft().Name())
			}
			if form.Creating() {
				t.Fatal("expected in-flight count reset")
			}
		})
	}
}

func TestSubmitTwiceCreatesTwiceByDefault(t *testing.T) {
	client := goals.NewMockClient()
	form, _, _ := newTestForm(t, client)
	fillValidDraft(form)

	first := form.Submit()
	second := form.Submit()
	createResult(t, first)
	createResult(t, second)

	if client.Calls() != 2 {
		t.Fatalf("expected two create calls, got %d", client.Calls())
	}
}

func TestSingleSubmitGuard(t *testing.T) {
	client := goals.NewMockClient()
	form, _, _ := newTestForm(t, client, func(o *CreateGoalFormOptions) { o.SingleSubmit = true })
	fillValidDraft(form)

	first := form.Submit()
	if second := form.Submit(); second != nil {
		t.Fatal("expected second submit to be ignored while in flight")
	}
	form.finishCreate(createResult(t, first))

	third := form.Submit()
	createResult(t, third)
	if client.Calls() != 2 {
		t.Fatalf("expected submits after completion to go through, got %d calls", client.Calls())
	}
}

func TestSubmitRunsCreateOffTheUpdateLoop(t *testing.T) {
	var mu sync.Mutex
	started := false
	client := goals.NewMockClient()
	client.CreateFn = func(context.Context, *string) (*goals.Goal, error) {
		mu.Lock()
		started = true
		mu.Unlock()
		return &goals.Goal{ID: "g1"}, nil
	}
	form, _, _ := newTestForm(t, client)
	fillValidDraft(form)

	cmd := form.Submit()
	mu.Lock()
	if started {
		t.Fatal("expected create to wait for the command to run")
	}
	mu.Unlock()
	createResult(t, cmd)
}

func TestCancel(t *testing.T) {
	client := goals.NewMockClient()
	form, host, _ := newTestForm(t, client)
	typeInto(form, "Half done")
	form.Icons().Open(nil)

	form.Cancel()

	if strings.Join(host.calls, ",") != "open:false" {
		t.Fatalf("expected only SetOpen(false), got %v", host.calls)
	}
	if client.Calls() != 0 {
		t.Fatal("expected no create call")
	}
}

func TestCreateGoalFormKeys(t *testing.T) {
	t.Run("EscCancels", func(t *testing.T) {
		form, host, _ := newTestForm(t, goals.NewMockClient())
		form.Update(keyType(tea.KeyEsc))
		if strings.Join(host.calls, ",") != "open:false" {
			t.Fatalf("expected cancel, got %v", host.calls)
		}
	})

	t.Run("EscClosesPickerFirst", func(t *testing.T) {
		form, host, doc := newTestForm(t, goals.NewMockClient())
		form.Icons().Open(nil)
		form.Update(keyType(tea.KeyEsc))
		if form.Icons().IsOpen() {
			t.Fatal("expected picker closed")
		}
		if doc.ListenerCount() != 0 {
			t.Fatal("expected listener released")
		}
		if len(host.calls) != 0 {
			t.Fatalf("expected no cancel, got %v", host.calls)
		}
	})

	t.Run("CtrlSSubmits", func(t *testing.T) {
		client := goals.NewMockClient()
		form, _, _ := newTestForm(t, client)
		fillValidDraft(form)
		_, cmd := form.Update(keyType(tea.KeyCtrlS))
		createResult(t, cmd)
		if client.Calls() != 1 {
			t.Fatalf("expected create call, got %d", client.Calls())
		}
	})

	t.Run("TabCyclesFocus", func(t *testing.T) {
		form, _, _ := newTestForm(t, goals.NewMockClient())
		order := []FormFocus{FocusDate, FocusAmount, FocusIcon, FocusCancel, FocusCreate, FocusName}
		for _, want := range order {
			form.Update(keyType(tea.KeyTab))
			if form.Focus() != want {
				t.Fatalf("expected focus %v, got %v", want, form.Focus())
			}
		}
		form.Update(keyType(tea.KeyShiftTab))
		if form.Focus() != FocusCreate {
			t.Fatalf("expected shift+tab to wrap to create, got %v", form.Focus())
		}
	})

	t.Run("EnterOnCreateButton", func(t *testing.T) {
		form, _, _ := newTestForm(t, goals.NewMockClient())
		for form.Focus() != FocusCreate {
			form.Update(keyType(tea.KeyTab))
		}
		form.Update(keyType(tea.KeyEnter))
		if form.Notice() != requiredFieldsNotice {
			t.Fatalf("expected gate notice, got %q", form.Notice())
		}
		form.Update(keyRunes("x"))
		if form.Notice() == "" {
			t.Fatal("expected notice to block other keys")
		}
		form.Update(keyType(tea.KeyEnter))
		if form.Notice() != "" {
			t.Fatal("expected enter to dismiss the notice")
		}
	})

	t.Run("IconZone", func(t *testing.T) {
		form, _, doc := newTestForm(t, goals.NewMockClient())
		for form.Focus() != FocusIcon {
			form.Update(keyType(tea.KeyTab))
		}
		form.Update(keyType(tea.KeyEnter))
		if !form.Icons().IsOpen() || doc.ListenerCount() != 1 {
			t.Fatal("expected enter to open the picker")
		}
		form.Update(keyType(tea.KeyRight))
		form.Update(keyType(tea.KeyEnter))
		if form.Icons().IsOpen() {
			t.Fatal("expected selection to close the picker")
		}
		if got := form.Draft().Icon(); got == nil || *got != testPalette[1] {
			t.Fatalf("expected icon %q, got %v", testPalette[1], got)
		}
		form.Update(keyRunes("x"))
		if form.Draft().HasIcon() {
			t.Fatal("expected x to remove the icon")
		}
	})
}

func TestCreateGoalFormPointerPresses(t *testing.T) {
	form, host, doc := newTestForm(t, goals.NewMockClient())
	placed := placement{block: form.Render(), x: 5, y: 2}
	placed.mark(doc, markerForm)

	press := func(marker string) tea.Cmd {
		t.Helper()
		r, ok := doc.Region(marker)
		if !ok {
			t.Fatalf("region %q not marked", marker)
		}
		ev := doc.NewEvent(r.X, r.Y)
		cmd := form.HandlePress(ev)
		if !ev.Stopped() {
			doc.Dispatch(ev)
		}
		return cmd
	}

	press(markerAddIcon)
	if !form.Icons().IsOpen() {
		t.Fatal("expected add icon press to open the picker")
	}
	if doc.ListenerCount() != 1 {
		t.Fatalf("expected one listener, got %d", doc.ListenerCount())
	}

	press(markerName)
	if form.Icons().IsOpen() {
		t.Fatal("expected press outside the picker to close it")
	}
	if form.Focus() != FocusName {
		t.Fatalf("expected name focused, got %v", form.Focus())
	}

	press(markerCreate)
	if form.Notice() != requiredFieldsNotice {
		t.Fatal("expected create press to run the gate")
	}
	form.Update(keyType(tea.KeyEsc))

	press(markerCancel)
	if strings.Join(host.calls, ",") != "open:false" {
		t.Fatalf("expected cancel press to close the host, got %v", host.calls)
	}
}

func TestCreateGoalFormRender(t *testing.T) {
	form, _, _ := newTestForm(t, goals.NewMockClient())

	b := form.Render()
	for _, want := range []string{"Create New Goal", "goal name...", "Target Date", "2025-06-01", "Target Amount", "Add icon (optional)", "Cancel", "Create Goal"} {
		if !strings.Contains(b.content, want) {
			t.Errorf("expected %q in form view", want)
		}
	}

	form.Draft().SetIcon("🏖")
	b = form.Render()
	if strings.Contains(b.content, "Add icon (optional)") {
		t.Error("expected add icon affordance hidden once an icon is set")
	}
	for _, want := range []string{"🏖", "Change", "×"} {
		if !strings.Contains(b.content, want) {
			t.Errorf("expected %q in icon section", want)
		}
	}
	markers := map[string]bool{}
	for _, r := range b.regions {
		markers[r.marker] = true
	}
	if !markers[markerChangeIcon] || !markers[markerRemoveIcon] || markers[markerAddIcon] {
		t.Errorf("unexpected icon regions: %v", markers)
	}

	if _, ok := form.RenderPicker(); ok {
		t.Error("expected no picker block while closed")
	}
	form.Icons().Open(nil)
	if _, ok := form.RenderPicker(); !ok {
		t.Error("expected picker block while open")
	}

	form.Icons().Close()
	form.Submit()
	notice, ok := form.RenderNotice()
	if !ok || !strings.Contains(notice.content, requiredFieldsNotice) {
		t.Fatalf("expected notice block, got %q", notice.content)
	}
}

func TestCreateGoalFormTeardown(t *testing.T) {
	form, _, doc := newTestForm(t, goals.NewMockClient())
	form.Icons().Open(nil)
	form.Teardown()
	if doc.ListenerCount() != 0 {
		t.Fatalf("expected teardown to release the listener, got %d", doc.ListenerCount())
	}
	if form.Icons().IsOpen() {
		t.Fatal("expected picker closed after teardown")
	}
}
