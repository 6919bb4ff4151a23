package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"goalmanager/internal/debug"
	appErrors "goalmanager/internal/errors"
	"goalmanager/internal/goals"
	"goalmanager/internal/store"
	"goalmanager/internal/ui/pointer"
	"goalmanager/internal/ui/theme"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	markerGoalRow = "goal-row-"
	markerDetail  = "goal-detail"
)

// Config configures the UI application.
type Config struct {
	Client       goals.Client
	Store        *store.Store
	OutputFormat string
	IconPalette  []string
	SingleSubmit bool
	Version      string
	Now          func() time.Time

	// SaveTheme persists a theme chosen with T. Nil skips persistence.
	SaveTheme func(name string) error
	// Clipboard writes copied goal IDs. Defaults to the system clipboard.
	Clipboard func(text string) error
}

// App implements the Bubble Tea model for the goal manager.
type App struct {
	client goals.Client
	store  *store.Store
	doc    *pointer.Document
	keys   KeyMap

	cursor  int
	listTop int
	width   int
	height  int

	outputFormat string
	version      string
	palette      []string
	singleSubmit bool
	now          func() time.Time
	saveTheme    func(string) error
	clipboard    func(string) error

	form   *CreateGoalForm
	detail *GoalDetail

	toastText    string
	toastStart   time.Time
	toastVisible bool
}

// NewApp loads the stored goals and returns the root model.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "goal client is required", nil)
	}
	st := cfg.Store
	if st == nil {
		st = store.New()
	}
	list, err := cfg.Client.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	st.Goals.Load(list)
	debug.Event("goals loaded", "count", len(list))

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	return &App{
		client:       cfg.Client,
		store:        st,
		doc:          pointer.NewDocument(),
		keys:         DefaultKeyMap(),
		width:        defaultWidth,
		height:       defaultHeight,
		outputFormat: cfg.OutputFormat,
		version:      cfg.Version,
		palette:      cfg.IconPalette,
		singleSubmit: cfg.SingleSubmit,
		now:          now,
		saveTheme:    cfg.SaveTheme,
		clipboard:    copyFn,
	}, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	return m.syncHost()
}

// Store exposes the shared state, mainly for tests and the entry point.
func (m *App) Store() *store.Store { return m.store }

// Document exposes the pointer document.
func (m *App) Document() *pointer.Document { return m.doc }

// Form returns the create goal form when the host shows one.
func (m *App) Form() *CreateGoalForm { return m.form }

// Detail returns the goal detail when the host shows one.
func (m *App) Detail() *GoalDetail { return m.detail }

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.detail != nil {
			m.detail.SetSize(m.width, m.height)
		}
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	case goalCreateResultMsg:
		msg.form.finishCreate(msg)
		if msg.goal != nil && msg.err == nil {
			m.cursor = m.store.Goals.Len() - 1
		}
	case goalLoadedMsg:
		m.refreshGoal(msg)
	case toastTickMsg:
		if m.toastVisible && time.Since(m.toastStart) < toastDuration {
			cmds = append(cmds, scheduleToastTick())
		} else {
			m.toastVisible = false
		}
	default:
		if m.form != nil {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.syncHost())
	return m, tea.Batch(cmds...)
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return cmd
	}
	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Goals.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.store.Display.Show(store.KindCreateGoal, nil)
	case key.Matches(msg, m.keys.Enter):
		if g, ok := m.selectedGoal(); ok {
			m.store.Display.Show(store.KindGoal, g)
			return loadGoal(m.client, g.ID)
		}
	case key.Matches(msg, m.keys.Copy):
		if g, ok := m.selectedGoal(); ok {
			return m.copyID(g.ID)
		}
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	}
	return nil
}

func (m *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.store.Display.SetOpen(false)
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyID(m.detail.Goal().ID)
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

// handleMouse turns a left press into a pointer event. Controls under the
// press see it first; document listeners see it unless it was stopped.
func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	m.layout()
	ev := m.doc.NewEvent(msg.X, msg.Y)

	var cmd tea.Cmd
	switch {
	case m.form != nil:
		cmd = m.form.HandlePress(ev)
	case m.detail != nil:
		// the detail has no pressable controls
	case strings.HasPrefix(ev.Target(), markerGoalRow):
		if idx, err := strconv.Atoi(strings.TrimPrefix(ev.Target(), markerGoalRow)); err == nil {
			m.cursor = idx
		}
	}

	if !ev.Stopped() {
		m.doc.Dispatch(ev)
	}
	return cmd
}

// syncHost makes the modal host match the display store: the form for
// CreateGoal, the detail for Goal, nothing when closed. A form that leaves
// the host is torn down.
func (m *App) syncHost() tea.Cmd {
	d := m.store.Display
	if !d.IsOpen() {
		m.closeForm()
		m.detail = nil
		return nil
	}

	switch d.Kind() {
	case store.KindCreateGoal:
		m.detail = nil
		if m.form == nil {
			m.form = NewCreateGoalForm(CreateGoalFormOptions{
				Creator:      m.client,
				Goals:        m.store.Goals,
				Display:      m.store.Display,
				Document:     m.doc,
				Palette:      m.palette,
				Now:          m.now,
				SingleSubmit: m.singleSubmit,
			})
			return m.form.Init()
		}
	case store.KindGoal:
		m.closeForm()
		goal, ok := d.Content().(goals.Goal)
		if !ok {
			m.detail = nil
			return nil
		}
		if stored, ok := m.store.Goals.Get(goal.ID); ok {
			goal = stored
		}
		if m.detail == nil || m.detail.Goal().ID != goal.ID {
			m.detail = NewGoalDetail(goal, m.outputFormat, m.width, m.height)
		}
	default:
		m.closeForm()
		m.detail = nil
	}
	return nil
}

// refreshGoal stores a freshly loaded goal and rebuilds the detail when it
// is showing that goal.
func (m *App) refreshGoal(msg goalLoadedMsg) {
	if msg.err != nil {
		debug.Event("load goal failed", "id", msg.id, "error", msg.err, "code", appErrors.CodeOf(msg.err))
		return
	}
	if !m.store.Goals.Replace(msg.goal) {
		return
	}
	if m.detail != nil && m.detail.Goal().ID == msg.goal.ID {
		m.detail = nil
	}
}

func (m *App) closeForm() {
	if m.form == nil {
		return
	}
	m.form.Teardown()
	m.form = nil
}

func (m *App) selectedGoal() (goals.Goal, bool) {
	all := m.store.Goals.All()
	if m.cursor < 0 || m.cursor >= len(all) {
		return goals.Goal{}, false
	}
	return all[m.cursor], true
}

func (m *App) copyID(id string) tea.Cmd {
	if err := m.clipboard(id); err != nil {
		debug.Event("clipboard write failed", "error", err)
		return nil
	}
	return m.showToast(fmt.Sprintf("Copied '%s' to clipboard.", id))
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			debug.Event("save theme failed", "theme", name, "error", err)
		}
	}
	if m.detail != nil {
		m.detail.SetSize(m.width, m.height)
	}
	return m.showToast("Theme: " + name)
}

func (m *App) showToast(text string) tea.Cmd {
	m.toastText = text
	m.toastStart = time.Now()
	m.toastVisible = true
	return scheduleToastTick()
}
