package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"casevis/pkg/config"
	"casevis/pkg/export"
	"casevis/pkg/filter"
	"casevis/pkg/loader"
	"casevis/pkg/mapctl"
	"casevis/pkg/model"
	"casevis/pkg/notes"
	"casevis/pkg/store"
)

// Panel identifies a focusable region of the dashboard.
type Panel int

const (
	PanelMap Panel = iota
	PanelGraph
	PanelTimeline
	PanelOptions
	panelCount
)

// ReloadMsg asks the app to re-read the data directory. The watcher sends
// it through Program.Send; the R key produces it locally.
type ReloadMsg struct{}

// filterChangedMsg signals that the filter state mutated. The payload is
// intentionally absent: the app always derives from the latest snapshot,
// so collapsed bursts of mutations cost nothing.
type filterChangedMsg struct{}

// panMsg is a recenter request from the cross-view channel.
type panMsg struct {
	lat float64
	lng float64
}

type statusMsg string

// reloadedMsg carries a freshly validated store back onto the update loop,
// so the swap never races with rendering.
type reloadedMsg struct {
	store *store.Store
}

// App is the root dashboard model wiring the four panels, the detail pane
// and the modal overlays over one filter store.
type App struct {
	theme Theme
	cfg   *config.Config

	data    *store.Store
	filters *filter.Store
	derived filter.Derived
	ctrl    *mapctl.Controller
	noteDB  *notes.DB

	mapView  MapView
	graph    GraphView
	timeline Timeline
	options  OptionsPanel
	detail   DetailPane

	search    *SearchOverlay
	noteInput *NoteInput
	help      HelpOverlay

	focus  Panel
	width  int
	height int
	status string

	stateCh    chan struct{}
	panCh      chan panMsg
	releasePan func()
}

// NewApp assembles the dashboard over a loaded store. The initial filter
// state covers the full time span with the play head at its end, so the
// first frame shows everything.
func NewApp(theme Theme, cfg *config.Config, s *store.Store, noteDB *notes.DB) *App {
	initial := filter.State{MapZoom: MinZoom}
	if min, max, ok := s.TimeSpan(); ok {
		start, end, head := min, max, max
		initial.DateRange = filter.DateRange{Start: &start, End: &end}
		initial.CurrentTimePoint = &head
	}

	a := &App{
		theme:   theme,
		cfg:     cfg,
		data:    s,
		filters: filter.NewStore(initial),
		ctrl:    mapctl.NewController(),
		noteDB:  noteDB,

		graph:    NewGraphView(theme),
		help:     NewHelpOverlay(theme),
		timeline: NewTimeline(theme),
		options:  NewOptionsPanel(theme, s.Cases),
		detail:   NewDetailPane(theme),

		stateCh: make(chan struct{}, 1),
		panCh:   make(chan panMsg, 1),
	}

	a.mapView = NewMapView(theme, model.MapBounds{}, MinZoom)
	a.mapView.FitTo(s.Locations)
	a.timeline.SetRange(initial.DateRange.Start, initial.DateRange.End)
	a.timeline.SetHead(initial.CurrentTimePoint)

	a.filters.Subscribe(func(filter.State) {
		select {
		case a.stateCh <- struct{}{}:
		default:
		}
	})
	a.releasePan = a.ctrl.Register(func(lat, lng float64) {
		select {
		case a.panCh <- panMsg{lat: lat, lng: lng}:
		default:
		}
	})

	a.publishViewport()
	a.refresh()
	return a
}

// publishViewport writes the map's bounds and zoom into the filter state.
func (a *App) publishViewport() {
	b := a.mapView.Bounds()
	a.filters.SetMapBounds(&b)
	a.filters.SetMapZoom(a.mapView.Zoom())
}

// refresh recomputes the derived projections and feeds them to the panels.
func (a *App) refresh() {
	st := a.filters.State()
	a.derived = filter.Derive(a.data, st)
	a.graph.SetData(a.derived.VisibleIndividuals,
		filter.VisibleRelationships(a.data, a.derived.VisibleIndividuals))
	a.timeline.SetRange(st.DateRange.Start, st.DateRange.End)
	a.timeline.SetHead(st.CurrentTimePoint)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitFilter(), a.waitPan())
}

func (a *App) waitFilter() tea.Cmd {
	return func() tea.Msg {
		<-a.stateCh
		return filterChangedMsg{}
	}
}

func (a *App) waitPan() tea.Cmd {
	return func() tea.Msg {
		return panMsg(<-a.panCh)
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case filterChangedMsg:
		a.refresh()
		return a, a.waitFilter()

	case panMsg:
		a.mapView.CenterOn(msg.lat, msg.lng)
		a.publishViewport()
		return a, a.waitPan()

	case ReloadMsg:
		return a, a.reload()

	case reloadedMsg:
		a.data = msg.store
		a.options.SetCases(msg.store.Cases)
		a.refresh()
		a.status = fmt.Sprintf("reloaded %d events across %d cases",
			len(msg.store.Events), len(msg.store.Cases))
		return a, nil

	case statusMsg:
		a.status = string(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal overlays swallow all keys while open.
	if a.help.IsVisible() {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}
	if a.search != nil {
		next, cmd := a.search.Update(msg)
		a.search = &next
		if sel, ok := next.Chosen(); ok {
			a.search = nil
			a.open(sel)
		} else if next.IsCancelled() {
			a.search = nil
		}
		return a, cmd
	}
	if a.noteInput != nil {
		next, cmd := a.noteInput.Update(msg)
		a.noteInput = &next
		if next.IsSubmitted() {
			a.saveNote(next.Target(), next.Text())
			a.noteInput = nil
		} else if next.IsCancelled() {
			a.noteInput = nil
		}
		return a, cmd
	}

	// An open date entry owns the keyboard ahead of global shortcuts.
	if a.focus == PanelTimeline && a.timeline.Editing() {
		return a.handleTimelineKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		a.releasePan()
		return a, tea.Quit
	case "tab":
		a.focus = (a.focus + 1) % panelCount
		return a, nil
	case "shift+tab":
		a.focus = (a.focus + panelCount - 1) % panelCount
		return a, nil
	case "?":
		a.help.Toggle()
		return a, nil
	case "/":
		so := NewSearchOverlay(a.theme, a.data)
		so.SetSize(a.width / 2)
		a.search = &so
		return a, nil
	case "n":
		if sel := a.detail.Selection(); sel.ID != "" && a.noteDB != nil {
			ni := NewNoteInput(a.theme, a.selectionTitle(sel), sel)
			ni.SetSize(a.width)
			a.noteInput = &ni
			return a, ni.Init()
		}
		a.status = "nothing selected to annotate"
		return a, nil
	case "y":
		if sel := a.detail.Selection(); sel.ID != "" {
			if err := clipboard.WriteAll(sel.ID); err == nil {
				a.status = "copied " + sel.ID
			}
		}
		return a, nil
	case "C":
		a.filters.ClearSelections()
		a.status = "filters cleared"
		return a, nil
	case "R":
		return a, a.reload()
	case "E":
		return a, a.exportGraph()
	case "M":
		return a, a.exportMap()
	case "f":
		a.mapView.FitTo(a.derived.Locations)
		a.publishViewport()
		return a, nil
	case "J":
		a.detail.Scroll(3)
		return a, nil
	case "K":
		a.detail.Scroll(-3)
		return a, nil
	}

	switch a.focus {
	case PanelMap:
		return a.handleMapKey(msg)
	case PanelGraph:
		return a.handleGraphKey(msg)
	case PanelTimeline:
		return a.handleTimelineKey(msg)
	case PanelOptions:
		return a.handleOptionsKey(msg)
	}
	return a, nil
}

func (a *App) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const step = 0.15
	switch msg.String() {
	case "h", "left":
		a.mapView.Pan(-step, 0)
	case "l", "right":
		a.mapView.Pan(step, 0)
	case "k", "up":
		a.mapView.Pan(0, step)
	case "j", "down":
		a.mapView.Pan(0, -step)
	case "+", "=":
		a.mapView.ZoomIn()
	case "-", "_":
		a.mapView.ZoomOut()
	case ",":
		a.mapView.MoveCursor(a.derived.Locations, -1)
		return a, nil
	case ".":
		a.mapView.MoveCursor(a.derived.Locations, 1)
		return a, nil
	case "enter":
		if loc, ok := a.mapView.CursorLocation(a.derived.Locations); ok {
			a.open(Selection{Kind: notes.KindLocation, ID: loc.ID})
		}
		return a, nil
	default:
		return a, nil
	}
	a.publishViewport()
	return a, nil
}

func (a *App) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.graph.MoveCursor(1)
	case "k", "up":
		a.graph.MoveCursor(-1)
	case "enter":
		if ind, ok := a.graph.Selected(); ok {
			a.open(Selection{Kind: notes.KindIndividual, ID: ind.ID})
			a.ctrl.PanToIndividual(a.data, ind.ID)
		}
	}
	return a, nil
}

func (a *App) handleTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.timeline.Editing() {
		changed, cmd := a.timeline.HandleEditKey(msg)
		if changed {
			a.publishRange()
		}
		return a, cmd
	}

	var head *time.Time
	var changed bool

	switch s := msg.String(); s {
	case "left", "h":
		head, changed = a.timeline.StepDays(-1)
	case "right", "l":
		head, changed = a.timeline.StepDays(1)
	case "shift+left", "H":
		head, changed = a.timeline.StepDays(-7)
	case "shift+right", "L":
		head, changed = a.timeline.StepDays(7)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		head, changed = a.timeline.JumpToPercent(float64(s[0]-'0') / 9)
	case "[":
		if a.timeline.ShiftRange(-1, 0) {
			a.publishRange()
		}
		return a, nil
	case "]":
		if a.timeline.ShiftRange(1, 0) {
			a.publishRange()
		}
		return a, nil
	case "{":
		if a.timeline.ShiftRange(0, -1) {
			a.publishRange()
		}
		return a, nil
	case "}":
		if a.timeline.ShiftRange(0, 1) {
			a.publishRange()
		}
		return a, nil
	case "s":
		a.timeline.BeginEditStart()
		return a, nil
	case "e":
		a.timeline.BeginEditEnd()
		return a, nil
	default:
		return a, nil
	}

	if changed {
		a.filters.SetCurrentTimePoint(head)
	}
	return a, nil
}

func (a *App) publishRange() {
	start, end := a.timeline.Range()
	a.filters.SetDateRange(start, end)
	a.filters.SetCurrentTimePoint(a.timeline.Head())
}

func (a *App) handleOptionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.options.MoveCursor(1)
	case "k", "up":
		a.options.MoveCursor(-1)
	case " ", "enter":
		a.options.Toggle(a.filters)
	}
	return a, nil
}

// open shows an entity in the detail pane with its stored notes.
func (a *App) open(sel Selection) {
	var entityNotes []notes.Note
	if a.noteDB != nil {
		if ns, err := a.noteDB.ForEntity(sel.Kind, sel.ID); err == nil {
			entityNotes = ns
		}
	}
	a.detail.Show(a.data, sel, entityNotes)
}

func (a *App) saveNote(sel Selection, text string) {
	if a.noteDB == nil {
		return
	}
	err := a.noteDB.Add(&notes.Note{
		EntityKind: sel.Kind,
		EntityID:   sel.ID,
		Author:     a.cfg.Author,
		Text:       text,
	})
	if err != nil {
		a.status = "note not saved: " + err.Error()
		return
	}
	a.status = "note saved"
	a.open(sel)
}

func (a *App) selectionTitle(sel Selection) string {
	switch sel.Kind {
	case notes.KindCase:
		if c, ok := a.data.CaseByID(sel.ID); ok {
			return c.Name
		}
	case notes.KindLocation:
		if loc, ok := a.data.LocationByID(sel.ID); ok {
			return loc.Name
		}
	case notes.KindEvent:
		if ev, ok := a.data.EventByID(sel.ID); ok {
			return ev.Name
		}
	case notes.KindIndividual:
		if ind, ok := a.data.IndividualByID(sel.ID); ok {
			return ind.Name
		}
	}
	return sel.ID
}

func (a *App) reload() tea.Cmd {
	dataDir := a.cfg.DataDir
	return func() tea.Msg {
		ds, err := loader.LoadDataset(dataDir)
		if err != nil {
			return statusMsg("reload failed: " + err.Error())
		}
		s, err := store.New(ds)
		if err != nil {
			return statusMsg("reload rejected: " + err.Error())
		}
		return reloadedMsg{store: s}
	}
}

func (a *App) exportGraph() tea.Cmd {
	individuals := a.derived.VisibleIndividuals
	rels := filter.VisibleRelationships(a.data, individuals)
	positions := a.graph.Positions()
	dir := a.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.SaveGraphSVG(dir, individuals, rels, positions, 1200, 800)
		if err != nil {
			return statusMsg("export failed: " + err.Error())
		}
		return statusMsg("wrote " + path)
	}
}

func (a *App) exportMap() tea.Cmd {
	locations := a.derived.Locations
	bounds := a.mapView.Bounds()
	dir := a.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.SaveMapPNG(dir, locations, bounds, 1280, 960)
		if err != nil {
			return statusMsg("export failed: " + err.Error())
		}
		return statusMsg("wrote " + path)
	}
}

// layout distributes the window between the panels.
func (a *App) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	half := a.width/2 - 2
	topH := a.height - 16
	if topH < 6 {
		topH = 6
	}
	a.mapView.SetSize(half, topH)
	a.graph.SetSize(half, topH)
	a.timeline.SetSize(a.width - 4)
	a.options.SetSize(half, 8)
	a.detail.SetSize(half, 8)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width <= 0 {
		return "loading..."
	}

	if a.help.IsVisible() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.help.View())
	}
	if a.search != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.search.View())
	}
	if a.noteInput != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.noteInput.View())
	}

	st := a.filters.State()

	header := a.renderHeader()
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		a.theme.PanelStyle(a.focus == PanelMap).Render(a.mapView.Render(a.derived.Locations)),
		a.theme.PanelStyle(a.focus == PanelGraph).Render(a.graph.Render()),
	)
	mid := a.theme.PanelStyle(a.focus == PanelTimeline).Render(a.timeline.Render())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		a.theme.PanelStyle(a.focus == PanelOptions).Render(a.options.Render(st)),
		a.theme.PanelStyle(false).Render(a.detail.View()),
	)

	help := a.theme.Renderer.NewStyle().Foreground(a.theme.Muted).Render(
		"tab focus  / search  n note  y copy  E/M export  C clear  R reload  ? help  q quit")
	statusLine := a.theme.Renderer.NewStyle().Foreground(a.theme.Subtext).Render(a.status)

	return lipgloss.JoinVertical(lipgloss.Left, header, top, mid, bottom, help, statusLine)
}

func (a *App) renderHeader() string {
	title := a.theme.Renderer.NewStyle().Bold(true).Foreground(a.theme.Primary).
		Render("casevis")

	parts := []string{title}
	for _, c := range a.data.Cases {
		parts = append(parts, RenderCaseStatusBadge(c.Status)+" "+c.Name)
	}
	line := strings.Join(parts, "  ")
	return line + "\n" + RenderDivider(a.width)
}
