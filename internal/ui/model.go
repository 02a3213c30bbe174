package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adasviz/zodmap/internal/api"
	"github.com/adasviz/zodmap/internal/config"
	"github.com/adasviz/zodmap/internal/prefs"
	"github.com/adasviz/zodmap/internal/preview"
	"github.com/adasviz/zodmap/internal/state"
	"github.com/adasviz/zodmap/internal/viewport"
)

// Messages delivered by background fetch commands. Page and detail results
// carry the identifiers they were issued for; preview results carry the
// session sequence so stale completions can be discarded.
type (
	pageLoadedMsg struct {
		offset int
		page   api.ListResponse
	}
	pageFailedMsg struct {
		offset int
		err    error
	}
	detailLoadedMsg struct {
		logID  string
		detail *api.LogDetail
	}
	detailFailedMsg struct {
		logID string
		err   error
	}
	previewLoadedMsg struct {
		seq uint64
		img *preview.Handle
	}
	previewFailedMsg struct {
		seq uint64
		err error
	}
)

// Model is the Bubble Tea model for the catalog browser.
type Model struct {
	ctx      context.Context
	fetcher  api.LogFetcher
	store    *state.Store
	previews *preview.Manager
	gate     *viewport.Gate

	theme     Theme
	prefsPath string
	userPrefs prefs.Prefs
	pageSize  int

	snapshot state.Snapshot
	cursor   int

	// colorSlots assigns each active log a stable palette slot for the
	// lifetime of its activation.
	colorSlots map[string]int
	nextSlot   int

	focus    viewport.View
	hasFocus bool

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

// Options configure the browser model.
type Options struct {
	Context   context.Context
	Fetcher   api.LogFetcher
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
}

// NewModel builds the initial model.
func NewModel(opts Options) Model {
	theme := GetTheme(opts.Prefs.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	pageSize := opts.Config.PageSize
	if opts.Prefs.PageSize > 0 {
		pageSize = opts.Prefs.PageSize
	}

	fitter := viewport.MercatorFitter{WidthPx: 1280, HeightPx: 800}
	gate := viewport.NewGate(opts.Config.ZoomThreshold, opts.Config.FitPaddingPx, fitter)

	return Model{
		ctx:        opts.Context,
		fetcher:    opts.Fetcher,
		store:      opts.Store,
		previews:   preview.NewManager(),
		gate:       gate,
		theme:      theme,
		prefsPath:  opts.PrefsPath,
		userPrefs:  opts.Prefs,
		pageSize:   pageSize,
		snapshot:   opts.Store.Snapshot(),
		colorSlots: make(map[string]int),
		spinner:    sp,
	}
}

// Init starts the spinner and requests the first catalog page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.requestNextPage())
}

// Update handles messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		m.store.ApplyPage(msg.offset, msg.page)
		m.refresh()
		if msg.offset == 0 {
			m.pruneColorSlots()
		}
		return m, nil

	case pageFailedMsg:
		m.store.PageFailed(msg.err.Error())
		m.refresh()
		return m, nil

	case detailLoadedMsg:
		m.store.ApplyDetail(msg.logID, msg.detail)
		m.refresh()
		if m.snapshot.Selected[msg.logID] {
			if view, ok := m.gate.Focus(msg.detail); ok {
				m.focus = view
				m.hasFocus = true
			}
		}
		return m, nil

	case detailFailedMsg:
		m.store.DetailFailed(msg.logID, msg.err.Error())
		m.refresh()
		return m, nil

	case previewLoadedMsg:
		m.previews.Resolve(msg.seq, msg.img, nil)
		return m, nil

	case previewFailedMsg:
		m.previews.Resolve(msg.seq, nil, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.snapshot.Order)-1 {
			m.cursor++
		}
		m.hoverCursor()
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.hoverCursor()
		return m, nil

	case " ":
		id, ok := m.cursorID()
		if !ok {
			return m, nil
		}
		selected, needFetch := m.store.Toggle(id)
		if selected {
			m.assignColorSlot(id)
		} else {
			m.releaseColorSlot(id)
		}
		m.refresh()
		if needFetch {
			return m, m.fetchDetail(id)
		}
		return m, nil

	case "enter":
		id, ok := m.cursorID()
		if !ok {
			return m, nil
		}
		seq := m.previews.Activate(id)
		return m, m.fetchPreview(id, seq)

	case "esc":
		m.previews.Close()
		return m, nil

	case "m":
		return m, m.requestNextPage()

	case "r":
		if !m.store.StartReload() {
			return m, nil
		}
		return m, m.loadPage(0)

	case "+", "=":
		m.gate.SetZoom(m.gate.Zoom() + 1)
		m.hoverCursor()
		return m, nil

	case "-":
		m.gate.SetZoom(m.gate.Zoom() - 1)
		return m, nil

	case "T":
		m.userPrefs.Theme = NextTheme(m.theme.Name)
		m.theme = GetTheme(m.userPrefs.Theme)
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		_ = prefs.Save(m.prefsPath, m.userPrefs)
		return m, nil
	}

	return m, nil
}

// requestNextPage reserves the next page slot in the store and returns its
// fetch command, or nil when a request is already outstanding or the listing
// is exhausted.
func (m *Model) requestNextPage() tea.Cmd {
	offset, ok := m.store.StartPageLoad()
	if !ok {
		return nil
	}
	return m.loadPage(offset)
}

func (m Model) loadPage(offset int) tea.Cmd {
	ctx, fetcher, limit := m.ctx, m.fetcher, m.pageSize
	return func() tea.Msg {
		page, err := fetcher.ListLogs(ctx, api.ListQuery{Offset: offset, Limit: limit})
		if err != nil {
			return pageFailedMsg{offset: offset, err: err}
		}
		return pageLoadedMsg{offset: offset, page: page}
	}
}

func (m Model) fetchDetail(logID string) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		detail, err := fetcher.FetchDetail(ctx, logID)
		if err != nil {
			return detailFailedMsg{logID: logID, err: err}
		}
		return detailLoadedMsg{logID: logID, detail: detail}
	}
}

func (m Model) fetchPreview(logID string, seq uint64) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		img, err := fetcher.FetchPreview(ctx, logID)
		if err != nil {
			return previewFailedMsg{seq: seq, err: err}
		}
		return previewLoadedMsg{seq: seq, img: preview.NewHandle(img.Data, img.MIME, nil)}
	}
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	if m.cursor >= len(m.snapshot.Order) {
		m.cursor = len(m.snapshot.Order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) cursorID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Order) {
		return "", false
	}
	return m.snapshot.Order[m.cursor], true
}

func (m *Model) hoverCursor() {
	if id, ok := m.cursorID(); ok && m.snapshot.Selected[id] {
		m.gate.SetHovered(id)
		return
	}
	m.gate.ClearHovered()
}

func (m *Model) assignColorSlot(logID string) {
	if _, ok := m.colorSlots[logID]; ok {
		return
	}
	m.colorSlots[logID] = m.nextSlot
	m.nextSlot++
}

func (m *Model) releaseColorSlot(logID string) {
	delete(m.colorSlots, logID)
}

// pruneColorSlots drops slots for logs the reset removed from the catalog.
func (m *Model) pruneColorSlots() {
	for id := range m.colorSlots {
		if !m.snapshot.Selected[id] {
			delete(m.colorSlots, id)
		}
	}
}
