// Package tui is the reference terminal host for the tour engine: a
// fake multi-screen application whose widgets anchor the tour popups.
// It drives the full control flow inside a bubbletea event loop:
// discover on screen entry, placement from post-layout geometry,
// dismiss to advance.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tourtip/internal/audio"
	"github.com/jmylchreest/tourtip/internal/config"
	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/placement"
	"github.com/jmylchreest/tourtip/internal/store"
	"github.com/jmylchreest/tourtip/internal/theme"
	"github.com/jmylchreest/tourtip/internal/tour"
)

// shownEvent records a popup flag flipping to visible. Notifier
// subscriptions push these; Update drains them after every call that can
// flip flags.
type shownEvent struct {
	page string
	id   string
}

// eventQueue collects shown events across Model value copies.
type eventQueue struct {
	shown []shownEvent
}

func (q *eventQueue) push(ev shownEvent) {
	q.shown = append(q.shown, ev)
}

func (q *eventQueue) drain() []shownEvent {
	evs := q.shown
	q.shown = nil
	return evs
}

// Messages.
type (
	// seenLogChangedMsg arrives when another process touched the seen log.
	seenLogChangedMsg struct{}

	// wiggleMsg nudges a visible popup sideways on its wiggle period.
	wiggleMsg struct {
		page string
		id   string
	}
)

// Model is the demo host's bubbletea model.
type Model struct {
	cfg     *config.Config
	pages   []model.Page
	manager *tour.Manager
	styles  *theme.Styles
	chimes  *audio.Chimes // nil when audio is off
	seenLog *store.SeenLog
	logger  *slog.Logger

	screen  int
	width   int
	height  int
	ready   bool
	widgets map[string][]widgetBox // page name -> post-layout widget rects

	wiggleOffset int
	lastSeenAt   time.Time

	events *eventQueue

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// New creates the demo model. The manager must already have one page
// registered per entry in pages; nothing is discovered until the first
// layout pass completes.
func New(cfg *config.Config, pages []model.Page, manager *tour.Manager, chimes *audio.Chimes, seenLog *store.SeenLog, logger *slog.Logger, startPage string) Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		cfg:     cfg,
		pages:   pages,
		manager: manager,
		styles:  theme.NewStyles(theme.FromConfig(cfg.Theme)),
		chimes:  chimes,
		seenLog: seenLog,
		logger:  logger,
		widgets: make(map[string][]widgetBox),
		events:  &eventQueue{},
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}

	for i, p := range pages {
		if p.Name == startPage {
			m.screen = i
		}
	}

	// Bind to every popup's visibility flag. The subscription only
	// records shown transitions; dismissal handling lives in the
	// sequencer.
	for _, p := range pages {
		page := p.Name
		for _, id := range p.IDs() {
			flag, err := manager.Notifier(page, id)
			if err != nil {
				// Page registration and tour pages come from the same
				// source, so this is unreachable in practice.
				logger.Warn("missing notifier", "page", page, "id", id, "error", err)
				continue
			}
			popupID := id
			flag.Subscribe(func(old, next bool) {
				if !old && next {
					m.events.push(shownEvent{page: page, id: popupID})
				}
			})
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// currentPage returns the page backing the active screen.
func (m Model) currentPage() model.Page {
	return m.pages[m.screen]
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for _, p := range m.pages {
			m.widgets[p.Name] = layoutWidgets(p, msg.Width, msg.Height)
		}

		// First layout pass: the start screen is now visible, activate
		// its tour.
		if !m.ready {
			m.ready = true
			m.manager.Discover(m.currentPage().Name)
		}
		return m, m.drainShown()

	case wiggleMsg:
		return m.handleWiggle(msg)

	case seenLogChangedMsg:
		if m.seenLog != nil {
			ids, err := m.seenLog.IDs()
			if err != nil {
				m.logger.Warn("failed to reload seen log", "error", err)
				return m, nil
			}
			m.manager.MarkSeen(ids...)
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.NextScreen):
		return m.switchScreen(1)

	case key.Matches(msg, m.keys.PrevScreen):
		return m.switchScreen(-1)

	case key.Matches(msg, m.keys.Dismiss):
		return m.dismissVisible()
	}

	return m, nil
}

// switchScreen moves to the next/previous screen and discovers its page.
func (m Model) switchScreen(delta int) (tea.Model, tea.Cmd) {
	n := len(m.pages)
	m.screen = ((m.screen+delta)%n + n) % n
	m.wiggleOffset = 0
	m.manager.Discover(m.currentPage().Name)
	return m, m.drainShown()
}

// dismissVisible flips the visible popup's flag to false. The sequencer
// marks it seen and advances before Set returns.
func (m Model) dismissVisible() (tea.Model, tea.Cmd) {
	page := m.currentPage()
	id, ok := m.manager.Visible(page.Name)
	if !ok {
		return m, nil
	}

	flag, err := m.manager.Notifier(page.Name, id)
	if err != nil {
		m.logger.Warn("missing notifier on dismiss", "page", page.Name, "id", id, "error", err)
		return m, nil
	}

	m.wiggleOffset = 0
	m.lastSeenAt = time.Now()
	flag.Set(false)

	cmds := []tea.Cmd{m.drainShown()}

	// Page complete when nothing advanced and every id is seen.
	if _, visible := m.manager.Visible(page.Name); !visible && m.pageSeenCount(page) == len(page.Popups) {
		cmds = append(cmds, m.chimeCmd(audio.EventComplete))
	}

	return m, tea.Batch(cmds...)
}

// handleWiggle nudges the popup and schedules the next tick while it is
// still the visible popup on its page.
func (m Model) handleWiggle(msg wiggleMsg) (tea.Model, tea.Cmd) {
	id, ok := m.manager.Visible(msg.page)
	if !ok || id != msg.id {
		return m, nil
	}

	pop := m.popupByID(msg.page, msg.id)
	if pop == nil || !pop.Wiggle {
		return m, nil
	}

	if m.wiggleOffset == 0 {
		m.wiggleOffset = 1
	} else {
		m.wiggleOffset = 0
	}
	return m, m.wiggleTick(msg.page, msg.id, pop.WigglePeriod)
}

// drainShown turns queued shown events into chime and wiggle commands.
func (m Model) drainShown() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.events.drain() {
		m.logger.Debug("popup shown", "page", ev.page, "id", ev.id)
		cmds = append(cmds, m.chimeCmd(audio.EventShow))

		if pop := m.popupByID(ev.page, ev.id); pop != nil && pop.Wiggle {
			cmds = append(cmds, m.wiggleTick(ev.page, ev.id, pop.WigglePeriod))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// chimeCmd plays an event chime off the update loop.
func (m Model) chimeCmd(event audio.Event) tea.Cmd {
	if m.chimes == nil {
		return nil
	}
	chimes := m.chimes
	return func() tea.Msg {
		chimes.Play(event)
		return nil
	}
}

// wiggleTick schedules the next wiggle nudge for a popup.
func (m Model) wiggleTick(page, id string, period time.Duration) tea.Cmd {
	if period <= 0 {
		period = m.cfg.Demo.WigglePeriod.Duration()
	}
	if period <= 0 {
		return nil
	}
	return tea.Tick(period, func(time.Time) tea.Msg {
		return wiggleMsg{page: page, id: id}
	})
}

// popupByID looks up a popup definition.
func (m Model) popupByID(page, id string) *model.Popup {
	for i := range m.pages {
		if m.pages[i].Name == page {
			return m.pages[i].Popup(id)
		}
	}
	return nil
}

// pageSeenCount counts the page's popups already in the seen set.
func (m Model) pageSeenCount(page model.Page) int {
	count := 0
	for _, id := range page.IDs() {
		if m.manager.Seen(id) {
			count++
		}
	}
	return count
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	base := m.blankCanvas()
	base = Composite(base, m.renderHeader(), 0, 0)

	page := m.currentPage()
	visibleID, hasVisible := m.manager.Visible(page.Name)

	for _, w := range m.widgets[page.Name] {
		style := m.styles.WidgetStyle()
		if hasVisible && w.id == visibleID {
			style = m.styles.TargetStyle()
		}
		box := style.Width(int(w.rect.Width) - 2).Render(w.label)
		base = Composite(base, box, int(w.rect.X), int(w.rect.Y))
	}

	base = Composite(base, m.renderFooter(), 0, m.height-footerRows)

	if hasVisible {
		base = m.overlayPopup(base, page, visibleID)
	}

	return base
}

// overlayPopup resolves placement for the visible popup from the current
// post-layout geometry and splices the rendered box into the view.
func (m Model) overlayPopup(base string, page model.Page, id string) string {
	pop := page.Popup(id)
	widget, ok := widgetByID(m.widgets[page.Name], id)
	if pop == nil || !ok {
		return base
	}

	viewport := placement.NewRect(0, 0, float64(m.width), float64(m.height))
	insets := placement.Insets{Top: headerRows, Bottom: footerRows}
	pl := placement.Resolve(widget.rect, viewport, insets)

	block := renderPopup(*pop, pl, m.styles)
	x, y := popupOrigin(pl, block, m.width, m.height)

	if m.wiggleOffset != 0 && x+lipgloss.Width(block)+m.wiggleOffset <= m.width {
		x += m.wiggleOffset
	}

	return Composite(base, block, x, y)
}

// blankCanvas returns a width x height block of spaces.
func (m Model) blankCanvas() string {
	line := strings.Repeat(" ", m.width)
	lines := make([]string, m.height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the screen tabs.
func (m Model) renderHeader() string {
	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		name := p.Name
		if i == m.screen {
			tabs[i] = m.styles.HeaderStyle().Render("[ " + name + " ]")
		} else {
			tabs[i] = m.styles.FooterStyle().Render("  " + name + "  ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderFooter renders the progress line plus the help bar.
func (m Model) renderFooter() string {
	page := m.currentPage()
	seen := m.pageSeenCount(page)

	status := fmt.Sprintf("%s · %d/%d seen", page.Name, seen, len(page.Popups))
	if !m.lastSeenAt.IsZero() {
		status += " · last dismissed " + humanize.Time(m.lastSeenAt)
	}
	if seen == len(page.Popups) {
		status += " · tour complete"
	}

	return m.styles.FooterStyle().Render(status) + "\n" + m.help.View(m.keys)
}

// RunOptions configures the demo host.
type RunOptions struct {
	Config    *config.Config
	Pages     []model.Page
	Manager   *tour.Manager
	SeenLog   *store.SeenLog // nil disables hot reload
	Logger    *slog.Logger
	StartPage string
	NoAudio   bool

	// Fresh disables seen-log hot reload even when SeenLog is set. A
	// fresh run still appends dismissals, so reloading the log would
	// pull the persisted seen state right back in.
	Fresh bool
}

// reloadLog returns the log the host reloads on external changes, or nil
// when reloading is off for this run.
func (o RunOptions) reloadLog() *store.SeenLog {
	if o.Fresh {
		return nil
	}
	return o.SeenLog
}

// Run starts the demo host and blocks until it exits. The manager and
// seen log stay owned by the caller; Run owns the chimes and the watcher
// it creates.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var chimes *audio.Chimes
	if !opts.NoAudio && opts.Config.Audio.Enabled {
		chimes = audio.NewChimes(opts.Config, logger)
		chimes.Preload()
		defer chimes.Close()
	}

	reload := opts.reloadLog()
	m := New(opts.Config, opts.Pages, opts.Manager, chimes, reload, logger, opts.StartPage)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Bridge external seen-log changes into the update loop.
	var watcher *store.Watcher
	if reload != nil {
		var err error
		watcher, err = store.NewWatcher(reload.Path(), func() {
			p.Send(seenLogChangedMsg{})
		}, logger)
		if err != nil {
			logger.Warn("failed to create seen log watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start seen log watcher", "error", err)
		}
	}

	_, err := p.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
