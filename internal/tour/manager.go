package tour

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jmylchreest/tourtip/internal/observe"
)

var (
	// ErrDuplicatePage is returned when a page name is registered twice.
	ErrDuplicatePage = errors.New("page already registered")

	// ErrUnknownPage is returned when a notifier is requested for a page
	// that was never registered.
	ErrUnknownPage = errors.New("unknown page")

	// ErrManagerClosed is returned from mutating calls after Close.
	ErrManagerClosed = errors.New("manager is closed")

	// ErrEmptyPageName is returned when a page is registered without a
	// name.
	ErrEmptyPageName = errors.New("page name is empty")

	// ErrNoPopupIDs is returned when a page is registered without any
	// popup ids.
	ErrNoPopupIDs = errors.New("page has no popup ids")

	// ErrEmptyPopupID is returned when a page contains an empty popup id.
	ErrEmptyPopupID = errors.New("empty popup id")

	// ErrDuplicatePopupID is returned when a page repeats a popup id.
	ErrDuplicatePopupID = errors.New("duplicate popup id")
)

// Manager owns the pages of a tour and the shared record of which popup
// ids have been seen. An id seen on any page is never shown again, on
// any page, for the life of the manager.
//
// The manager holds no storage: the host supplies the initial seen ids
// at construction and persists new ones from the onSeen callback.
//
// A Manager is not safe for concurrent use. All calls, including flag
// flips on the notifiers it hands out, must come from one goroutine.
type Manager struct {
	pages  map[string]*Sequencer
	seen   map[string]struct{}
	onSeen func(string)
	logger *slog.Logger
	closed bool
}

// NewManager builds a manager hydrated with the host-supplied seen ids.
// onSeen, when non-nil, runs exactly once per newly dismissed popup id
// so the host can persist it. A nil logger falls back to slog.Default().
func NewManager(seen []string, onSeen func(string), logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		pages:  make(map[string]*Sequencer),
		seen:   make(map[string]struct{}, len(seen)),
		onSeen: onSeen,
		logger: logger,
	}
	for _, id := range seen {
		m.seen[id] = struct{}{}
	}
	return m
}

// AddPage registers a page with its popup ids in display order. Nothing
// becomes visible until Discover is called for the page. Re-registering
// a name fails with ErrDuplicatePage: the sequencer already driving that
// page would be silently orphaned otherwise.
func (m *Manager) AddPage(name string, ids []string) error {
	if m.closed {
		return ErrManagerClosed
	}
	if name == "" {
		return ErrEmptyPageName
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: %q", ErrNoPopupIDs, name)
	}
	if _, ok := m.pages[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePage, name)
	}

	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: page %q", ErrEmptyPopupID, name)
		}
		if _, ok := unique[id]; ok {
			return fmt.Errorf("%w: %q on page %q", ErrDuplicatePopupID, id, name)
		}
		unique[id] = struct{}{}
	}

	m.pages[name] = NewSequencer(ids, m.Seen, func(id string) {
		m.popupSeen(name, id)
	}, m.logger)

	m.logger.Debug("page registered", "page", name, "popups", len(ids))
	return nil
}

// popupSeen records a dismissal. The id joins the seen set before the
// sequencer advances, so it can never be re-activated.
func (m *Manager) popupSeen(page, id string) {
	if _, ok := m.seen[id]; ok {
		return
	}
	m.seen[id] = struct{}{}
	m.logger.Debug("popup seen", "page", page, "id", id)
	if m.onSeen != nil {
		m.onSeen(id)
	}
}

// Discover activates the first unseen popup on the named page. Unknown
// pages are ignored so hosts can wire discover calls unconditionally
// while registering pages conditionally. Calling it again while a popup
// is visible is a no-op.
func (m *Manager) Discover(name string) {
	if m.closed {
		return
	}
	seq, ok := m.pages[name]
	if !ok {
		m.logger.Debug("discover on unknown page", "page", name)
		return
	}
	seq.ActivateNext()
}

// Notifier returns the visibility flag for a popup. Requesting an
// unregistered page or an id the page does not contain is a wiring bug
// and fails with a lookup error; no state changes on failure.
func (m *Manager) Notifier(page, id string) (*observe.Value[bool], error) {
	if m.closed {
		return nil, ErrManagerClosed
	}
	seq, ok := m.pages[page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return seq.Notifier(id)
}

// Visible returns the popup currently visible on the named page.
func (m *Manager) Visible(page string) (string, bool) {
	seq, ok := m.pages[page]
	if !ok {
		return "", false
	}
	return seq.Visible()
}

// Seen reports whether id has been dismissed, on any page.
func (m *Manager) Seen(id string) bool {
	_, ok := m.seen[id]
	return ok
}

// SeenIDs returns a sorted copy of the seen set.
func (m *Manager) SeenIDs() []string {
	ids := make([]string, 0, len(m.seen))
	for id := range m.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarkSeen merges ids into the seen set without firing onSeen. It is
// meant for re-hydration when persisted state changes behind the
// manager, such as another process appending to the seen log. A popup
// already visible stays visible until dismissed.
func (m *Manager) MarkSeen(ids ...string) {
	if m.closed {
		return
	}
	for _, id := range ids {
		m.seen[id] = struct{}{}
	}
}

// Pages returns the registered page names, sorted.
func (m *Manager) Pages() []string {
	names := make([]string, 0, len(m.pages))
	for name := range m.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close disposes every page's sequencer: visibility flags freeze and
// later Discover or MarkSeen calls become no-ops. Close is idempotent.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, seq := range m.pages {
		seq.Close()
	}
	m.pages = nil
}
