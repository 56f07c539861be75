package tour

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/tourtip/internal/observe"
)

// ErrUnknownPopup is returned when a popup id is not part of a page.
var ErrUnknownPopup = errors.New("unknown popup id")

// Sequencer drives the popups of a single page: at most one is visible
// at a time, in declared order, skipping ids that have already been
// seen.
//
// The seen-ness query and the dismissal callback are injected at
// construction, so a Sequencer holds no durable state of its own. The
// injected isSeen must report true for an id once its dismissal has been
// handled, otherwise advancing would re-activate it.
//
// A Sequencer is not safe for concurrent use; like the flags it owns, it
// belongs on the host's event loop.
type Sequencer struct {
	ids       []string
	flags     map[string]*observe.Value[bool]
	isSeen    func(string) bool
	onDismiss func(string)
	logger    *slog.Logger
	closed    bool
}

// NewSequencer builds a sequencer over ids in display order. isSeen
// reports whether an id was dismissed before; onDismiss runs when a
// visible popup is dismissed, before the sequencer advances. Nothing
// becomes visible until ActivateNext is called.
func NewSequencer(ids []string, isSeen func(string) bool, onDismiss func(string), logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sequencer{
		ids:       append([]string(nil), ids...),
		flags:     make(map[string]*observe.Value[bool], len(ids)),
		isSeen:    isSeen,
		onDismiss: onDismiss,
		logger:    logger,
	}
	for _, id := range s.ids {
		flag := observe.New(false)
		s.flags[id] = flag
		s.watchDismissal(id, flag)
	}
	return s
}

// watchDismissal advances the sequence when a flag flips true to false.
// Transitions to true from outside ActivateNext trigger nothing.
func (s *Sequencer) watchDismissal(id string, flag *observe.Value[bool]) {
	flag.Subscribe(func(old, next bool) {
		if old && !next {
			s.dismissed(id)
		}
	})
}

func (s *Sequencer) dismissed(id string) {
	if s.closed {
		return
	}
	s.logger.Debug("popup dismissed", "id", id)
	if s.onDismiss != nil {
		s.onDismiss(id)
	}
	s.ActivateNext()
}

// ActivateNext makes the first unseen popup visible. It is a no-op when
// a popup is already visible on this page or every id has been seen; it
// never sets more than one flag.
func (s *Sequencer) ActivateNext() {
	if s.closed {
		return
	}
	if id, ok := s.Visible(); ok {
		s.logger.Debug("popup already visible", "id", id)
		return
	}
	id, ok := s.FirstUnseen()
	if !ok {
		s.logger.Debug("all popups seen")
		return
	}
	s.logger.Debug("popup activated", "id", id)
	s.flags[id].Set(true)
}

// FirstUnseen returns the first id in declared order that has not been
// seen yet.
func (s *Sequencer) FirstUnseen() (string, bool) {
	for _, id := range s.ids {
		if !s.seen(id) {
			return id, true
		}
	}
	return "", false
}

// Visible returns the id of the currently visible popup, if any.
func (s *Sequencer) Visible() (string, bool) {
	for _, id := range s.ids {
		if s.flags[id].Get() {
			return id, true
		}
	}
	return "", false
}

// Notifier returns the visibility flag for id. Hosts bind render logic
// to the flag and set it false to dismiss the popup.
func (s *Sequencer) Notifier(id string) (*observe.Value[bool], error) {
	flag, ok := s.flags[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPopup, id)
	}
	return flag, nil
}

// IDs returns the page's popup ids in display order.
func (s *Sequencer) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Close releases every visibility flag. Flag mutations after Close are
// no-ops. Close is idempotent.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, flag := range s.flags {
		flag.Close()
	}
}

func (s *Sequencer) seen(id string) bool {
	return s.isSeen != nil && s.isSeen(id)
}
