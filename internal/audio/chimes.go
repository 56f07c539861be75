package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/tourtip/internal/config"
)

// Event identifies a tour moment that may trigger a chime.
type Event int

const (
	// EventShow fires when a popup becomes visible.
	EventShow Event = iota

	// EventComplete fires when the last popup on a page is dismissed.
	EventComplete
)

// String returns the event name used in configuration.
func (e Event) String() string {
	switch e {
	case EventShow:
		return "show"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Chimes maps tour events to configured sounds and plays them. Events
// with no configured sound, or with a sound that fails to play, are
// silently dropped after a log line.
type Chimes struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	enabled bool

	// Event to sound path mapping
	sounds map[Event]string
}

// NewChimes creates a chimes manager from the audio configuration.
func NewChimes(cfg *config.Config, logger *slog.Logger) *Chimes {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Chimes{
		logger:  logger,
		player:  NewPlayer(logger),
		enabled: cfg.Audio.Enabled,
		sounds:  make(map[Event]string),
	}

	// Config volume is 0-100, the player takes 0.0-1.0
	c.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	for _, ev := range []Event{EventShow, EventComplete} {
		path := cfg.SoundForEvent(ev.String())
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			c.logger.Warn("sound file not found", "event", ev.String(), "path", path)
			continue
		}
		c.sounds[ev] = path
		c.logger.Debug("loaded sound", "event", ev.String(), "path", path)
	}

	return c
}

// Preload decodes every configured sound ahead of playback.
func (c *Chimes) Preload() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for ev, path := range c.sounds {
		if err := c.player.Preload(path); err != nil {
			c.logger.Warn("failed to preload sound", "event", ev.String(), "path", path, "error", err)
		}
	}
}

// Play plays the sound configured for the event, if any.
func (c *Chimes) Play(event Event) {
	c.mu.RLock()
	enabled := c.enabled
	path, ok := c.sounds[event]
	c.mu.RUnlock()

	if !enabled || !ok {
		return
	}

	if err := c.player.Play(path); err != nil {
		c.logger.Warn("failed to play chime", "event", event.String(), "error", err)
	}
}

// SetEnabled toggles all chime playback.
func (c *Chimes) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (c *Chimes) SetVolume(volume float64) {
	c.player.SetVolume(volume)
}

// Close releases the audio device.
func (c *Chimes) Close() {
	c.player.Close()
	c.logger.Debug("chimes closed")
}
