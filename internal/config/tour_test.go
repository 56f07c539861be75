package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tourtip/internal/model"
)

const sampleTour = `
[[page]]
name = "compose"

  [[page.popup]]
  id = "compose.editor"
  title = "Write your note"
  body = "Saved as you go."

  [[page.popup]]
  id = "compose.send"
  title = "Ship it"
  wiggle = true
  background = "#4c566a"
  indicator = "check"

[[page]]
name = "library"

  [[page.popup]]
  id = "library.search"
  wiggle = true
  wiggle_period = "2s"
`

func TestParseTour(t *testing.T) {
	pages, err := ParseTour([]byte(sampleTour))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	t.Run("pages and popups keep file order", func(t *testing.T) {
		assert.Equal(t, "compose", pages[0].Name)
		assert.Equal(t, []string{"compose.editor", "compose.send"}, pages[0].IDs())
		assert.Equal(t, "library", pages[1].Name)
	})

	t.Run("fields carry through", func(t *testing.T) {
		send := pages[0].Popup("compose.send")
		require.NotNil(t, send)
		assert.Equal(t, "Ship it", send.Title)
		assert.Equal(t, "#4c566a", send.Background)
		assert.Equal(t, model.IndicatorCheck, send.Indicator)
	})

	t.Run("missing indicator defaults to arrow", func(t *testing.T) {
		editor := pages[0].Popup("compose.editor")
		require.NotNil(t, editor)
		assert.Equal(t, model.IndicatorArrow, editor.Indicator)
	})

	t.Run("wiggle without a period inherits the default", func(t *testing.T) {
		send := pages[0].Popup("compose.send")
		require.NotNil(t, send)
		assert.True(t, send.Wiggle)
		assert.Equal(t, DefaultWigglePeriod.Duration(), send.WigglePeriod)
	})

	t.Run("explicit wiggle period wins", func(t *testing.T) {
		search := pages[1].Popup("library.search")
		require.NotNil(t, search)
		assert.Equal(t, 2*time.Second, search.WigglePeriod)
	})
}

func TestParseTourErrors(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		_, err := ParseTour([]byte(""))
		assert.ErrorIs(t, err, ErrNoPages)
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := ParseTour([]byte("[[page"))
		assert.Error(t, err)
	})

	t.Run("page without popups", func(t *testing.T) {
		_, err := ParseTour([]byte("[[page]]\nname = \"empty\"\n"))
		assert.ErrorIs(t, err, model.ErrPageNoPopups)
	})

	t.Run("bad indicator", func(t *testing.T) {
		tour := `
[[page]]
name = "home"
  [[page.popup]]
  id = "a"
  indicator = "sparkles"
`
		_, err := ParseTour([]byte(tour))
		assert.ErrorIs(t, err, model.ErrInvalidIndicator)
	})

	t.Run("id reused across pages", func(t *testing.T) {
		tour := `
[[page]]
name = "one"
  [[page.popup]]
  id = "shared"

[[page]]
name = "two"
  [[page.popup]]
  id = "shared"
`
		_, err := ParseTour([]byte(tour))
		require.ErrorIs(t, err, ErrPopupIDReused)
		assert.Contains(t, err.Error(), "one")
		assert.Contains(t, err.Error(), "two")
	})
}

func TestLoadTour(t *testing.T) {
	t.Run("reads a tour file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tour.toml")
		require.NoError(t, os.WriteFile(path, []byte(sampleTour), 0644))

		pages, err := LoadTour(path)
		require.NoError(t, err)
		assert.Len(t, pages, 2)
	})

	t.Run("missing file falls back to the built-in tour", func(t *testing.T) {
		pages, err := LoadTour(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.NotEmpty(t, pages)
	})

	t.Run("parse errors name the file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tour.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[page"), 0644))

		_, err := LoadTour(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestDefaultTour(t *testing.T) {
	pages, err := DefaultTour()
	require.NoError(t, err)
	require.NotEmpty(t, pages)

	for _, page := range pages {
		assert.NoError(t, page.Validate())
	}
}
