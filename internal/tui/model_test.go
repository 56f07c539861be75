package tui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tourtip/internal/config"
	"github.com/jmylchreest/tourtip/internal/model"
	"github.com/jmylchreest/tourtip/internal/store"
	"github.com/jmylchreest/tourtip/internal/tour"
)

func seenLogWith(t *testing.T, ids ...string) *store.SeenLog {
	t.Helper()
	log, err := store.Open(filepath.Join(t.TempDir(), "seen.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	session := store.NewSessionID()
	for _, id := range ids {
		require.NoError(t, log.Append(store.NewRecord(id, "demo", session)))
	}
	return log
}

func demoModel(t *testing.T, manager *tour.Manager, log *store.SeenLog) Model {
	t.Helper()
	require.NoError(t, manager.AddPage("demo", []string{"a", "b"}))
	return New(config.DefaultConfig(), []model.Page{demoPage("a", "b")}, manager, nil, log, nil, "demo")
}

func TestRunOptionsReloadLog(t *testing.T) {
	log := seenLogWith(t)

	assert.Same(t, log, RunOptions{SeenLog: log}.reloadLog())
	assert.Nil(t, RunOptions{SeenLog: log, Fresh: true}.reloadLog())
	assert.Nil(t, RunOptions{}.reloadLog())
}

func TestSeenLogReloadMarksSeen(t *testing.T) {
	log := seenLogWith(t, "a")
	manager := tour.NewManager(nil, nil, nil)
	m := demoModel(t, manager, log)

	updated, _ := m.Update(seenLogChangedMsg{})
	_, ok := updated.(Model)
	require.True(t, ok)

	assert.True(t, manager.Seen("a"))
	assert.False(t, manager.Seen("b"))
}

func TestFreshRunIgnoresSeenLogReload(t *testing.T) {
	log := seenLogWith(t, "a")
	manager := tour.NewManager(nil, nil, nil)

	opts := RunOptions{SeenLog: log, Fresh: true}
	m := demoModel(t, manager, opts.reloadLog())
	manager.Discover("demo")

	// A fresh run still records its own dismissals, so the log change
	// fires. It must not pull the historical seen state back in.
	require.NoError(t, log.Append(store.NewRecord("b", "demo", store.NewSessionID())))
	updated, _ := m.Update(seenLogChangedMsg{})
	_, ok := updated.(Model)
	require.True(t, ok)

	assert.False(t, manager.Seen("a"))
	id, visible := manager.Visible("demo")
	require.True(t, visible)
	assert.Equal(t, "a", id)
}
