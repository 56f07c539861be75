package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempLog(t *testing.T) *SeenLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen.jsonl")
	l, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestSeenLogOpen(t *testing.T) {
	t.Run("creates the file with a schema header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "seen.jsonl")
		l, err := Open(path)
		require.NoError(t, err)
		defer l.Close()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"tourtip_schema_version":1`)
	})

	t.Run("a fresh log has no records", func(t *testing.T) {
		l := openTempLog(t)
		records, err := l.Load()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("rejects a newer schema version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seen.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(`{"tourtip_schema_version":99,"created_at":1}`+"\n"), 0600))

		l, err := Open(path)
		require.NoError(t, err)
		defer l.Close()

		_, err = l.Load()
		assert.ErrorContains(t, err, "unsupported schema version")
	})
}

func TestSeenLogAppendLoad(t *testing.T) {
	t.Run("roundtrips records", func(t *testing.T) {
		l := openTempLog(t)
		session := NewSessionID()

		require.NoError(t, l.Append(NewRecord("a", "home", session)))
		require.NoError(t, l.Append(NewRecord("b", "home", session)))

		records, err := l.Load()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0].PopupID)
		assert.Equal(t, "b", records[1].PopupID)
		assert.Equal(t, "home", records[0].Page)
		assert.Equal(t, session, records[0].SessionID)
	})

	t.Run("records survive reopening", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seen.jsonl")
		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Append(NewRecord("a", "home", "")))
		require.NoError(t, l.Close())

		l2, err := Open(path)
		require.NoError(t, err)
		defer l2.Close()

		records, err := l2.Load()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "a", records[0].PopupID)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		l := openTempLog(t)
		require.NoError(t, l.Append(NewRecord("a", "", "")))

		f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_WRONLY, 0600)
		require.NoError(t, err)
		_, err = f.WriteString("{not valid json\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		require.NoError(t, l.Append(NewRecord("b", "", "")))

		records, err := l.Load()
		require.NoError(t, err)
		require.Len(t, records, 2)
	})
}

func TestSeenLogIDs(t *testing.T) {
	t.Run("deduplicates in first-seen order", func(t *testing.T) {
		l := openTempLog(t)
		require.NoError(t, l.Append(NewRecord("b", "", "")))
		require.NoError(t, l.Append(NewRecord("a", "", "")))
		require.NoError(t, l.Append(NewRecord("b", "", "")))

		ids, err := l.IDs()
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, ids)
	})
}

func TestSeenLogReset(t *testing.T) {
	seed := func(t *testing.T) *SeenLog {
		l := openTempLog(t)
		require.NoError(t, l.Append(NewRecord("a", "home", "")))
		require.NoError(t, l.Append(NewRecord("b", "home", "")))
		require.NoError(t, l.Append(NewRecord("c", "settings", "")))
		return l
	}

	t.Run("removes one page's records", func(t *testing.T) {
		l := seed(t)
		removed, err := l.Reset("home")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		ids, err := l.IDs()
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, ids)
	})

	t.Run("empty page removes everything", func(t *testing.T) {
		l := seed(t)
		removed, err := l.Reset("")
		require.NoError(t, err)
		assert.Equal(t, 3, removed)

		ids, err := l.IDs()
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("unknown page removes nothing", func(t *testing.T) {
		l := seed(t)
		removed, err := l.Reset("nope")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("the log stays usable after a reset", func(t *testing.T) {
		l := seed(t)
		_, err := l.Reset("home")
		require.NoError(t, err)

		require.NoError(t, l.Append(NewRecord("d", "settings", "")))
		ids, err := l.IDs()
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, ids)
	})
}

func TestSeenLogClose(t *testing.T) {
	t.Run("operations fail after close", func(t *testing.T) {
		l := openTempLog(t)
		require.NoError(t, l.Close())

		assert.ErrorIs(t, l.Append(NewRecord("a", "", "")), ErrStoreClosed)
		_, err := l.Load()
		assert.ErrorIs(t, err, ErrStoreClosed)
		_, err = l.Reset("")
		assert.ErrorIs(t, err, ErrStoreClosed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		l := openTempLog(t)
		require.NoError(t, l.Close())
		require.NoError(t, l.Close())
	})
}

func TestRecoverFromCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.jsonl")
	content := `{"tourtip_schema_version":1,"created_at":1}
{"popup_id":"a","seen_at":1000}
garbage line that is not json
{"popup_id":"b","seen_at":2000}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, RecoverFromCorruption(path))

	// The damaged original is preserved under a timestamped name.
	matches, err := filepath.Glob(path + ".corrupted.*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	ids, err := l.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestRecordHelpers(t *testing.T) {
	t.Run("session ids are unique", func(t *testing.T) {
		assert.NotEqual(t, NewSessionID(), NewSessionID())
	})

	t.Run("seen times keep the earliest dismissal", func(t *testing.T) {
		records := []Record{
			{PopupID: "a", SeenAt: 2000},
			{PopupID: "a", SeenAt: 1000},
			{PopupID: "b", SeenAt: 3000},
		}
		times := SeenTimes(records)
		assert.Equal(t, time.UnixMilli(1000), times["a"])
		assert.Equal(t, time.UnixMilli(3000), times["b"])
	})
}
