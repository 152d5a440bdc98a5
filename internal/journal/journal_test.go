package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "launches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen(t *testing.T) {
	t.Run("creates parent directories and schema", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "state", "launches.db")

		j, err := Open(context.Background(), dbPath)
		require.NoError(t, err)
		defer j.Close()

		var count int
		require.NoError(t, j.db.QueryRow("SELECT COUNT(*) FROM launches").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("idempotent migrations", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "launches.db")

		j1, err := Open(context.Background(), dbPath)
		require.NoError(t, err)
		j1.Close()

		j2, err := Open(context.Background(), dbPath)
		require.NoError(t, err)
		j2.Close()
	})
}

func TestRecord(t *testing.T) {
	t.Run("assigns id and timestamp", func(t *testing.T) {
		j := openJournal(t)

		e, err := j.Record(context.Background(), Entry{Runner: "/opt/homebrew/bin/uv"})
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.StartedAt.IsZero())
	})

	t.Run("round-trips a full entry", func(t *testing.T) {
		j := openJournal(t)
		started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

		_, err := j.Record(context.Background(), Entry{
			ID:          "launch-1",
			StartedAt:   started,
			BinDir:      "/home/u/.nvm/versions/node/v20.18.0/bin",
			ToolPath:    "/home/u/.nvm/versions/node/v20.18.0/bin/claude",
			ToolVersion: "2.1.34 (Claude Code)",
			Runner:      "/opt/homebrew/bin/uv",
			Args:        []string{"--directory", "/srv/app", "run", "mcp_snowflake_server"},
		})
		require.NoError(t, err)

		entries, err := j.Recent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.Equal(t, "launch-1", e.ID)
		assert.True(t, e.StartedAt.Equal(started))
		assert.Equal(t, "/home/u/.nvm/versions/node/v20.18.0/bin", e.BinDir)
		assert.Equal(t, "2.1.34 (Claude Code)", e.ToolVersion)
		assert.Equal(t, []string{"--directory", "/srv/app", "run", "mcp_snowflake_server"}, e.Args)
	})
}

func TestRecent(t *testing.T) {
	t.Run("newest first with limit", func(t *testing.T) {
		j := openJournal(t)
		base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

		for i := 0; i < 3; i++ {
			_, err := j.Record(context.Background(), Entry{
				StartedAt: base.Add(time.Duration(i) * time.Minute),
				Runner:    "/opt/homebrew/bin/uv",
			})
			require.NoError(t, err)
		}

		entries, err := j.Recent(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].StartedAt.After(entries[1].StartedAt))
	})

	t.Run("empty journal yields no entries", func(t *testing.T) {
		j := openJournal(t)

		entries, err := j.Recent(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
