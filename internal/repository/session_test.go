package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataseven/sevens-client/internal/repository/storage"
)

func newTestRepository(t *testing.T) SessionRepository {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.Init(context.Background()))

	return NewSessionRepository(store)
}

func TestSessionRepository_SaveAndLast(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	// Given: a saved session
	saved := &Session{
		PlayerID:   "p1",
		PlayerName: "Alice",
		RoomCode:   "ABCD",
		SavedAt:    time.Now(),
	}
	require.NoError(t, repo.Save(ctx, saved))

	// When: the last session is loaded
	loaded, err := repo.Last(ctx)

	// Then: it round-trips, with the timestamp kept at millisecond precision
	require.NoError(t, err)
	assert.Equal(t, saved.PlayerID, loaded.PlayerID)
	assert.Equal(t, saved.PlayerName, loaded.PlayerName)
	assert.Equal(t, saved.RoomCode, loaded.RoomCode)
	assert.Equal(t, saved.SavedAt.UnixMilli(), loaded.SavedAt.UnixMilli())
}

func TestSessionRepository_SaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, &Session{PlayerID: "p1", PlayerName: "Alice", RoomCode: "ABCD", SavedAt: time.Now()}))
	require.NoError(t, repo.Save(ctx, &Session{PlayerID: "p2", PlayerName: "Bob", RoomCode: "WXYZ", SavedAt: time.Now()}))

	loaded, err := repo.Last(ctx)

	require.NoError(t, err)
	assert.Equal(t, "WXYZ", loaded.RoomCode)
	assert.Equal(t, "p2", loaded.PlayerID)
}

func TestSessionRepository_LastOnEmptyStore(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Last(context.Background())

	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, &Session{PlayerID: "p1", PlayerName: "Alice", RoomCode: "ABCD", SavedAt: time.Now()}))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Last(ctx)

	require.ErrorIs(t, err, ErrSessionNotFound)
}
