package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	return store, dir
}

func TestFileStore_GlobalRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)

	_, err := store.Get(ctx, KeyPrevSnapshot)
	assert.True(t, IsNotFound(err))

	require.NoError(t, store.Put(ctx, KeyPrevSnapshot, []byte(`{"records":[]}`)))

	value, err := store.Get(ctx, KeyPrevSnapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(value))

	// State survives a restart.
	reopened, err := NewFileStore(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	value, err = reopened.Get(ctx, KeyPrevSnapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(value))
}

func TestFileStore_GuildRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.GetGuild(ctx, "123", KeyGuildSettings)
	assert.True(t, IsNotFound(err))

	require.NoError(t, store.PutGuild(ctx, "123", KeyGuildSettings, []byte(`{"severe_mode":true}`)))
	require.NoError(t, store.PutGuild(ctx, "456", KeyGuildSettings, []byte(`{}`)))

	value, err := store.GetGuild(ctx, "123", KeyGuildSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"severe_mode":true}`, string(value))

	ids, err := store.ListGuilds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"123", "456"}, ids)
}

func TestFileStore_DeleteGuild(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.PutGuild(ctx, "123", KeyGuildSettings, []byte(`{}`)))
	require.NoError(t, store.DeleteGuild(ctx, "123"))

	_, err := store.GetGuild(ctx, "123", KeyGuildSettings)
	assert.True(t, IsNotFound(err))

	// Deleting a guild that never existed is fine.
	require.NoError(t, store.DeleteGuild(ctx, "999"))
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, globalsFile), []byte("{not json"), 0o600))

	store, err := NewFileStore(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyPrevSnapshot)
	assert.True(t, IsNotFound(err))
}

func TestGCSObjectName(t *testing.T) {
	name, err := gcsObjectName("", KeyPrevSnapshot)
	require.NoError(t, err)
	assert.Equal(t, "global/prev_alerts_snapshot.json", name)

	name, err = gcsObjectName("123", KeyGuildSettings)
	require.NoError(t, err)
	assert.Equal(t, "guild/123/settings.json", name)

	_, err = gcsObjectName("../escape", KeyGuildSettings)
	assert.Error(t, err)

	_, err = gcsObjectName("123", "nested/key")
	assert.Error(t, err)
}
