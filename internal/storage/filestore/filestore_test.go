package filestore_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/save"
	"github.com/cory-johannsen/academy/internal/storage/filestore"
)

var _ save.Store = (*filestore.Store)(nil)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s, err := filestore.New(fsys, "/data/saves")
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "academy.save")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "academy.save", []byte(`{"a":1}`)))
	require.NoError(t, s.Put(ctx, "academy.save", []byte(`{"a":2}`)))
	data, ok, err := s.Get(ctx, "academy.save")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := afero.ReadDir(fsys, "/data/saves")
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "academy.save.json", entries[0].Name())

	require.NoError(t, s.Delete(ctx, "academy.save"))
	require.NoError(t, s.Delete(ctx, "academy.save"))
	_, ok, err = s.Get(ctx, "academy.save")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RejectsBadKeys(t *testing.T) {
	s := filestore.NewMemory()
	for _, key := range []string{"", "  ", "../escape", `a\b`, ".."} {
		assert.Error(t, s.Put(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestStore_HonorsCancelledContext(t *testing.T) {
	s := filestore.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("x")), context.Canceled)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_OnDisk(t *testing.T) {
	s, err := filestore.NewOS(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "k", []byte("hello")))
	data, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", string(data))
}

func TestStore_BacksSaveManager(t *testing.T) {
	m := save.NewManager(filestore.NewMemory(), "", zap.NewNop())
	g := save.NewGame("library", inventory.NewState().AddGold(25))
	require.NoError(t, m.SaveGame(context.Background(), g))

	back, ok, err := m.LoadGame(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g, back)
}
