package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/bolt"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

func TestInit(t *testing.T) {
	t.Run("FS Creates Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")

		store, err := platform.Init(dir)
		require.NoError(t, err)

		fsStore, ok := store.(*fs.Store)
		require.True(t, ok, "expected fs store")
		assert.Equal(t, dir, fsStore.Path)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		_, err = os.Stat(filepath.Join(dir, ".git"))
		assert.True(t, os.IsNotExist(err), "no git without versioning")
	})

	t.Run("FS MustExist Fails If Missing", func(t *testing.T) {
		_, err := platform.Init(filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
		assert.Error(t, err)
	})

	t.Run("FS Versioning Inits Git", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		t.Setenv("GIT_AUTHOR_NAME", "Test")
		t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
		t.Setenv("GIT_COMMITTER_NAME", "Test")
		t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

		dir := t.TempDir()
		_, err := platform.Init(dir, platform.WithVersioning(true))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, ".git"))
		assert.NoError(t, err)
	})

	t.Run("Bolt In Directory", func(t *testing.T) {
		dir := t.TempDir()
		store, err := platform.Init(dir, platform.WithAdapter(platform.AdapterBolt))
		require.NoError(t, err)
		defer store.(*bolt.Store).Close()

		_, err = os.Stat(filepath.Join(dir, platform.BoltFile))
		assert.NoError(t, err)
	})

	t.Run("SQLite Explicit File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.sqlite")
		store, err := platform.Init(path, platform.WithAdapter(platform.AdapterSQLite), platform.WithSlot("work"))
		require.NoError(t, err)
		sq, ok := store.(*sqlite.Store)
		require.True(t, ok)
		defer sq.Close()

		assert.Equal(t, "work", sq.State().(sqlite.StoreState).Slot)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("Injected Store Wins", func(t *testing.T) {
		injected := fs.NewStore(fs.Config{Path: t.TempDir()})
		store, err := platform.Init("ignored", platform.WithStore(injected), platform.WithAdapter("nope"))
		require.NoError(t, err)
		assert.Same(t, injected, store)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"))
		assert.ErrorContains(t, err, "unknown adapter")
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	for _, adapter := range []string{platform.AdapterFS, platform.AdapterBolt, platform.AdapterSQLite} {
		t.Run(adapter, func(t *testing.T) {
			dir := t.TempDir()
			svc, err := platform.New(dir, platform.WithAdapter(adapter))
			require.NoError(t, err)

			n, err := svc.Create(ctx, "hello "+adapter, "work")
			require.NoError(t, err)
			require.NoError(t, svc.Close())

			reopened, err := platform.New(dir, platform.WithAdapter(adapter))
			require.NoError(t, err)
			defer reopened.Close()

			got, err := reopened.FindByID(ctx, n.ID)
			require.NoError(t, err)
			assert.Equal(t, n, got)
		})
	}
}

func TestNew_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	svc, err := platform.New(dir, platform.WithReadOnly(true))
	require.NoError(t, err)

	_, err = svc.Create(ctx, "blocked", "work")
	assert.True(t, errors.Is(err, core.ErrReadOnly))
}

func TestResolve(t *testing.T) {
	sandbox := filepath.Join(os.TempDir(), platform.SandboxDir)

	t.Run("Dev Run Is Sandboxed", func(t *testing.T) {
		assert.Equal(t, filepath.Join(sandbox, "notes"), platform.Resolve("notes"))
	})

	t.Run("Dev Safety Off Keeps Path", func(t *testing.T) {
		assert.Equal(t, "notes", platform.Resolve("notes", platform.WithDevSafety(false)))
	})

	t.Run("Memory Is Never Redirected", func(t *testing.T) {
		assert.Equal(t, ":memory:", platform.Resolve(":memory:", platform.WithForceTemp(true)))
	})

	t.Run("Matches Init", func(t *testing.T) {
		store, err := platform.Init("resolve-check", platform.WithAdapter(platform.AdapterFS))
		require.NoError(t, err)
		fsStore, ok := store.(*fs.Store)
		require.True(t, ok)
		assert.Equal(t, platform.Resolve("resolve-check"), fsStore.Path)
	})
}
