package imagestore

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := New(fs, "/srv/images")
	require.NoError(t, err)
	return store, fs
}

func TestStore_SaveOverwritesAndOpens(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	path, err := store.Save(ctx, "kimbap.png", strings.NewReader("first version"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/images", "kimbap.png"), path)

	again, err := store.Save(ctx, "kimbap.png", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.Equal(t, path, again)

	rc, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(body))
}

func TestStore_SaveStripsDirectories(t *testing.T) {
	store, fs := newTestStore(t)

	path, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/images", "passwd"), path)

	exists, err := afero.Exists(fs, "/etc/passwd")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_RejectsBadNamesAndPaths(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "..", strings.NewReader("x"))
	require.ErrorIs(t, err, ports.ErrInvalidImagePath)
	_, err = store.Open(ctx, "/etc/passwd")
	require.ErrorIs(t, err, ports.ErrInvalidImagePath)
	_, err = store.Open(ctx, "")
	require.ErrorIs(t, err, ports.ErrInvalidImagePath)
}

func TestStore_OpenMissingFile(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Open(context.Background(), store.DefaultPath())
	require.Error(t, err)
}

func TestStore_ListAndRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, err := store.Save(ctx, "b.png", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "a.png", strings.NewReader("a"))
	require.NoError(t, err)

	files, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join("/srv/images", "a.png"), files[0].Path)

	require.NoError(t, store.Remove(ctx, files[0].Path))
	files, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestNew_RequiresDirectory(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "  ")
	require.Error(t, err)
}
