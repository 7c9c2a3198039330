package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/food-order-api/internal/domains/menus/adapters/imagestore"
	menumemory "github.com/Apurer/food-order-api/internal/domains/menus/adapters/memory"
	"github.com/Apurer/food-order-api/internal/domains/menus/application"
	storememory "github.com/Apurer/food-order-api/internal/domains/stores/adapters/memory"
)

func TestInlineImageReconciler_AppliesGrace(t *testing.T) {
	fs := afero.NewMemMapFs()
	images, err := imagestore.New(fs, "/images")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/images/stale.png", []byte("s"), 0o644))
	require.NoError(t, fs.Chtimes("/images/stale.png", time.Now().Add(-2*time.Hour), time.Now().Add(-2*time.Hour)))
	require.NoError(t, afero.WriteFile(fs, "/images/fresh.png", []byte("f"), 0o644))

	svc := application.NewService(storememory.NewRepository(), menumemory.NewRepository(), menumemory.NewOptionRepository(), images)
	reconciler := NewInlineImageReconciler(svc)

	result, err := reconciler.ReconcileImages(context.Background(), time.Hour)

	require.NoError(t, err)
	assert.Equal(t, []string{"/images/stale.png"}, result.Removed)
	exists, err := afero.Exists(fs, "/images/fresh.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReconcilers_RequireCollaborators(t *testing.T) {
	_, err := (&InlineImageReconciler{}).ReconcileImages(context.Background(), time.Minute)
	assert.Error(t, err)
	_, err = (&TemporalImageReconciler{}).ReconcileImages(context.Background(), time.Minute)
	assert.Error(t, err)
}
