package ports

import (
	"context"
	"time"

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
)

// ImageReconciler removes image files no menu references once they are older than grace.
type ImageReconciler interface {
	ReconcileImages(ctx context.Context, grace time.Duration) (*types.PurgeOrphanImagesResult, error)
}
