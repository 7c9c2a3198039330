package images

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	menutypes "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
)

// PurgeOrphanImagesActivityName removes image files that no menu row references.
const PurgeOrphanImagesActivityName = "menus.activities.PurgeOrphanImages"

// Activities groups activities that operate on stored menu images.
type Activities struct {
	service menuports.Service
}

func NewActivities(service menuports.Service) *Activities {
	return &Activities{service: service}
}

// PurgeOrphanImages deletes unreferenced files written before input.OlderThan.
// The removal is idempotent, so retried attempts only report what they removed themselves.
func (a *Activities) PurgeOrphanImages(ctx context.Context, input menutypes.PurgeOrphanImagesInput) (*menutypes.PurgeOrphanImagesResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("image purge activity not initialized")
		return nil, errors.New("image purge activity not initialized")
	}
	logger.Info("PurgeOrphanImages activity started", "olderThan", input.OlderThan)
	result, err := a.service.PurgeOrphanImages(ctx, input)
	if err != nil {
		logger.Error("PurgeOrphanImages activity failed", "error", err)
		return nil, err
	}
	logger.Info("PurgeOrphanImages activity completed", "removed", len(result.Removed))
	return result, nil
}
