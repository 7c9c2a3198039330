package application

import (
	"context"
	"errors"
	"time"

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	storedomain "github.com/Apurer/food-order-api/internal/domains/stores/domain"
	storeports "github.com/Apurer/food-order-api/internal/domains/stores/ports"
	"github.com/Apurer/food-order-api/internal/shared/failure"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

// Service orchestrates the menus bounded context use cases.
type Service struct {
	stores  storeports.Repository
	menus   ports.Repository
	options ports.OptionRepository
	images  ports.ImageStore
	tx      txn.Manager
}

type Option func(*Service)

// WithTransactor runs each mutating use case inside one unit of work.
func WithTransactor(tx txn.Manager) Option {
	return func(s *Service) {
		s.tx = txn.OrInline(tx)
	}
}

func NewService(stores storeports.Repository, menus ports.Repository, options ports.OptionRepository, images ports.ImageStore, opts ...Option) *Service {
	s := &Service{stores: stores, menus: menus, options: options, images: images, tx: txn.Inline{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateMenu stores the uploaded image, or falls back to the placeholder, and persists the menu.
func (s *Service) CreateMenu(ctx context.Context, input types.CreateMenuInput) (*domain.Menu, error) {
	var created *domain.Menu
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		store, err := s.loadStore(ctx, input.StoreID)
		if err != nil {
			return err
		}
		menu, err := domain.NewMenu(store.ID, input.Name, input.Description, input.Price, s.images.DefaultPath())
		if err != nil {
			return mapError(err)
		}
		if input.Image != nil {
			path, err := s.saveImage(ctx, input.Image)
			if err != nil {
				return err
			}
			if err := menu.AttachImage(path); err != nil {
				return mapError(err)
			}
		}
		created, err = s.menus.Save(ctx, menu)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMenu replaces the menu fields and image in place. An image upload is mandatory.
func (s *Service) UpdateMenu(ctx context.Context, input types.UpdateMenuInput) (*domain.Menu, error) {
	var updated *domain.Menu
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadStore(ctx, input.StoreID); err != nil {
			return err
		}
		menu, err := s.loadMenuOfStore(ctx, input.StoreID, input.MenuID)
		if err != nil {
			return err
		}
		if !menu.IsAvailable() {
			return failure.MenuNotFound.With("menu %d not found", input.MenuID)
		}
		if input.Image == nil {
			return failure.InvalidImageInput.With("an image is required to update menu %d", input.MenuID)
		}
		if err := menu.Update(input.Name, input.Description, input.Price); err != nil {
			return mapError(err)
		}
		path, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return err
		}
		if err := menu.AttachImage(path); err != nil {
			return mapError(err)
		}
		updated, err = s.menus.Save(ctx, menu)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMenu soft-deletes the menu so historical orders keep resolving it.
func (s *Service) DeleteMenu(ctx context.Context, id types.MenuIdentifier) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		menu, err := s.loadMenuOfStore(ctx, id.StoreID, id.MenuID)
		if err != nil {
			return err
		}
		menu.MarkDeleted()
		_, err = s.menus.Save(ctx, menu)
		return mapError(err)
	})
}

// FindImage opens the stored image of an active menu.
func (s *Service) FindImage(ctx context.Context, id types.MenuIdentifier) (*types.MenuImage, error) {
	menu, err := s.loadMenuOfStore(ctx, id.StoreID, id.MenuID)
	if err != nil {
		return nil, err
	}
	if !menu.IsAvailable() {
		return nil, failure.MenuNotFound.With("menu %d not found", id.MenuID)
	}
	content, err := s.images.Open(ctx, menu.ImagePath)
	if err != nil {
		return nil, failure.InvalidImageInput.With("image of menu %d is unreadable", id.MenuID).Wrap(err)
	}
	return &types.MenuImage{Path: menu.ImagePath, Content: content}, nil
}

// FindMenus pages the active menus of a store.
func (s *Service) FindMenus(ctx context.Context, input types.FindMenusInput) (*types.MenuPage, error) {
	store, err := s.loadStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	page, err := s.menus.ListActiveByStore(ctx, store.ID, input.Page.Normalize())
	if err != nil {
		return nil, mapError(err)
	}
	return &page, nil
}

// AddOption attaches a selectable add-on to an active menu.
func (s *Service) AddOption(ctx context.Context, input types.AddOptionInput) (*domain.Option, error) {
	var created *domain.Option
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadStore(ctx, input.StoreID); err != nil {
			return err
		}
		menu, err := s.loadMenuOfStore(ctx, input.StoreID, input.MenuID)
		if err != nil {
			return err
		}
		if !menu.IsAvailable() {
			return failure.MenuNotFound.With("menu %d not found", input.MenuID)
		}
		option, err := domain.NewOption(menu.ID, input.Name, input.Price)
		if err != nil {
			return mapError(err)
		}
		created, err = s.options.Save(ctx, option)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PurgeOrphanImages removes stored files that no menu row references and that were
// last written before input.OlderThan. The placeholder image is never removed.
func (s *Service) PurgeOrphanImages(ctx context.Context, input types.PurgeOrphanImagesInput) (*types.PurgeOrphanImagesResult, error) {
	referenced, err := s.menus.ImagePaths(ctx)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]struct{}, len(referenced)+1)
	for _, path := range referenced {
		keep[path] = struct{}{}
	}
	keep[s.images.DefaultPath()] = struct{}{}

	files, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := input.OlderThan
	if cutoff.IsZero() {
		cutoff = time.Now()
	}
	result := &types.PurgeOrphanImagesResult{}
	var errs []error
	for _, file := range files {
		if _, ok := keep[file.Path]; ok || !file.ModTime.Before(cutoff) {
			continue
		}
		if err := s.images.Remove(ctx, file.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		result.Removed = append(result.Removed, file.Path)
	}
	return result, errors.Join(errs...)
}

func (s *Service) saveImage(ctx context.Context, upload *types.ImageUpload) (string, error) {
	if upload.Content == nil {
		return "", failure.InvalidImageInput.With("image %q has no content", upload.Filename)
	}
	path, err := s.images.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		return "", failure.InvalidImageInput.With("failed to store image %q", upload.Filename).Wrap(err)
	}
	return path, nil
}

func (s *Service) loadStore(ctx context.Context, id int64) (*storedomain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if errors.Is(err, storeports.ErrNotFound) {
		return nil, failure.StoreNotFound.With("store %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// loadMenuOfStore resolves the menu and rejects it before any write when storeID is not its store.
func (s *Service) loadMenuOfStore(ctx context.Context, storeID, menuID int64) (*domain.Menu, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, failure.MenuNotFound.With("menu %d not found", menuID)
	}
	if err != nil {
		return nil, err
	}
	if !menu.BelongsTo(storeID) {
		return nil, failure.StoreIDMismatch.With("menu %d does not belong to store %d", menuID, storeID)
	}
	return menu, nil
}

var _ ports.Service = (*Service)(nil)
