package types

import (
	"io"
	"time"
)

// ImageUpload is an uploaded image file. A nil *ImageUpload means no file was sent.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// MenuMutationInput carries the editable menu fields.
type MenuMutationInput struct {
	Name        string
	Description string
	Price       int64
	Image       *ImageUpload
}

type CreateMenuInput struct {
	StoreID int64
	MenuMutationInput
}

type UpdateMenuInput struct {
	StoreID int64
	MenuID  int64
	MenuMutationInput
}

// MenuIdentifier addresses a menu through the store that sells it.
type MenuIdentifier struct {
	StoreID int64
	MenuID  int64
}

type AddOptionInput struct {
	StoreID int64
	MenuID  int64
	Name    string
	Price   int64
}

// PurgeOrphanImagesInput selects unreferenced image files last modified before OlderThan.
type PurgeOrphanImagesInput struct {
	OlderThan time.Time
}

type PurgeOrphanImagesResult struct {
	Removed []string
}
