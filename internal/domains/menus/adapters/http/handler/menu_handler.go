package handler

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	menumapper "github.com/Apurer/food-order-api/internal/domains/menus/adapters/http/mapper"
	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	apierrors "github.com/Apurer/food-order-api/internal/shared/errors"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

const imageField = "image"

// MenuAPI wires HTTP transport with the menus bounded context service.
type MenuAPI struct {
	service ports.Service
}

func NewMenuAPI(service ports.Service) *MenuAPI {
	return &MenuAPI{service: service}
}

// Register mounts the menu routes under a store-scoped group.
func (api *MenuAPI) Register(stores gin.IRouter) {
	stores.GET("/:storeId/menus", api.FindMenus)
	stores.POST("/:storeId/menus", api.CreateMenu)
	stores.PUT("/:storeId/menus/:menuId", api.UpdateMenu)
	stores.DELETE("/:storeId/menus/:menuId", api.DeleteMenu)
	stores.GET("/:storeId/menus/:menuId/image", api.FindImage)
	stores.POST("/:storeId/menus/:menuId/options", api.AddOption)
}

// Post /api/stores/:storeId/menus
// Registers a menu from a multipart form. The image part is optional.
func (api *MenuAPI) CreateMenu(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	input, cleanup, ok := bindMenuForm(c)
	if !ok {
		return
	}
	defer cleanup()
	menu, err := api.service.CreateMenu(c.Request.Context(), types.CreateMenuInput{StoreID: storeID, MenuMutationInput: input})
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menumapper.FromDomain(menu))
}

// Put /api/stores/:storeId/menus/:menuId
// Replaces the menu fields and its image.
func (api *MenuAPI) UpdateMenu(c *gin.Context) {
	storeID, menuID, ok := parseMenuParams(c)
	if !ok {
		return
	}
	input, cleanup, ok := bindMenuForm(c)
	if !ok {
		return
	}
	defer cleanup()
	menu, err := api.service.UpdateMenu(c.Request.Context(), types.UpdateMenuInput{StoreID: storeID, MenuID: menuID, MenuMutationInput: input})
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menumapper.FromDomain(menu))
}

// Delete /api/stores/:storeId/menus/:menuId
func (api *MenuAPI) DeleteMenu(c *gin.Context) {
	storeID, menuID, ok := parseMenuParams(c)
	if !ok {
		return
	}
	if err := api.service.DeleteMenu(c.Request.Context(), types.MenuIdentifier{StoreID: storeID, MenuID: menuID}); err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/stores/:storeId/menus/:menuId/image
// Streams the stored image bytes.
func (api *MenuAPI) FindImage(c *gin.Context) {
	storeID, menuID, ok := parseMenuParams(c)
	if !ok {
		return
	}
	image, err := api.service.FindImage(c.Request.Context(), types.MenuIdentifier{StoreID: storeID, MenuID: menuID})
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	defer image.Content.Close()
	contentType := mime.TypeByExtension(filepath.Ext(image.Path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, image.Content, nil)
}

// Get /api/stores/:storeId/menus?page=&size=
func (api *MenuAPI) FindMenus(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	page, err := pagination.Parse(c.Query("page"), c.Query("size"))
	if err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	result, err := api.service.FindMenus(c.Request.Context(), types.FindMenusInput{StoreID: storeID, Page: page})
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menumapper.FromPage(result))
}

// Post /api/stores/:storeId/menus/:menuId/options
func (api *MenuAPI) AddOption(c *gin.Context) {
	storeID, menuID, ok := parseMenuParams(c)
	if !ok {
		return
	}
	var payload menumapper.MenuOption
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return
	}
	option, err := api.service.AddOption(c.Request.Context(), menumapper.ToAddOptionInput(storeID, menuID, payload))
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menumapper.FromOption(option))
}

// bindMenuForm parses the multipart fields and opens the optional image part.
// The returned cleanup closes the image file.
func bindMenuForm(c *gin.Context) (types.MenuMutationInput, func(), bool) {
	noop := func() {}
	form := menumapper.MenuForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}
	var upload *types.ImageUpload
	cleanup := noop
	header, err := c.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return types.MenuMutationInput{}, noop, false
	default:
		file, err := header.Open()
		if err != nil {
			apierrors.DefaultResponder.BadRequest(c, err.Error())
			return types.MenuMutationInput{}, noop, false
		}
		upload = &types.ImageUpload{Filename: header.Filename, Content: file}
		cleanup = func() { _ = file.Close() }
	}
	input, err := menumapper.ToMutationInput(form, upload)
	if err != nil {
		cleanup()
		apierrors.DefaultResponder.BadRequest(c, err.Error())
		return types.MenuMutationInput{}, noop, false
	}
	return input, cleanup, true
}

func parseMenuParams(c *gin.Context) (int64, int64, bool) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return 0, 0, false
	}
	menuID, ok := parseIDParam(c, "menuId")
	if !ok {
		return 0, 0, false
	}
	return storeID, menuID, true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DefaultResponder.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
