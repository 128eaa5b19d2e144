package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// CreateCategory creates a menu category.
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var category models.MenuCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	created, err := h.menuService.CreateCategory(&category)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateName) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category name already exists.", err.Error()))
		} else {
			utils.LogError(err, "CreateCategory: error from menuService.CreateCategory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create category.", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetCategories lists all menu categories.
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: error from menuService.GetCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch categories.", ""))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory fetches one category by id.
func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.menuService.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		} else {
			utils.LogError(err, "GetCategory: error from menuService.GetCategoryByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch category.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory updates a category's name and description.
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.MenuCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category.ID = id

	updated, err := h.menuService.UpdateCategory(&category)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		case errors.Is(err, services.ErrDuplicateName):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category name already exists.", err.Error()))
		default:
			utils.LogError(err, "UpdateCategory: error from menuService.UpdateCategory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update category.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCategory removes an empty category.
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		case errors.Is(err, services.ErrCategoryInUse):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category still has menu items.", err.Error()))
		default:
			utils.LogError(err, "DeleteCategory: error from menuService.DeleteCategory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete category.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// CreateItem creates a menu item under a category.
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.menuService.CreateItem(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		case errors.Is(err, services.ErrDuplicateName):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Menu item name already exists.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item.", err.Error()))
		default:
			utils.LogError(err, "CreateItem: error from menuService.CreateItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create menu item.", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems lists menu items with optional category and availability filters.
func (h *MenuHandler) GetItems(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category_id format.", err.Error()))
			return
		}
		categoryID = &id
	}
	availableOnly := c.Query("available") == "true"
	page, pageSize := pagination(c)

	items, total, err := h.menuService.GetItems(categoryID, availableOnly, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetItems: error from menuService.GetItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu items.", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetItem fetches one menu item by id.
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.GetItemByID(id)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		} else {
			utils.LogError(err, "GetItem: error from menuService.GetItemByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu item.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem updates a menu item.
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	item.ID = id

	updated, err := h.menuService.UpdateItem(&item)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		case errors.Is(err, services.ErrDuplicateName):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Menu item name already exists.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item.", err.Error()))
		default:
			utils.LogError(err, "UpdateItem: error from menuService.UpdateItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update menu item.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetItemAvailability toggles the 86'd flag on a menu item.
func (h *MenuHandler) SetItemAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.menuService.SetItemAvailability(id, *req.IsAvailable)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		} else {
			utils.LogError(err, "SetItemAvailability: error from menuService.SetItemAvailability")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update availability.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a menu item not referenced by orders.
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(id); err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		case errors.Is(err, services.ErrMenuItemInUse):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Menu item is referenced by existing orders.", err.Error()))
		default:
			utils.LogError(err, "DeleteItem: error from menuService.DeleteItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete menu item.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
