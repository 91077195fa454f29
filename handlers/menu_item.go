package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee-order-go/services"
)

func (h *Handler) ListMenuHandler(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch menu items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMenuItemHandler(c *gin.Context) {
	id, err := paramID(c, "id", "menu item")
	if err != nil {
		h.respondError(c, err, "Failed to fetch menu item")
		return
	}

	item, err := h.Menu.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateMenuItemHandler(c *gin.Context) {
	var request services.CreateMenuItemInput
	if err := c.ShouldBindJSON(&request); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.Menu.Create(c.Request.Context(), request)
	if err != nil {
		h.respondError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Path: /menu/:id
func (h *Handler) UpdateMenuItemHandler(c *gin.Context) {
	id, err := paramID(c, "id", "menu item")
	if err != nil {
		h.respondError(c, err, "Failed to update menu item")
		return
	}

	var request services.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&request); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.Menu.Update(c.Request.Context(), id, request)
	if err != nil {
		h.respondError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItemHandler(c *gin.Context) {
	id, err := paramID(c, "id", "menu item")
	if err != nil {
		h.respondError(c, err, "Failed to delete menu item")
		return
	}

	if err := h.Menu.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete menu item")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCustomizationsHandler(c *gin.Context) {
	id, err := paramID(c, "menuItemId", "menu item")
	if err != nil {
		h.respondError(c, err, "Failed to fetch customizations")
		return
	}

	customizations, err := h.Menu.Customizations(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch customizations")
		return
	}
	c.JSON(http.StatusOK, customizations)
}
