package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee-order-go/models"
	"coffee-order-go/services"
)

// UpdateOrderStatusRequest defines the request body for an admin changing an order's status
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PlaceOrderHandler handles a customer checking out
func (h *Handler) PlaceOrderHandler(c *gin.Context) {
	var req services.OrderSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrdersHandler(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrderHandler(c *gin.Context) {
	id, err := paramID(c, "id", "order")
	if err != nil {
		h.respondError(c, err, "Failed to fetch order")
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatusHandler(c *gin.Context) {
	id, err := paramID(c, "id", "order")
	if err != nil {
		h.respondError(c, err, "Failed to update order status")
		return
	}

	var request UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.bindError(c, err)
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), id, request.Status)
	if err != nil {
		h.respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}
