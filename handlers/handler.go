package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-order-go/payments"
	"coffee-order-go/services"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	DB       *gorm.DB
	Orders   *services.OrderService
	Menu     *services.MenuService
	Auth     *services.AuthService
	Payments payments.IntentCreator
	Logger   *zap.Logger
}

// respondError maps service errors onto HTTP statuses. Storage and unknown
// errors are logged in full and reported to the client as fallback only.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	var (
		validationErr services.ValidationError
		notFoundErr   services.NotFoundError
		conflictErr   services.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		status, message = http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		status, message = http.StatusNotFound, notFoundMessage(notFoundErr)
	case errors.As(err, &conflictErr):
		status, message = http.StatusConflict, conflictErr.Error()
	case errors.Is(err, services.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, services.ErrForbidden):
		status, message = http.StatusForbidden, "Invalid token"
	case errors.Is(err, payments.ErrInvalidAmount):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, payments.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	default:
		h.Logger.Error(fallback,
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"request_id": c.GetString(RequestIDKey),
	})
}

func notFoundMessage(err services.NotFoundError) string {
	switch err.Resource {
	case "order":
		return "Order not found"
	case "menu item":
		return "Menu item not found"
	default:
		return err.Error()
	}
}

// bindError reports a body that could not be decoded.
func (h *Handler) bindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request body: " + err.Error(),
		"request_id": c.GetString(RequestIDKey),
	})
}

// paramID parses a positive integer path parameter. An id that does not
// parse cannot name a stored resource, so it is reported as not found.
func paramID(c *gin.Context, name, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.NotFoundError{Resource: resource}
	}
	return uint(id), nil
}
