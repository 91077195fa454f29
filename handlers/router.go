package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coffee-order-go/database"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger(h.Logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Mobile Ordering App API!")
	})
	router.GET("/health", h.HealthHandler)

	// --- Authentication Routes ---
	router.POST("/login", h.LoginHandler)

	adminOnly := h.AuthMiddleware()
	router.GET("/admin", adminOnly, h.AdminDashboardHandler)

	// --- Menu Routes --- (reads are public, writes need an admin token)
	menuRoutes := router.Group("/menu")
	{
		menuRoutes.GET("", h.ListMenuHandler)
		menuRoutes.GET("/:id", h.GetMenuItemHandler)
		menuRoutes.POST("", adminOnly, h.CreateMenuItemHandler)
		menuRoutes.PUT("/:id", adminOnly, h.UpdateMenuItemHandler)
		menuRoutes.DELETE("/:id", adminOnly, h.DeleteMenuItemHandler)
	}
	router.GET("/customizations/:menuItemId", h.ListCustomizationsHandler)

	// --- Order Routes ---
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.POST("", h.PlaceOrderHandler)
		orderRoutes.GET("", adminOnly, h.ListOrdersHandler)
		orderRoutes.GET("/:id", h.GetOrderHandler)
		orderRoutes.PATCH("/:id/status", adminOnly, h.UpdateOrderStatusHandler)
	}

	router.POST("/create-payment-intent", h.CreatePaymentIntentHandler)

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || containsWildcard(allowedOrigins) {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (h *Handler) HealthHandler(c *gin.Context) {
	status := gin.H{"status": "healthy", "service": "coffee-order-api"}
	if err := database.Ping(c.Request.Context(), h.DB); err != nil {
		status["status"] = "unhealthy"
		status["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"
	c.JSON(http.StatusOK, status)
}
