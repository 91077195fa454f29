package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee-order-go/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	token, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) AdminDashboardHandler(c *gin.Context) {
	claims, _ := c.Get(UserClaimsHandlerKey)
	userClaims, ok := claims.(*utils.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User claims not found in context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard!",
		"user":    userClaims.Username,
	})
}
