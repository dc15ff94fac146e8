// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"shopmate-chat/internal/services"
	"shopmate-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	u, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}))
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		Username:    res.Username,
		UserID:      res.UserID,
	}))
}

func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), errorCode(status)))
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusBadGateway:
		return "UPSTREAM_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
