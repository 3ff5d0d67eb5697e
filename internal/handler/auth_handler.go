package handler

import (
	"errors"
	"net/http"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	issued, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.TokenResponse{Token: issued.Token, Name: issued.User.Name}, "User register successfully.")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	issued, err := h.svc.Login(c.Request().Context(), req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, dto.LoginErrorResponse{
			Success: false,
			Error:   "Unauthorised",
			Message: "Invalid credentials.",
		})
	}
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   issued.Token,
		Name:    issued.User.Name,
		Message: "User logged in successfully.",
	})
}
