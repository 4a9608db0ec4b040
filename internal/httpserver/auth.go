package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
	"github.com/Skotchmaster/shop_api/pkg/logging"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	if err := h.Svc.Register(ctx, req); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_failed", "status", http.StatusBadRequest, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Name, email and password are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_failed", "status", http.StatusBadRequest, "reason", "user_exists")
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		default:
			l.Error("register_failed", "status", http.StatusInternalServerError, "reason", "db_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error creating user")
		}
	}

	l.Info("register_success", "status", http.StatusCreated)
	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "User created successfully"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	token, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", http.StatusBadRequest, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", http.StatusUnauthorized, "reason", "invalid email or password")
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
		default:
			l.Error("login_failed", "status", http.StatusInternalServerError, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error during login")
		}
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: token})
}
