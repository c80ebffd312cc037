package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/internal/transport"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	middleware "github.com/Skotchmaster/resto_pos/pkg/middleware/auth"
	"github.com/Skotchmaster/resto_pos/pkg/response"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login_error", err)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+res.AccessToken)
	l.Info("login_success", "user_id", res.User.ID)
	return response.Success(c, http.StatusOK, "Login successful", transport.LoginResponse{
		UserResponse: transport.NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		TokenType:    "Bearer",
		ExpiresAt:    res.ExpiresAt,
	})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.profile")

	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(l, "profile_error", err)
	}

	user, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		return fail(l, "profile_error", err)
	}

	return response.Success(c, http.StatusOK, "Profile retrieved successfully", transport.NewUserResponse(*user))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(l, "logout_error", err)
	}

	if err := h.Svc.Logout(ctx, userID); err != nil {
		return fail(l, "logout_error", err)
	}

	l.Info("logout_success", "user_id", userID)
	return response.Success(c, http.StatusOK, "Logout successful", nil)
}
