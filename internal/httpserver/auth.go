package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
	authmw "github.com/Skotchmaster/affiliate_store/internal/middleware/auth"
	"github.com/Skotchmaster/affiliate_store/internal/service"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool

	// OnFailure is called with "credentials" after a rejected login.
	OnFailure func(reason string)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := decodeBody(c, l, "login_failed", &req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) && h.OnFailure != nil {
			h.OnFailure("credentials")
		}
		return fail(l, "login_failed", "Admin", err)
	}

	c.SetCookie(authmw.CreateCookie(res.Token, res.ExpiresAt, h.CookieSecure))
	l.Info("login_success", "admin_id", res.Admin.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{Message: "Login successful", ExpiresAt: res.ExpiresAt})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(authmw.DeleteCookie(h.CookieSecure))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	claims, ok := authmw.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, transport.SessionResponse{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.Expiry(),
	})
}
