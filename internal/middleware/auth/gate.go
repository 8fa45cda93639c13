package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/tokens"
)

const claimsKey = "admin_claims"

// Gate guards admin routes with the admin-token cookie. API routes get a 401,
// page routes are redirected to LoginPath. Both paths run the same check.
type Gate struct {
	Secret       []byte
	LoginPath    string
	CookieSecure bool
	Now          func() time.Time

	// OnReject is called with "missing" or "invalid" for every refused request.
	OnReject func(reason string)
}

func NewGate(secret []byte, loginPath string, cookieSecure bool) *Gate {
	return &Gate{Secret: secret, LoginPath: loginPath, CookieSecure: cookieSecure}
}

func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, reason := g.check(c)
		if claims == nil {
			if reason == "invalid" {
				c.SetCookie(DeleteCookie(g.CookieSecure))
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		setAdminContext(c, claims)
		return next(c)
	}
}

func (g *Gate) RequireAdminPage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, reason := g.check(c)
		if claims == nil {
			if reason == "invalid" {
				c.SetCookie(DeleteCookie(g.CookieSecure))
			}
			return c.Redirect(http.StatusFound, g.loginPath())
		}
		setAdminContext(c, claims)
		return next(c)
	}
}

func (g *Gate) check(c echo.Context) (*tokens.Claims, string) {
	l := logging.FromContext(c.Request().Context()).With("middleware", "admin_gate")

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		g.reject("missing")
		l.Warn("admin_gate_rejected", "status", 401, "reason", "missing token")
		return nil, "missing"
	}

	claims, err := tokens.Verify(cookie.Value, g.Secret, g.now())
	if err != nil {
		g.reject("invalid")
		l.Warn("admin_gate_rejected", "status", 401, "reason", "invalid token", "error", err)
		return nil, "invalid"
	}
	return claims, ""
}

func (g *Gate) reject(reason string) {
	if g.OnReject != nil {
		g.OnReject(reason)
	}
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Gate) loginPath() string {
	if g.LoginPath == "" {
		return "/admin/login"
	}
	return g.LoginPath
}

func setAdminContext(c echo.Context, claims *tokens.Claims) {
	c.Set(claimsKey, claims)
	c.Set("admin_id", claims.UserID)
	c.Set("admin_email", claims.Email)
}

// ClaimsFrom returns the claims stored by a successful gate check.
func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*tokens.Claims)
	return claims, ok && claims != nil
}
