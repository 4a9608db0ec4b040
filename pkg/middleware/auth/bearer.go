package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/pkg/logging"
	"github.com/Skotchmaster/shop_api/pkg/tokens"
)

const (
	CtxClaims = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

const (
	MsgTokenRequired = "Access token required"
	MsgInvalidToken  = "Invalid or expired token"
)

type BearerAuth struct {
	JWTSecret []byte
}

func NewBearerAuth(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "bearer_auth")

		raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if raw == "" {
			l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", "missing token")
			return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenRequired)
		}

		claims, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil {
			l.Warn("auth_failed", "status", http.StatusForbidden, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, MsgInvalidToken)
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// ClaimsFrom returns the claims attached by RequireAuth, if any.
func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.Claims)
	return claims, ok
}

// bearerToken returns whatever follows the scheme word. The scheme itself is
// not checked, so "Token abc" is verified like "Bearer abc".
func bearerToken(header string) string {
	_, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	return strings.TrimSpace(token)
}

func setUserContext(c echo.Context, claims *tokens.Claims) {
	c.Set(CtxClaims, claims)
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
}
