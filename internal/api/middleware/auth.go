package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jpsm83/notes2025back/internal/core/token"
)

// Context keys set for downstream handlers by Auth.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// Auth validates the bearer access token and injects the decoded identity into
// the request context. It is a pure function of token and secret: no store
// lookup happens here, so role changes only become visible on the next refresh.
//
// A missing header is 401 (no credential offered); a bad signature and an
// expired token are both 403 and deliberately indistinguishable.
func Auth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, status := issuer.VerifyAccess(parts[1])
			if status != token.StatusValid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxRoles, claims.Roles)

			return next(c)
		}
	}
}
