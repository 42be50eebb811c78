package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
)

// refreshCookieName is the cookie carrying the refresh token.
const refreshCookieName = "jwt"

type AuthHandler struct {
	service    ports.AuthService
	refreshTTL time.Duration
}

func NewAuthHandler(service ports.AuthService, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, refreshTTL: refreshTTL}
}

// refreshCookie builds the refresh-token cookie. Max-Age matches the token
// expiry exactly so cookie and token cannot drift.
func (h *AuthHandler) refreshCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// clearedRefreshCookie carries the identical attribute set used when setting
// the cookie; mismatched attributes silently fail to clear in some clients.
func (h *AuthHandler) clearedRefreshCookie() *http.Cookie {
	c := h.refreshCookie("")
	c.MaxAge = -1
	return c
}

// Login authenticates a user and issues both tokens.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  accessTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.refreshCookie(result.RefreshToken))
	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: result.AccessToken})
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accessTokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	accessToken, err := h.service.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		// A vanished user is 401 here, not the 404 it maps to elsewhere.
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return err
	}

	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: accessToken})
}

// Logout clears the refresh cookie. Idempotent: a request without a cookie
// succeeds with no content and no Set-Cookie header. The refresh token itself
// stays valid until its natural expiry (no server-side revocation).
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Success      204  "no cookie present"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookieName); err != nil || cookie.Value == "" {
		return c.NoContent(http.StatusNoContent)
	}

	c.SetCookie(h.clearedRefreshCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
