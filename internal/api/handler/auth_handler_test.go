package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	refreshed   string
	refreshErr  error
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Refresh(_ context.Context, _ string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return s.refreshed, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsRefreshCookie(t *testing.T) {
	e := newTestEcho()
	svc := &stubAuthService{loginResult: &ports.LoginResult{AccessToken: "access-abc", RefreshToken: "refresh-xyz"}}
	h := NewAuthHandler(svc, 7*24*time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth", `{"username":"alice","password":"secret"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"accessToken":"access-abc"`) {
		t.Fatalf("access token missing from body: %s", body)
	}
	if strings.Contains(body, "refresh-xyz") {
		t.Fatalf("refresh token leaked into response body")
	}

	cookie := findCookie(t, rec, "jwt")
	if cookie == nil {
		t.Fatalf("jwt cookie not set")
	}
	if cookie.Value != "refresh-xyz" {
		t.Fatalf("cookie carries wrong value: %s", cookie.Value)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("cookie max-age %d does not match refresh TTL", cookie.MaxAge)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth", `{"username":"alice"}`), rec)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentialsPassThrough(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth", `{"username":"alice","password":"wrong"}`), rec)

	// Domain errors flow to the central error handler untouched.
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if findCookie(t, rec, "jwt") != nil {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{refreshed: "fresh-token"}, time.Hour)

	req := jsonRequest(http.MethodGet, "/auth/refresh", "")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "refresh-xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"accessToken":"fresh-token"`) {
		t.Fatalf("new access token missing: %s", rec.Body.String())
	}
}

func TestAuthHandler_Refresh_NoCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{refreshed: "fresh-token"}, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/auth/refresh", ""), rec)

	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %v", err)
	}
}

func TestAuthHandler_Refresh_DeletedUser(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrUserNotFound}, time.Hour)

	req := jsonRequest(http.MethodGet, "/auth/refresh", "")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "refresh-xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// A vanished user yields 401 here, not the 404 the error maps to elsewhere.
	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %v", err)
	}
}

func TestAuthHandler_Refresh_InvalidTokenPassThrough(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrTokenInvalid}, time.Hour)

	req := jsonRequest(http.MethodGet, "/auth/refresh", "")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "tampered"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid to pass through, got %v", err)
	}
}

func TestAuthHandler_Logout_WithCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour)

	req := jsonRequest(http.MethodPost, "/auth/logout", "")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "refresh-xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := findCookie(t, rec, "jwt")
	if cookie == nil {
		t.Fatalf("clearing cookie not sent")
	}
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("clearing cookie must carry the same attributes: %+v", cookie)
	}
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/logout", ""), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 without cookie, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no Set-Cookie expected on 204")
	}
}
