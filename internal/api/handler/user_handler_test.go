package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
)

type stubUserService struct {
	users      []domain.User
	created    *ports.CreateUserInput
	updated    *ports.UpdateUserInput
	deleteRes  *ports.DeleteUserResult
	forcedErr  error
}

func (s *stubUserService) List(_ context.Context) ([]domain.User, error) {
	return s.users, s.forcedErr
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Create(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	s.created = &input
	return &domain.User{ID: "u1", Username: input.Username, Email: input.Email}, nil
}

func (s *stubUserService) Update(_ context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	s.updated = &input
	return &domain.User{ID: id, Username: input.Username}, nil
}

func (s *stubUserService) Delete(_ context.Context, _ string) (*ports.DeleteUserResult, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	return s.deleteRes, nil
}

func TestUserHandler_List_Empty(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), rec)

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty listing, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{users: []domain.User{
		{ID: "u1", Username: "alice", PasswordHash: "bcrypt-hash"},
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice") {
		t.Fatalf("user missing from body: %s", body)
	}
	if strings.Contains(body, "bcrypt-hash") {
		t.Fatalf("password hash leaked into response: %s", body)
	}
}

func TestUserHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users",
		`{"username":"alice","password":"secret","email":"Alice@Example.COM"}`), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.created == nil || svc.created.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %+v", svc.created)
	}
	if !strings.Contains(rec.Body.String(), "new user alice created") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"abc","password":"secret","email":"a@example.com"}`},
		{"short password", `{"username":"alice","password":"pw","email":"a@example.com"}`},
		{"bad email", `{"username":"alice","password":"secret","email":"not-an-email"}`},
		{"missing email", `{"username":"alice","password":"secret"}`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/users", tc.body), rec)

		err := h.Create(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", tc.name, err)
		}
	}
}

func TestUserHandler_Create_DuplicatePassThrough(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{forcedErr: domain.ErrUserExists})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users",
		`{"username":"alice","password":"secret","email":"a@example.com"}`), rec)

	if err := h.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	e := newTestEcho()
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/users/u1",
		`{"username":"alice","email":"a@example.com","roles":["Manager"],"active":false}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if svc.updated == nil || svc.updated.Active {
		t.Fatalf("active=false not carried through: %+v", svc.updated)
	}
	if svc.updated.Password != "" {
		t.Fatalf("password must stay empty when omitted")
	}
}

func TestUserHandler_Update_RequiresActive(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/users/u1",
		`{"username":"alice","email":"a@example.com","roles":["Manager"]}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when active is omitted, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{deleteRes: &ports.DeleteUserResult{Username: "alice", NotesDeleted: 3}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/users/u1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "user alice and 3 notes deleted") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
